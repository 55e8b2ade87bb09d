package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Разрешение наследования
	DefInfo                 Code = 1000
	DefRedundantClass       Code = 1001
	DefUnresolvedSuperClass Code = 1002
	DefInheritanceCycle     Code = 1003
	DefFlagsMergeConflict   Code = 1004
	DefDuplicateProperty    Code = 1005

	// Декодирование файлов объявлений
	DclInfo                Code = 2000
	DclDecodeError         Code = 2001
	DclInvalidClassType    Code = 2002
	DclInvalidPropertyType Code = 2003
	DclMissingName         Code = 2004
	DclInvalidValue        Code = 2005

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	DefInfo:                 "Inheritance information",
	DefRedundantClass:       "Redundant class declaration",
	DefUnresolvedSuperClass: "Unresolved super class",
	DefInheritanceCycle:     "Inheritance cycle",
	DefFlagsMergeConflict:   "Flags property conflicts with a non-flags property",
	DefDuplicateProperty:    "Property declared twice in one class",
	DclInfo:                 "Declaration file information",
	DclDecodeError:          "Declaration file could not be decoded",
	DclInvalidClassType:     "Invalid class type",
	DclInvalidPropertyType:  "Invalid property type",
	DclMissingName:          "Declaration has no name",
	DclInvalidValue:         "Invalid declaration value",
	IOLoadFileError:         "I/O load file error",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DEF%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DCL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
