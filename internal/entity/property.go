package entity

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SpawnflagsKey is the conventional key of the flags property that takes part
// in the per-bit merge.
const SpawnflagsKey = "spawnflags"

// PropertyType tags the PropertyDefinition variant.
type PropertyType uint8

const (
	PropUnknown PropertyType = iota
	PropTargetSource
	PropTargetDestination
	PropString
	PropBoolean
	PropInteger
	PropFloat
	PropChoice
	PropFlags
)

var propertyTypeNames = [...]string{
	PropUnknown:           "unknown",
	PropTargetSource:      "target_source",
	PropTargetDestination: "target_destination",
	PropString:            "string",
	PropBoolean:           "boolean",
	PropInteger:           "integer",
	PropFloat:             "float",
	PropChoice:            "choice",
	PropFlags:             "flags",
}

func (t PropertyType) String() string {
	if int(t) < len(propertyTypeNames) {
		return propertyTypeNames[t]
	}
	return fmt.Sprintf("PropertyType(%d)", uint8(t))
}

// ParsePropertyType maps a property type name to its tag. FGD aliases like
// "target_name", "bool", "int", "real" and "spawnflags" are accepted.
func ParsePropertyType(s string) (PropertyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "target_source", "targetsource", "target_name", "targetname":
		return PropTargetSource, nil
	case "target_destination", "targetdestination", "target":
		return PropTargetDestination, nil
	case "string", "str":
		return PropString, nil
	case "boolean", "bool":
		return PropBoolean, nil
	case "integer", "int":
		return PropInteger, nil
	case "float", "real":
		return PropFloat, nil
	case "choice", "choices":
		return PropChoice, nil
	case "flags", "spawnflags":
		return PropFlags, nil
	case "unknown":
		return PropUnknown, nil
	}
	return PropUnknown, fmt.Errorf("unknown property type %q", s)
}

type ChoiceOption struct {
	Value       string
	Description string
}

// FlagOption is one bit of a flags property.
type FlagOption struct {
	Value            int
	ShortDescription string
	LongDescription  string
	IsDefault        bool
}

// PropertyDefinition describes one entity key. Choices is only used by
// PropChoice, Options only by PropFlags.
type PropertyDefinition struct {
	Key              string
	Type             PropertyType
	ShortDescription string
	LongDescription  string
	ReadOnly         bool
	DefaultValue     *string
	Choices          []ChoiceOption
	Options          []FlagOption
}

// NewProperty returns a property of the given type without a default value.
func NewProperty(key string, typ PropertyType, short, long string, readOnly bool) PropertyDefinition {
	return PropertyDefinition{
		Key:              key,
		Type:             typ,
		ShortDescription: short,
		LongDescription:  long,
		ReadOnly:         readOnly,
	}
}

func NewStringProperty(key, short, long string, readOnly bool) PropertyDefinition {
	return NewProperty(key, PropString, short, long, readOnly)
}

func NewFlagsProperty(key string) PropertyDefinition {
	return PropertyDefinition{Key: key, Type: PropFlags}
}

func (p PropertyDefinition) IsFlags() bool {
	return p.Type == PropFlags
}

// AddOption inserts a flag option keeping Options sorted by value. An option
// with the same value is replaced.
func (p *PropertyDefinition) AddOption(value int, short, long string, isDefault bool) {
	opt := FlagOption{Value: value, ShortDescription: short, LongDescription: long, IsDefault: isDefault}
	i, found := slices.BinarySearchFunc(p.Options, value, func(o FlagOption, v int) int {
		return o.Value - v
	})
	if found {
		p.Options[i] = opt
		return
	}
	p.Options = slices.Insert(p.Options, i, opt)
}

// SortOptions orders Options by bit value. Equal values keep their order.
func (p *PropertyDefinition) SortOptions() {
	slices.SortStableFunc(p.Options, func(a, b FlagOption) int {
		return cmp.Compare(a.Value, b.Value)
	})
}

// Option returns the flag option with the given bit value.
func (p PropertyDefinition) Option(value int) (FlagOption, bool) {
	for _, o := range p.Options {
		if o.Value == value {
			return o, true
		}
	}
	return FlagOption{}, false
}

// DefaultFlags folds the default bits of a flags property into one mask.
func (p PropertyDefinition) DefaultFlags() int {
	mask := 0
	for _, o := range p.Options {
		if o.IsDefault {
			mask |= o.Value
		}
	}
	return mask
}

// Clone returns a deep copy.
func (p PropertyDefinition) Clone() PropertyDefinition {
	out := p
	if p.DefaultValue != nil {
		v := *p.DefaultValue
		out.DefaultValue = &v
	}
	out.Choices = slices.Clone(p.Choices)
	out.Options = slices.Clone(p.Options)
	return out
}

// Equal compares two property definitions field by field.
func (p PropertyDefinition) Equal(other PropertyDefinition) bool {
	return p.Key == other.Key &&
		p.Type == other.Type &&
		p.ShortDescription == other.ShortDescription &&
		p.LongDescription == other.LongDescription &&
		p.ReadOnly == other.ReadOnly &&
		ptrEqual(p.DefaultValue, other.DefaultValue) &&
		slices.Equal(p.Choices, other.Choices) &&
		slices.Equal(p.Options, other.Options)
}

// FindProperty returns the index of the property with key, or -1.
func FindProperty(props []PropertyDefinition, key string) int {
	return slices.IndexFunc(props, func(p PropertyDefinition) bool {
		return p.Key == key
	})
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
