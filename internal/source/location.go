package source

import "fmt"

// Location is the provenance of a declaration: file plus 1-based line and
// column. Line 0 means the position is unknown.
type Location struct {
	File   FileID
	Line   uint32
	Column uint32
}

// At builds a Location inside file.
func At(file FileID, line, column uint32) Location {
	return Location{File: file, Line: line, Column: column}
}

// Unknown returns a Location that points at no file.
func Unknown() Location {
	return Location{File: NoFile}
}

func (l Location) HasFile() bool {
	return l.File != NoFile
}

func (l Location) HasPosition() bool {
	return l.Line > 0
}

func (l Location) String() string {
	if !l.HasFile() {
		return fmt.Sprintf("?:%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d:%d", l.File, l.Line, l.Column)
}

// Less orders locations by file, line and column.
func (l Location) Less(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
