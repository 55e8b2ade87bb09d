package entity

import (
	"fmt"
	"strings"
)

// ClassType is the declaration kind. The set is closed; switches over it
// are exhaustive.
type ClassType uint8

const (
	// BaseClass declarations only exist to be inherited.
	BaseClass ClassType = iota
	PointClass
	BrushClass
)

func (t ClassType) String() string {
	switch t {
	case BaseClass:
		return "base"
	case PointClass:
		return "point"
	case BrushClass:
		return "brush"
	}
	return fmt.Sprintf("ClassType(%d)", uint8(t))
}

// Valid reports whether t is one of the three declaration kinds.
func (t ClassType) Valid() bool {
	switch t {
	case BaseClass, PointClass, BrushClass:
		return true
	}
	return false
}

// ParseClassType accepts base/point/brush as well as the FGD spellings
// @BaseClass, @PointClass, @SolidClass and @BrushClass, ignoring case.
func ParseClassType(s string) (ClassType, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@")) {
	case "base", "baseclass":
		return BaseClass, nil
	case "point", "pointclass":
		return PointClass, nil
	case "brush", "brushclass", "solid", "solidclass":
		return BrushClass, nil
	}
	return BaseClass, fmt.Errorf("unknown class type %q", s)
}
