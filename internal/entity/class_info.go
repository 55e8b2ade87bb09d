package entity

import (
	"slices"

	"entdef/internal/source"
)

// ClassInfo is one declaration as produced by the parser, and also the shape
// of a resolved class. Optional attributes are nil pointers or empty chains.
type ClassInfo struct {
	Type                ClassType
	Location            source.Location
	Name                string
	Description         *string
	Color               *Color
	Size                *BBox
	ModelDefinition     ExpressionChain
	DecalDefinition     ExpressionChain
	PropertyDefinitions []PropertyDefinition
	SuperClasses        []string
}

// Ptr returns a pointer to a copy of v. Handy for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// HasSuperClasses reports whether the declaration inherits from anything.
func (c *ClassInfo) HasSuperClasses() bool {
	return len(c.SuperClasses) > 0
}

// Property returns the property with key.
func (c *ClassInfo) Property(key string) (PropertyDefinition, bool) {
	if i := FindProperty(c.PropertyDefinitions, key); i >= 0 {
		return c.PropertyDefinitions[i], true
	}
	return PropertyDefinition{}, false
}

// PropertyKeys returns the property keys in order.
func (c *ClassInfo) PropertyKeys() []string {
	keys := make([]string, len(c.PropertyDefinitions))
	for i, p := range c.PropertyDefinitions {
		keys[i] = p.Key
	}
	return keys
}

// Clone returns a deep copy sharing nothing with c.
func (c *ClassInfo) Clone() ClassInfo {
	out := *c
	if c.Description != nil {
		out.Description = Ptr(*c.Description)
	}
	if c.Color != nil {
		out.Color = Ptr(*c.Color)
	}
	if c.Size != nil {
		out.Size = Ptr(*c.Size)
	}
	out.ModelDefinition = slices.Clone(c.ModelDefinition)
	out.DecalDefinition = slices.Clone(c.DecalDefinition)
	out.SuperClasses = slices.Clone(c.SuperClasses)
	if c.PropertyDefinitions != nil {
		out.PropertyDefinitions = make([]PropertyDefinition, len(c.PropertyDefinitions))
		for i, p := range c.PropertyDefinitions {
			out.PropertyDefinitions[i] = p.Clone()
		}
	}
	return out
}

// Equal compares all fields, location included. Nil and empty slices are
// considered equal.
func Equal(a, b ClassInfo) bool {
	return a.Type == b.Type &&
		a.Location == b.Location &&
		a.Name == b.Name &&
		ptrEqual(a.Description, b.Description) &&
		ptrEqual(a.Color, b.Color) &&
		ptrEqual(a.Size, b.Size) &&
		slices.Equal(a.ModelDefinition, b.ModelDefinition) &&
		slices.Equal(a.DecalDefinition, b.DecalDefinition) &&
		slices.EqualFunc(a.PropertyDefinitions, b.PropertyDefinitions, PropertyDefinition.Equal) &&
		slices.Equal(a.SuperClasses, b.SuperClasses)
}
