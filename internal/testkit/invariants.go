// Package testkit holds invariant checks shared by resolver and pipeline tests.
package testkit

import (
	"fmt"
	"slices"

	"entdef/internal/entity"
)

// CheckResolutionInvariants runs a minimal set of invariants on a resolution:
// 1) every resolved class is a point or brush class
// 2) resolved classes follow declaration order and keep name, kind, location and super classes
// 3) (kind, name) pairs are unique
// 4) the class's own attributes survive: optional values, property keys with the
//    type of their first definition, and its model/decal chains as a prefix
// 5) property keys are unique within a class
func CheckResolutionInvariants(declared, resolved []entity.ClassInfo) error {
	type key struct {
		kind entity.ClassType
		name string
	}
	seen := make(map[key]struct{}, len(resolved))
	next := 0
	for i := range resolved {
		out := &resolved[i]

		// 1) kind
		if out.Type != entity.PointClass && out.Type != entity.BrushClass {
			return fmt.Errorf("resolved class %q has kind %s", out.Name, out.Type)
		}

		// 3) uniqueness
		k := key{out.Type, out.Name}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("resolved class %s %q appears twice", out.Type, out.Name)
		}
		seen[k] = struct{}{}

		// 2) order: find the declaration at or after next
		j := next
		for ; j < len(declared); j++ {
			d := &declared[j]
			if d.Type == out.Type && d.Name == out.Name && d.Location == out.Location {
				break
			}
		}
		if j == len(declared) {
			return fmt.Errorf("resolved class %s %q has no declaration after index %d", out.Type, out.Name, next)
		}
		next = j + 1
		decl := &declared[j]
		if !slices.Equal(decl.SuperClasses, out.SuperClasses) {
			return fmt.Errorf("class %q: super classes changed from %v to %v", out.Name, decl.SuperClasses, out.SuperClasses)
		}

		// 4) own attributes
		if err := checkOwn(decl, out); err != nil {
			return err
		}

		// 5) property keys
		keys := make(map[string]struct{}, len(out.PropertyDefinitions))
		for _, p := range out.PropertyDefinitions {
			if _, dup := keys[p.Key]; dup {
				return fmt.Errorf("class %q: property %q appears twice", out.Name, p.Key)
			}
			keys[p.Key] = struct{}{}
		}
	}
	return nil
}

func checkOwn(decl, out *entity.ClassInfo) error {
	if decl.Description != nil && (out.Description == nil || *out.Description != *decl.Description) {
		return fmt.Errorf("class %q: own description lost", out.Name)
	}
	if decl.Color != nil && (out.Color == nil || *out.Color != *decl.Color) {
		return fmt.Errorf("class %q: own color lost", out.Name)
	}
	if decl.Size != nil && (out.Size == nil || *out.Size != *decl.Size) {
		return fmt.Errorf("class %q: own size lost", out.Name)
	}
	for _, p := range decl.PropertyDefinitions {
		got, ok := out.Property(p.Key)
		if !ok {
			return fmt.Errorf("class %q: own property %q lost", out.Name, p.Key)
		}
		// первое собственное определение ключа побеждает
		if first, _ := decl.Property(p.Key); got.Type != first.Type {
			return fmt.Errorf("class %q: property %q has type %s, declared %s", out.Name, p.Key, got.Type, first.Type)
		}
	}
	if !hasPrefix(out.ModelDefinition, decl.ModelDefinition) {
		return fmt.Errorf("class %q: model chain %v does not start with %v", out.Name, out.ModelDefinition, decl.ModelDefinition)
	}
	if !hasPrefix(out.DecalDefinition, decl.DecalDefinition) {
		return fmt.Errorf("class %q: decal chain %v does not start with %v", out.Name, out.DecalDefinition, decl.DecalDefinition)
	}
	return nil
}

func hasPrefix(chain, prefix entity.ExpressionChain) bool {
	return len(chain) >= len(prefix) && slices.Equal(chain[:len(prefix)], prefix)
}
