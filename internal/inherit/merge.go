package inherit

import (
	"slices"

	"entdef/internal/entity"
)

// mergeOptional keeps the derived value when present.
func mergeOptional[T any](derived, inherited *T) *T {
	if derived != nil {
		return derived
	}
	if inherited == nil {
		return nil
	}
	v := *inherited
	return &v
}

// mergeChains tries the derived chain first and falls back to the inherited one.
func mergeChains(derived, inherited entity.ExpressionChain) entity.ExpressionChain {
	switch {
	case derived.IsEmpty():
		return slices.Clone(inherited)
	case inherited.IsEmpty():
		return derived
	}
	return derived.Append(inherited)
}

// mergeFlags unions the options of two flags properties. For each bit the
// derived option wins; the result is ordered by value.
func mergeFlags(derived, inherited entity.PropertyDefinition) entity.PropertyDefinition {
	out := derived.Clone()
	out.SortOptions()
	for _, opt := range inherited.Options {
		if _, ok := out.Option(opt.Value); ok {
			continue
		}
		out.AddOption(opt.Value, opt.ShortDescription, opt.LongDescription, opt.IsDefault)
	}
	return out
}

// mergeProperties appends inherited properties whose keys are not defined yet.
// Flags properties under flagsKey are merged per bit instead. Keys where one
// side is a flags property and the other is not are returned as conflicts; the
// derived definition stays. Only the first inherited definition of a key counts.
func mergeProperties(derived, inherited []entity.PropertyDefinition, flagsKey string) ([]entity.PropertyDefinition, []string) {
	var conflicts []string
	out := derived
	for j, p := range inherited {
		if entity.FindProperty(inherited[:j], p.Key) >= 0 {
			continue
		}
		i := entity.FindProperty(out, p.Key)
		if i < 0 {
			out = append(out, p.Clone())
			continue
		}
		if p.Key != flagsKey {
			continue
		}
		switch {
		case out[i].IsFlags() && p.IsFlags():
			out[i] = mergeFlags(out[i], p)
		case out[i].IsFlags() != p.IsFlags():
			conflicts = append(conflicts, p.Key)
		}
	}
	return out, conflicts
}

// fold merges the own attributes of base into acc. acc is owned by the caller
// and updated in place; base is never modified.
func fold(acc *entity.ClassInfo, base *entity.ClassInfo, flagsKey string) []string {
	acc.Description = mergeOptional(acc.Description, base.Description)
	acc.Color = mergeOptional(acc.Color, base.Color)
	acc.Size = mergeOptional(acc.Size, base.Size)
	acc.ModelDefinition = mergeChains(acc.ModelDefinition, base.ModelDefinition)
	acc.DecalDefinition = mergeChains(acc.DecalDefinition, base.DecalDefinition)
	props, conflicts := mergeProperties(acc.PropertyDefinitions, base.PropertyDefinitions, flagsKey)
	acc.PropertyDefinitions = props
	return conflicts
}

// uniqueProperties drops every definition whose key already occurred earlier
// in ps. ps is modified in place.
func uniqueProperties(ps []entity.PropertyDefinition) []entity.PropertyDefinition {
	seen := make(map[string]struct{}, len(ps))
	return slices.DeleteFunc(ps, func(p entity.PropertyDefinition) bool {
		if _, dup := seen[p.Key]; dup {
			return true
		}
		seen[p.Key] = struct{}{}
		return false
	})
}
