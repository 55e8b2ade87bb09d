package inherit

import (
	"fmt"

	"entdef/internal/diag"
	"entdef/internal/entity"
)

// filterRedundantClasses drops declarations whose name is already taken, in
// declaration order. A base class clashes with any kept declaration of its
// name; a point or brush class clashes with a kept base class or a kept class
// of its own kind. Every dropped declaration is reported once.
func filterRedundantClasses(classes []entity.ClassInfo, r diag.Reporter) []entity.ClassInfo {
	var (
		bases  = make(map[string]struct{})
		points = make(map[string]struct{})
		brushs = make(map[string]struct{})
	)
	seenIn := func(set map[string]struct{}, name string) bool {
		_, ok := set[name]
		return ok
	}

	out := make([]entity.ClassInfo, 0, len(classes))
	for i := range classes {
		c := &classes[i]
		redundant := false
		switch c.Type {
		case entity.BaseClass:
			redundant = seenIn(bases, c.Name) || seenIn(points, c.Name) || seenIn(brushs, c.Name)
			if !redundant {
				bases[c.Name] = struct{}{}
			}
		case entity.PointClass:
			redundant = seenIn(bases, c.Name) || seenIn(points, c.Name)
			if !redundant {
				points[c.Name] = struct{}{}
			}
		case entity.BrushClass:
			redundant = seenIn(bases, c.Name) || seenIn(brushs, c.Name)
			if !redundant {
				brushs[c.Name] = struct{}{}
			}
		}
		if redundant {
			diag.ReportWarning(r, diag.DefRedundantClass, c.Location,
				fmt.Sprintf("duplicate class info '%s'", c.Name)).Emit()
			continue
		}
		out = append(out, *c)
	}
	return out
}
