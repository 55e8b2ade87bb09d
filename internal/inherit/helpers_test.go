package inherit

import (
	"strings"
	"testing"

	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/source"
)

func decl(kind entity.ClassType, name string, supers ...string) entity.ClassInfo {
	return entity.ClassInfo{Type: kind, Name: name, SuperClasses: supers}
}

func at(c entity.ClassInfo, line, column uint32) entity.ClassInfo {
	c.Location = source.At(0, line, column)
	return c
}

func str(key string) entity.PropertyDefinition {
	return entity.NewStringProperty(key, "", "", false)
}

// tagged returns a string property whose description tells copies apart.
func tagged(key, tag string) entity.PropertyDefinition {
	return entity.NewStringProperty(key, tag, "", false)
}

func props(ps ...entity.PropertyDefinition) []entity.PropertyDefinition {
	return ps
}

func checkCounts(t *testing.T, bag *diag.Bag, warnings, errors int) {
	t.Helper()
	if got := bag.Count(diag.SevWarning); got != warnings {
		t.Errorf("warnings: got %d, want %d\n%s", got, warnings, dump(bag))
	}
	if got := bag.Count(diag.SevError); got != errors {
		t.Errorf("errors: got %d, want %d\n%s", got, errors, dump(bag))
	}
}

func dump(bag *diag.Bag) string {
	return diag.FormatShortDiagnostics(bag.Items(), nil, true)
}

// checkUnordered compares resolved classes ignoring their order.
func checkUnordered(t *testing.T, got, want []entity.ClassInfo) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d classes, want %d: %s", len(got), len(want), names(got))
	}
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for i, g := range got {
			if !used[i] && entity.Equal(g, w) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing expected class %s %q\nwant: %+v\ngot:  %s", w.Type, w.Name, w, names(got))
		}
	}
}

func names(classes []entity.ClassInfo) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = c.Type.String() + ":" + c.Name
	}
	return strings.Join(parts, " ")
}
