package inherit

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/source"
	"entdef/internal/testkit"
)

// randomDeclarations builds a batch with duplicate classes and property keys,
// cycles, unknown names and conflicting flags properties.
func randomDeclarations(r *rand.Rand, n int) []entity.ClassInfo {
	kinds := []entity.ClassType{entity.BaseClass, entity.BaseClass, entity.PointClass, entity.BrushClass}
	out := make([]entity.ClassInfo, n)
	for i := range out {
		c := entity.ClassInfo{
			Type:     kinds[r.IntN(len(kinds))],
			Name:     fmt.Sprintf("c%d", r.IntN(n)),
			Location: source.At(1, uint32(i+1), 1),
		}
		for range r.IntN(3) {
			if r.IntN(8) == 0 {
				c.SuperClasses = append(c.SuperClasses, "missing")
				continue
			}
			c.SuperClasses = append(c.SuperClasses, fmt.Sprintf("c%d", r.IntN(n)))
		}
		if r.IntN(2) == 0 {
			c.Description = entity.Ptr(fmt.Sprintf("d%d", i))
		}
		if r.IntN(3) == 0 {
			c.Color = &entity.Color{R: float32(i)}
		}
		if r.IntN(3) == 0 {
			c.ModelDefinition = entity.Chain(fmt.Sprintf("m%d", i))
		}
		switch r.IntN(4) {
		case 0:
			flags := entity.NewFlagsProperty(entity.SpawnflagsKey)
			flags.AddOption(1<<r.IntN(4), fmt.Sprintf("f%d", i), "", r.IntN(2) == 0)
			c.PropertyDefinitions = append(c.PropertyDefinitions, flags)
		case 1:
			c.PropertyDefinitions = append(c.PropertyDefinitions, str(entity.SpawnflagsKey))
		}
		c.PropertyDefinitions = append(c.PropertyDefinitions, str(fmt.Sprintf("k%d", r.IntN(5))))
		if r.IntN(4) == 0 {
			again := c.PropertyDefinitions[r.IntN(len(c.PropertyDefinitions))].Clone()
			again.ShortDescription = "again"
			c.PropertyDefinitions = append(c.PropertyDefinitions, again)
		}
		out[i] = c
	}
	return out
}

func TestResolveInvariantsOnRandomInput(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for round := range 200 {
		input := randomDeclarations(r, 3+r.IntN(12))

		first := ResolveInheritance(input)
		if err := testkit.CheckResolutionInvariants(input, first.Classes); err != nil {
			t.Fatalf("round %d: %v\ninput: %s", round, err, names(input))
		}

		second := ResolveInheritance(input)
		if len(first.Classes) != len(second.Classes) {
			t.Fatalf("round %d: non-deterministic class count", round)
		}
		for i := range first.Classes {
			if !entity.Equal(first.Classes[i], second.Classes[i]) {
				t.Fatalf("round %d: class %q differs between runs", round, first.Classes[i].Name)
			}
		}
		if a, b := dump(first.Bag), dump(second.Bag); a != b {
			t.Fatalf("round %d: diagnostics differ:\n%s\n---\n%s", round, a, b)
		}
		if got := first.Bag.CountCode(diag.DefInheritanceCycle); got != first.Bag.Count(diag.SevError) {
			t.Fatalf("round %d: only cycles are errors:\n%s", round, dump(first.Bag))
		}
	}
}
