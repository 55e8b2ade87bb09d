package inherit

import (
	"slices"
	"testing"

	"entdef/internal/diag"
	"entdef/internal/entity"
)

func TestResolveFilterBaseClasses(t *testing.T) {
	input := []entity.ClassInfo{
		decl(entity.BaseClass, "base"),
		decl(entity.PointClass, "point"),
		decl(entity.BrushClass, "brush"),
	}
	res := ResolveInheritance(input)
	checkUnordered(t, res.Classes, []entity.ClassInfo{
		decl(entity.PointClass, "point"),
		decl(entity.BrushClass, "brush"),
	})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveFilterRedundantClasses(t *testing.T) {
	input := []entity.ClassInfo{
		at(decl(entity.BaseClass, "a"), 0, 0),
		at(decl(entity.PointClass, "a"), 0, 1),
		at(decl(entity.BrushClass, "b"), 0, 1),
		at(decl(entity.BaseClass, "b"), 0, 0),
		at(decl(entity.PointClass, "c"), 0, 1),
		at(decl(entity.BrushClass, "c"), 0, 2),
		at(decl(entity.BaseClass, "c"), 0, 0),
		at(decl(entity.PointClass, "d"), 0, 0),
		at(decl(entity.PointClass, "d"), 0, 1),
		at(decl(entity.BrushClass, "e"), 0, 0),
		at(decl(entity.BrushClass, "e"), 0, 1),
		at(decl(entity.BaseClass, "f"), 0, 0),
		at(decl(entity.BaseClass, "f"), 0, 1),
	}
	res := ResolveInheritance(input)
	checkUnordered(t, res.Classes, []entity.ClassInfo{
		at(decl(entity.BrushClass, "b"), 0, 1),
		at(decl(entity.PointClass, "c"), 0, 1),
		at(decl(entity.BrushClass, "c"), 0, 2),
		at(decl(entity.PointClass, "d"), 0, 0),
		at(decl(entity.BrushClass, "e"), 0, 0),
	})
	checkCounts(t, res.Bag, 6, 0)
	if got := res.Bag.CountCode(diag.DefRedundantClass); got != 6 {
		t.Fatalf("redundant class warnings: %d", got)
	}
}

func TestResolveOverrideMembersIfNotPresent(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.Description = entity.Ptr("description")
	base.Color = &entity.Color{R: 1, G: 2, B: 3}
	base.Size = entity.Ptr(entity.UniformBBox(-1, 1))
	base.ModelDefinition = entity.Chain("abc")
	base.DecalDefinition = entity.Chain("def")

	res := ResolveInheritance([]entity.ClassInfo{base, decl(entity.PointClass, "point", "base")})

	want := decl(entity.PointClass, "point", "base")
	want.Description = entity.Ptr("description")
	want.Color = &entity.Color{R: 1, G: 2, B: 3}
	want.Size = entity.Ptr(entity.UniformBBox(-1, 1))
	want.ModelDefinition = entity.Chain("abc")
	want.DecalDefinition = entity.Chain("def")
	checkUnordered(t, res.Classes, []entity.ClassInfo{want})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveSkipMembersIfPresent(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.Description = entity.Ptr("description")
	base.Color = &entity.Color{R: 1, G: 2, B: 3}
	base.Size = entity.Ptr(entity.UniformBBox(-1, 1))

	point := decl(entity.PointClass, "point", "base")
	point.Description = entity.Ptr("blah blah")
	point.Color = &entity.Color{R: 2, G: 3, B: 4}
	point.Size = entity.Ptr(entity.UniformBBox(-2, 2))

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	checkUnordered(t, res.Classes, []entity.ClassInfo{point})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveMergeModelAndDecalDefinitions(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.ModelDefinition = entity.Chain("abc")
	base.DecalDefinition = entity.Chain("decal1")
	point := decl(entity.PointClass, "point", "base")
	point.ModelDefinition = entity.Chain("xyz")
	point.DecalDefinition = entity.Chain("decal2")

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	want := decl(entity.PointClass, "point", "base")
	want.ModelDefinition = entity.Chain("xyz").Append(entity.Chain("abc"))
	want.DecalDefinition = entity.Chain("decal2", "decal1")
	checkUnordered(t, res.Classes, []entity.ClassInfo{want})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveInheritPropertyDefinitions(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.PropertyDefinitions = props(tagged("a1", "a1_1"), str("a2"))
	point := decl(entity.PointClass, "point", "base")
	point.PropertyDefinitions = props(tagged("a1", "a1_2"), str("a3"))

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	want := decl(entity.PointClass, "point", "base")
	want.PropertyDefinitions = props(tagged("a1", "a1_2"), str("a3"), str("a2"))
	checkUnordered(t, res.Classes, []entity.ClassInfo{want})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveMergeSpawnflagsSimpleInheritance(t *testing.T) {
	a1 := entity.NewFlagsProperty(entity.SpawnflagsKey)
	a1.AddOption(1<<1, "a1_1", "", true)
	a1.AddOption(1<<2, "a1_2", "", false)
	a2 := entity.NewFlagsProperty(entity.SpawnflagsKey)
	a2.AddOption(1<<2, "a2_2", "", true)
	a2.AddOption(1<<4, "a2_4", "", false)

	base := decl(entity.BaseClass, "base")
	base.PropertyDefinitions = props(a1)
	point := decl(entity.PointClass, "point", "base")
	point.PropertyDefinitions = props(a2)

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	checkCounts(t, res.Bag, 0, 0)
	if len(res.Classes) != 1 {
		t.Fatalf("got %d classes", len(res.Classes))
	}
	got := res.Classes[0].PropertyDefinitions
	if len(got) != 1 {
		t.Fatalf("got %d properties", len(got))
	}
	if got[0].Type != entity.PropFlags || got[0].Key != entity.SpawnflagsKey {
		t.Fatalf("unexpected property: %+v", got[0])
	}
	want := []entity.FlagOption{
		{Value: 1 << 1, ShortDescription: "a1_1", IsDefault: true},
		{Value: 1 << 2, ShortDescription: "a2_2", IsDefault: true},
		{Value: 1 << 4, ShortDescription: "a2_4", IsDefault: false},
	}
	if !slices.Equal(got[0].Options, want) {
		t.Fatalf("options:\ngot  %+v\nwant %+v", got[0].Options, want)
	}
	if opts := base.PropertyDefinitions[0].Options; len(opts) != 2 || opts[1].ShortDescription != "a1_2" {
		t.Fatalf("base declaration was modified: %+v", opts)
	}
}

func chainInput() []entity.ClassInfo {
	base1 := decl(entity.BaseClass, "base1")
	base1.Description = entity.Ptr("base1")
	base1.Size = entity.Ptr(entity.UniformBBox(-2, 2))
	base1.ModelDefinition = entity.Chain("abc")
	base1.DecalDefinition = entity.Chain("dec1")
	base1.PropertyDefinitions = props(tagged("a1", "a1_1"), str("a2"))

	base2 := decl(entity.BaseClass, "base2")
	base2.Description = entity.Ptr("base2")
	base2.Color = &entity.Color{R: 1, G: 2, B: 3}
	base2.ModelDefinition = entity.Chain("def")
	base2.DecalDefinition = entity.Chain("dec2")
	base2.PropertyDefinitions = props(tagged("a1", "a1_2"), str("a3"))

	point := decl(entity.PointClass, "point")
	point.ModelDefinition = entity.Chain("xyz")
	point.DecalDefinition = entity.Chain("dec3")
	return []entity.ClassInfo{base1, base2, point}
}

func TestResolveChainOfBaseClasses(t *testing.T) {
	input := chainInput()
	input[1].SuperClasses = []string{"base1"}
	input[2].SuperClasses = []string{"base2"}

	res := ResolveInheritance(input)
	want := decl(entity.PointClass, "point", "base2")
	want.Description = entity.Ptr("base2")
	want.Color = &entity.Color{R: 1, G: 2, B: 3}
	want.Size = entity.Ptr(entity.UniformBBox(-2, 2))
	want.ModelDefinition = entity.Chain("xyz", "def", "abc")
	want.DecalDefinition = entity.Chain("dec3", "dec2", "dec1")
	want.PropertyDefinitions = props(tagged("a1", "a1_2"), str("a3"), str("a2"))
	checkUnordered(t, res.Classes, []entity.ClassInfo{want})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveMultipleBaseClasses(t *testing.T) {
	input := chainInput()
	input[2].SuperClasses = []string{"base1", "base2"}

	res := ResolveInheritance(input)
	want := decl(entity.PointClass, "point", "base1", "base2")
	want.Description = entity.Ptr("base1")
	want.Color = &entity.Color{R: 1, G: 2, B: 3}
	want.Size = entity.Ptr(entity.UniformBBox(-2, 2))
	want.ModelDefinition = entity.Chain("xyz", "abc", "def")
	want.DecalDefinition = entity.Chain("dec3", "dec1", "dec2")
	want.PropertyDefinitions = props(tagged("a1", "a1_1"), str("a2"), str("a3"))
	checkUnordered(t, res.Classes, []entity.ClassInfo{want})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveDiamondInheritance(t *testing.T) {
	base1 := decl(entity.BaseClass, "base1")
	base1.Description = entity.Ptr("base1")
	base1.Size = entity.Ptr(entity.UniformBBox(-2, 2))
	base1.ModelDefinition = entity.Chain("common")
	base1.PropertyDefinitions = props(str("a1"))

	base21 := decl(entity.BaseClass, "base2_1", "base1")
	base21.Description = entity.Ptr("base2_1")
	base21.Color = &entity.Color{R: 1, G: 2, B: 3}
	base21.PropertyDefinitions = props(str("a2_1"))

	base22 := decl(entity.BaseClass, "base2_2", "base1")
	base22.Description = entity.Ptr("base2_2")
	base22.Size = entity.Ptr(entity.UniformBBox(-1, 1))
	base22.PropertyDefinitions = props(str("a2_2"))

	point1 := decl(entity.PointClass, "point1", "base2_1", "base2_2")
	point1.PropertyDefinitions = props(str("a3"))
	point2 := decl(entity.PointClass, "point2", "base2_2", "base2_1")
	point2.PropertyDefinitions = props(str("a3"))

	res := ResolveInheritance([]entity.ClassInfo{base1, base21, base22, point1, point2})

	want1 := decl(entity.PointClass, "point1", "base2_1", "base2_2")
	want1.Description = entity.Ptr("base2_1")
	want1.Color = &entity.Color{R: 1, G: 2, B: 3}
	want1.Size = entity.Ptr(entity.UniformBBox(-2, 2))
	want1.ModelDefinition = entity.Chain("common")
	want1.PropertyDefinitions = props(str("a3"), str("a2_1"), str("a1"), str("a2_2"))

	want2 := decl(entity.PointClass, "point2", "base2_2", "base2_1")
	want2.Description = entity.Ptr("base2_2")
	want2.Color = &entity.Color{R: 1, G: 2, B: 3}
	want2.Size = entity.Ptr(entity.UniformBBox(-1, 1))
	want2.ModelDefinition = entity.Chain("common")
	want2.PropertyDefinitions = props(str("a3"), str("a2_2"), str("a1"), str("a2_1"))

	checkUnordered(t, res.Classes, []entity.ClassInfo{want1, want2})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveOverloadedSuperClass(t *testing.T) {
	pointBase := decl(entity.PointClass, "base")
	pointBase.Description = entity.Ptr("point")
	brushBase := decl(entity.BrushClass, "base")
	brushBase.Description = entity.Ptr("brush")

	res := ResolveInheritance([]entity.ClassInfo{
		pointBase, brushBase,
		decl(entity.PointClass, "point", "base"),
		decl(entity.BrushClass, "brush", "base"),
	})

	wantPoint := decl(entity.PointClass, "point", "base")
	wantPoint.Description = entity.Ptr("point")
	wantBrush := decl(entity.BrushClass, "brush", "base")
	wantBrush.Description = entity.Ptr("brush")
	checkUnordered(t, res.Classes, []entity.ClassInfo{pointBase, brushBase, wantPoint, wantBrush})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveIndirectOverloadedSuperClass(t *testing.T) {
	pointBase := decl(entity.PointClass, "base")
	pointBase.Description = entity.Ptr("point")
	brushBase := decl(entity.BrushClass, "base")
	brushBase.Description = entity.Ptr("brush")

	res := ResolveInheritance([]entity.ClassInfo{
		pointBase, brushBase,
		decl(entity.BaseClass, "mid", "base"),
		decl(entity.PointClass, "point", "mid"),
		decl(entity.BrushClass, "brush", "mid"),
	})

	wantPoint := decl(entity.PointClass, "point", "mid")
	wantPoint.Description = entity.Ptr("point")
	wantBrush := decl(entity.BrushClass, "brush", "mid")
	wantBrush.Description = entity.Ptr("brush")
	checkUnordered(t, res.Classes, []entity.ClassInfo{pointBase, brushBase, wantPoint, wantBrush})
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveKeepsDeclarationOrder(t *testing.T) {
	input := []entity.ClassInfo{
		decl(entity.BrushClass, "z"),
		decl(entity.BaseClass, "common"),
		decl(entity.PointClass, "a", "common"),
		decl(entity.BrushClass, "m", "common"),
	}
	res := ResolveInheritance(input)
	if got := names(res.Classes); got != "brush:z point:a brush:m" {
		t.Fatalf("order: %s", got)
	}
}

func TestResolveIdentityWithoutSuperClasses(t *testing.T) {
	light := at(decl(entity.PointClass, "light"), 4, 1)
	light.Description = entity.Ptr("light source")
	light.PropertyDefinitions = props(str("light"), str("style"))
	wall := at(decl(entity.BrushClass, "func_wall"), 9, 1)

	res := ResolveInheritance([]entity.ClassInfo{light, wall})
	if len(res.Classes) != 2 || !entity.Equal(res.Classes[0], light) || !entity.Equal(res.Classes[1], wall) {
		t.Fatalf("identity violated: %s", names(res.Classes))
	}
	checkCounts(t, res.Bag, 0, 0)
}

func TestResolveSharedSubtreeKeepsPreOrder(t *testing.T) {
	// r -> c, b; b -> c, d; c -> e; d -> e
	mk := func(name string, supers ...string) entity.ClassInfo {
		c := decl(entity.BaseClass, name, supers...)
		c.PropertyDefinitions = props(str("p" + name))
		return c
	}
	input := []entity.ClassInfo{
		mk("e"),
		mk("d", "e"),
		mk("c", "e"),
		mk("b", "c", "d"),
		decl(entity.PointClass, "q", "b"),
		decl(entity.PointClass, "r", "c", "b"),
	}
	res := ResolveInheritance(input)
	checkCounts(t, res.Bag, 0, 0)
	if len(res.Classes) != 2 {
		t.Fatalf("got %s", names(res.Classes))
	}
	wantQ := []string{"pb", "pc", "pe", "pd"}
	wantR := []string{"pc", "pe", "pb", "pd"}
	if got := res.Classes[0].PropertyKeys(); !slices.Equal(got, wantQ) {
		t.Fatalf("q keys: %v, want %v", got, wantQ)
	}
	if got := res.Classes[1].PropertyKeys(); !slices.Equal(got, wantR) {
		t.Fatalf("r keys: %v, want %v", got, wantR)
	}
}

func TestResolveDoesNotModifyInput(t *testing.T) {
	input := chainInput()
	input[1].SuperClasses = []string{"base1"}
	input[2].SuperClasses = []string{"base2"}
	before := make([]entity.ClassInfo, len(input))
	for i := range input {
		before[i] = input[i].Clone()
	}
	_ = ResolveInheritance(input)
	for i := range input {
		if !entity.Equal(input[i], before[i]) {
			t.Fatalf("input %d (%s) was modified", i, input[i].Name)
		}
	}
}

func TestResolveUnresolvedSuperClass(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.Description = entity.Ptr("from base")
	point := at(decl(entity.PointClass, "point", "missing", "base", "missing"), 7, 1)

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	checkCounts(t, res.Bag, 1, 0)
	d := res.Bag.Items()[0]
	if d.Code != diag.DefUnresolvedSuperClass || d.Primary != point.Location {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if len(res.Classes) != 1 || res.Classes[0].Description == nil || *res.Classes[0].Description != "from base" {
		t.Fatalf("resolution should continue past the unresolved name")
	}
}

func TestResolveUnresolvedOnlyForOneKind(t *testing.T) {
	pointBase := decl(entity.PointClass, "base")
	pointBase.Description = entity.Ptr("point")
	mid := at(decl(entity.BaseClass, "mid", "base"), 3, 1)

	res := ResolveInheritance([]entity.ClassInfo{
		pointBase,
		mid,
		decl(entity.PointClass, "point", "mid"),
		decl(entity.BrushClass, "brush", "mid"),
		decl(entity.BrushClass, "brush2", "mid"),
	})
	checkCounts(t, res.Bag, 1, 0)
	if got := res.Bag.Items()[0].Primary; got != mid.Location {
		t.Fatalf("warning should point at the referencing declaration, got %v", got)
	}
	if res.Classes[1].Description != nil {
		t.Fatalf("brush must not inherit from the point class 'base'")
	}
}

func TestResolveCycleBetweenTwoClasses(t *testing.T) {
	a := at(decl(entity.PointClass, "A", "B"), 1, 1)
	a.PropertyDefinitions = props(str("a"))
	b := at(decl(entity.PointClass, "B", "A"), 2, 1)
	b.PropertyDefinitions = props(str("b"))

	res := ResolveInheritance([]entity.ClassInfo{a, b})
	checkCounts(t, res.Bag, 0, 1)
	d := res.Bag.Items()[0]
	if d.Code != diag.DefInheritanceCycle || d.Primary != a.Location || len(d.Notes) != 1 || d.Notes[0].Loc != b.Location {
		t.Fatalf("unexpected cycle diagnostic: %+v", d)
	}
	checkUnordered(t, res.Classes, []entity.ClassInfo{a, b})
}

func TestResolveCycleMemberStillReportsUnknownSuperClass(t *testing.T) {
	a := at(decl(entity.PointClass, "a", "b", "missing"), 1, 1)
	b := at(decl(entity.PointClass, "b", "a"), 2, 1)

	res := ResolveInheritance([]entity.ClassInfo{a, b})
	checkCounts(t, res.Bag, 1, 1)
	if got := res.Bag.CountCode(diag.DefUnresolvedSuperClass); got != 1 {
		t.Fatalf("unresolved warnings: got %d\n%s", got, dump(res.Bag))
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.DefUnresolvedSuperClass && d.Primary != a.Location {
			t.Fatalf("warning should point at 'a', got %v", d.Primary)
		}
	}
	checkUnordered(t, res.Classes, []entity.ClassInfo{a, b})
}

func TestResolveCycleThroughBaseClassesReportedOnce(t *testing.T) {
	x := decl(entity.BaseClass, "X", "Y")
	x.Description = entity.Ptr("x")
	y := decl(entity.BaseClass, "Y", "X")
	y.PropertyDefinitions = props(str("y"))

	res := ResolveInheritance([]entity.ClassInfo{
		x, y,
		decl(entity.PointClass, "p", "X"),
		decl(entity.BrushClass, "b", "Y"),
	})
	checkCounts(t, res.Bag, 0, 1)

	// classes reaching the cycle still resolve, every base folded once
	wantP := decl(entity.PointClass, "p", "X")
	wantP.Description = entity.Ptr("x")
	wantP.PropertyDefinitions = props(str("y"))
	wantB := decl(entity.BrushClass, "b", "Y")
	wantB.Description = entity.Ptr("x")
	wantB.PropertyDefinitions = props(str("y"))
	checkUnordered(t, res.Classes, []entity.ClassInfo{wantP, wantB})
}

func TestResolveSelfReference(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.Description = entity.Ptr("base")
	self := decl(entity.PointClass, "self", "self", "base")

	res := ResolveInheritance([]entity.ClassInfo{base, self})
	checkCounts(t, res.Bag, 0, 1)
	checkUnordered(t, res.Classes, []entity.ClassInfo{self})
}

func TestResolveFlagsMergeConflict(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.PropertyDefinitions = props(str(entity.SpawnflagsKey), str("angle"))
	flags := entity.NewFlagsProperty(entity.SpawnflagsKey)
	flags.AddOption(1, "crucified", "", false)
	point := at(decl(entity.PointClass, "zombie", "base"), 12, 1)
	point.PropertyDefinitions = props(flags)

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	checkCounts(t, res.Bag, 1, 0)
	if d := res.Bag.Items()[0]; d.Code != diag.DefFlagsMergeConflict || d.Primary != point.Location {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	got := res.Classes[0]
	if keys := got.PropertyKeys(); !slices.Equal(keys, []string{entity.SpawnflagsKey, "angle"}) {
		t.Fatalf("keys: %v", keys)
	}
	if !got.PropertyDefinitions[0].IsFlags() {
		t.Fatalf("derived flags property must win")
	}
}

func TestResolveWithFlagsKey(t *testing.T) {
	mkFlags := func(key string, value int, short string) entity.PropertyDefinition {
		p := entity.NewFlagsProperty(key)
		p.AddOption(value, short, "", false)
		return p
	}
	base := decl(entity.BaseClass, "base")
	base.PropertyDefinitions = props(mkFlags("flags", 1, "base"))
	point := decl(entity.PointClass, "point", "base")
	point.PropertyDefinitions = props(mkFlags("flags", 2, "point"))
	input := []entity.ClassInfo{base, point}

	merged := ResolveInheritance(input, WithFlagsKey("flags"))
	if n := len(merged.Classes[0].PropertyDefinitions[0].Options); n != 2 {
		t.Fatalf("custom flags key: got %d options, want 2", n)
	}
	plain := ResolveInheritance(input)
	if n := len(plain.Classes[0].PropertyDefinitions[0].Options); n != 1 {
		t.Fatalf("default flags key: got %d options, want 1", n)
	}
	o := DefaultOptions()
	WithFlagsKey("")(&o)
	if o.FlagsKey != entity.SpawnflagsKey {
		t.Fatalf("empty key should keep the default, got %q", o.FlagsKey)
	}
}

func TestResolveReportsThroughReporter(t *testing.T) {
	bag := diag.NewBag(0)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	out := Resolve([]entity.ClassInfo{
		decl(entity.PointClass, "a"),
		decl(entity.PointClass, "a"),
	}, r)
	if len(out) != 1 || bag.Len() != 1 {
		t.Fatalf("got %d classes and %d diagnostics", len(out), bag.Len())
	}
	if Resolve(nil, nil) == nil {
		t.Fatalf("empty input should give an empty, non-nil result")
	}
}

func TestResolveDuplicateOwnProperty(t *testing.T) {
	base := decl(entity.BaseClass, "base")
	base.PropertyDefinitions = props(tagged("k", "base"), str("b"), tagged("b", "again"))
	point := at(decl(entity.PointClass, "point", "base"), 4, 1)
	point.PropertyDefinitions = props(tagged("k", "first"), str("x"), tagged("k", "second"))

	res := ResolveInheritance([]entity.ClassInfo{base, point})
	checkCounts(t, res.Bag, 2, 0)
	if got := res.Bag.CountCode(diag.DefDuplicateProperty); got != 2 {
		t.Fatalf("duplicate property warnings: got %d\n%s", got, dump(res.Bag))
	}
	want := decl(entity.PointClass, "point", "base")
	want.Location = point.Location
	want.PropertyDefinitions = props(tagged("k", "first"), str("x"), str("b"))
	checkUnordered(t, res.Classes, []entity.ClassInfo{want})
}
