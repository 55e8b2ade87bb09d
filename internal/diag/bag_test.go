package diag

import (
	"testing"

	"entdef/internal/source"
)

func TestBagCountsBySeverity(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	r.Report(DefRedundantClass, SevWarning, source.At(0, 1, 1), "duplicate class info 'a'", nil)
	r.Report(DefRedundantClass, SevWarning, source.At(0, 2, 1), "duplicate class info 'b'", nil)
	r.Report(DefInheritanceCycle, SevError, source.At(0, 3, 1), "cycle", nil)

	if got := bag.Count(SevWarning); got != 2 {
		t.Errorf("Count(SevWarning) = %d, want 2", got)
	}
	if got := bag.Count(SevError); got != 1 {
		t.Errorf("Count(SevError) = %d, want 1", got)
	}
	if got := bag.Count(SevInfo); got != 0 {
		t.Errorf("Count(SevInfo) = %d, want 0", got)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("HasErrors/HasWarnings should both be true")
	}
	if got := bag.CountCode(DefRedundantClass); got != 2 {
		t.Errorf("CountCode = %d, want 2", got)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(New(SevWarning, DefRedundantClass, source.At(0, 1, 1), "a")) {
		t.Fatal("first Add should succeed")
	}
	if bag.Add(New(SevWarning, DefRedundantClass, source.At(0, 2, 1), "b")) {
		t.Fatal("second Add should be rejected by the limit")
	}
	if bag.Len() != 1 || bag.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d, want 1 and 1", bag.Len(), bag.Dropped())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, DefUnresolvedSuperClass, source.At(1, 1, 1), "w"))
	bag.Add(New(SevWarning, DefRedundantClass, source.At(0, 5, 1), "later"))
	bag.Add(NewError(DefInheritanceCycle, source.At(0, 5, 1), "err"))
	bag.Add(New(SevWarning, DefRedundantClass, source.At(0, 5, 1), "later"))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", bag.Len())
	}

	bag.Sort()
	items := bag.Items()
	if items[0].Code != DefInheritanceCycle {
		t.Errorf("errors sort before warnings at the same location, got %v", items[0].Code)
	}
	if items[1].Code != DefRedundantClass || items[2].Primary.File != 1 {
		t.Errorf("unexpected order: %+v", items)
	}
}

func TestBagMergeAndFilter(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(DefRedundantClass, source.At(0, 1, 1), "a"))
	b := NewBag(5)
	b.Add(NewError(DefInheritanceCycle, source.At(0, 2, 1), "b"))
	b.Add(New(SevInfo, DefInfo, source.At(0, 3, 1), "c"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Merge: Len = %d, want 3", a.Len())
	}
	a.Filter(func(d Diagnostic) bool { return d.Severity >= SevWarning })
	if a.Len() != 2 {
		t.Fatalf("Filter: Len = %d, want 2", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(DefUnresolvedSuperClass, SevWarning, source.At(0, 4, 2), "missing 'x'", nil)
	}
	r.Report(DefUnresolvedSuperClass, SevWarning, source.At(0, 4, 2), "missing 'y'", nil)
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, DefInheritanceCycle, source.At(0, 1, 1), "cycle").
		WithNote(source.At(0, 2, 1), "also here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	if notes := bag.Items()[0].Notes; len(notes) != 1 || notes[0].Msg != "also here" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestMultiReporter(t *testing.T) {
	a, b := NewBag(0), NewBag(0)
	m := MultiReporter{BagReporter{Bag: a}, nil, BagReporter{Bag: b}}
	m.Report(DefRedundantClass, SevWarning, source.Location{}, "x", nil)
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("fan-out failed: %d, %d", a.Len(), b.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		DefRedundantClass:   "DEF1001",
		DclInvalidClassType: "DCL2002",
		IOLoadFileError:     "IO4001",
		ObsTimings:          "OBS6001",
		Code(9999):          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("unknown title = %q", got)
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"info": SevInfo, "WARN": SevWarning, " error ": SevError} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
}
