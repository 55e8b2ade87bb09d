package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID lookup = %q, %v; want empty string", s, ok)
	}

	id1 := interner.Intern("info_player_start")
	if id1 == NoStringID {
		t.Fatal("Intern returned NoStringID for a non-empty string")
	}
	if id2 := interner.Intern("info_player_start"); id2 != id1 {
		t.Fatalf("Intern returned %d then %d for the same string", id1, id2)
	}
	if s, ok := interner.Lookup(id1); !ok || s != "info_player_start" {
		t.Fatalf("Lookup(%d) = %q, %v", id1, s, ok)
	}
	if id3 := interner.Intern("light"); id3 == id1 {
		t.Fatal("different strings share an id")
	}
	if interner.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", interner.Len())
	}
}

func TestInternerFindDoesNotInsert(t *testing.T) {
	interner := NewInterner()
	interner.Intern("a")

	if _, ok := interner.Find("b"); ok {
		t.Fatal("Find reported an id for a string that was never interned")
	}
	if interner.Len() != 2 {
		t.Fatalf("Find changed the interner: Len() = %d", interner.Len())
	}
	if id, ok := interner.Find("a"); !ok || id != 1 {
		t.Fatalf("Find(a) = %d, %v; want 1, true", id, ok)
	}
}

func TestInternerLookupOutOfRange(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Lookup(StringID(42)); ok {
		t.Fatal("Lookup of an unknown id should fail")
	}
}
