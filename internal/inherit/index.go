package inherit

import (
	"entdef/internal/entity"
	"entdef/internal/source"
)

// Index answers super class lookups over an ordered declaration list.
type Index struct {
	classes []entity.ClassInfo
	names   *source.Interner
	byName  [][]int // StringID -> позиции кандидатов в порядке объявления
}

// NewIndex builds the index once; classes must not change afterwards.
func NewIndex(classes []entity.ClassInfo) *Index {
	idx := &Index{
		classes: classes,
		names:   source.NewInterner(),
		byName:  make([][]int, 1, len(classes)+1),
	}
	for i := range classes {
		id := idx.names.Intern(classes[i].Name)
		if int(id) == len(idx.byName) {
			idx.byName = append(idx.byName, nil)
		}
		idx.byName[id] = append(idx.byName[id], i)
	}
	return idx
}

// Len returns the number of indexed declarations.
func (idx *Index) Len() int {
	return len(idx.classes)
}

// Class returns the declaration at position i.
func (idx *Index) Class(i int) *entity.ClassInfo {
	return &idx.classes[i]
}

// Lookup finds the declaration a class of kind requesting means by name: a
// base class or a class of the same kind. The first match in declaration
// order wins.
func (idx *Index) Lookup(name string, requesting entity.ClassType) (int, bool) {
	for _, i := range idx.positions(name) {
		if matches(idx.classes[i].Type, requesting) {
			return i, true
		}
	}
	return -1, false
}

func (idx *Index) positions(name string) []int {
	id, ok := idx.names.Find(name)
	if !ok {
		return nil
	}
	return idx.byName[id]
}

func matches(candidate, requesting entity.ClassType) bool {
	return candidate == entity.BaseClass || candidate == requesting
}
