package inherit

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"entdef/internal/entity"
)

// NodeID is a declaration position in the filtered list.
type NodeID uint32

// Graph holds the super class edges as seen by one requesting kind.
type Graph struct {
	Kind  entity.ClassType
	Edges [][]NodeID // Edges[derived] = []super, в порядке объявления
}

// BuildGraph links every declaration to the declarations its super class
// names resolve to for kind. Unresolved names are left out; duplicates are
// collapsed.
func BuildGraph(idx *Index, kind entity.ClassType) Graph {
	g := Graph{Kind: kind, Edges: make([][]NodeID, idx.Len())}
	for from := range idx.Len() {
		c := idx.Class(from)
		if !c.HasSuperClasses() {
			continue
		}
		for _, name := range c.SuperClasses {
			to, ok := idx.Lookup(name, kind)
			if !ok {
				continue
			}
			id := nodeID(to)
			if slices.Contains(g.Edges[from], id) {
				continue
			}
			g.Edges[from] = append(g.Edges[from], id)
		}
	}
	return g
}

// Cycles returns the strongly connected components that form cycles: more
// than one member, or a single member with an edge to itself. Members are
// sorted ascending and components are ordered by their first member.
func (g Graph) Cycles() [][]NodeID {
	t := tarjan{
		g:       g,
		index:   make([]int, len(g.Edges)),
		lowlink: make([]int, len(g.Edges)),
		onStack: make([]bool, len(g.Edges)),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for v := range g.Edges {
		if t.index[v] < 0 {
			t.strongConnect(v)
		}
	}
	slices.SortFunc(t.cycles, func(a, b []NodeID) int {
		return int(a[0]) - int(b[0])
	})
	return t.cycles
}

type tarjan struct {
	g       Graph
	next    int
	index   []int
	lowlink []int
	onStack []bool
	stack   []NodeID
	cycles  [][]NodeID
}

func (t *tarjan) strongConnect(v int) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, nodeID(v))
	t.onStack[v] = true

	for _, to := range t.g.Edges[v] {
		w := int(to)
		switch {
		case t.index[w] < 0:
			t.strongConnect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		case t.onStack[w]:
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var comp []NodeID
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		comp = append(comp, top)
		if int(top) == v {
			break
		}
	}
	if len(comp) == 1 && !slices.Contains(t.g.Edges[v], nodeID(v)) {
		return
	}
	slices.Sort(comp)
	t.cycles = append(t.cycles, comp)
}

func nodeID(i int) NodeID {
	id, err := safecast.Conv[NodeID](i)
	if err != nil {
		panic(fmt.Errorf("class node id overflow: %w", err))
	}
	return id
}
