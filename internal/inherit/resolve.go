package inherit

import (
	"fmt"
	"strings"

	"entdef/internal/diag"
	"entdef/internal/entity"
)

// Result bundles resolved classes with the diagnostics of the run.
type Result struct {
	Classes []entity.ClassInfo
	Bag     *diag.Bag
}

// ResolveInheritance resolves classes into a fresh unbounded Bag.
func ResolveInheritance(classes []entity.ClassInfo, opts ...Option) Result {
	bag := diag.NewBag(0)
	out := Resolve(classes, diag.BagReporter{Bag: bag}, opts...)
	return Result{Classes: out, Bag: bag}
}

// Resolve returns every point and brush class of classes with its super
// classes folded in, in declaration order. Base classes only take part in
// resolution. The input is not modified.
func Resolve(classes []entity.ClassInfo, r diag.Reporter, opts ...Option) []entity.ClassInfo {
	if r == nil {
		r = diag.NopReporter{}
	}
	filtered := filterRedundantClasses(classes, r)
	reportDuplicateProperties(filtered, r)
	res := newResolver(filtered, r, buildOptions(opts))
	res.reportCycles()

	out := make([]entity.ClassInfo, 0, len(filtered))
	for i := range filtered {
		switch filtered[i].Type {
		case entity.PointClass, entity.BrushClass:
			out = append(out, res.resolve(i))
		case entity.BaseClass:
		}
	}
	return out
}

// reportDuplicateProperties warns about every repeated property key within a
// single declaration. Resolution keeps the first definition.
func reportDuplicateProperties(classes []entity.ClassInfo, r diag.Reporter) {
	for i := range classes {
		c := &classes[i]
		for j, p := range c.PropertyDefinitions {
			if entity.FindProperty(c.PropertyDefinitions[:j], p.Key) < 0 {
				continue
			}
			diag.ReportWarning(r, diag.DefDuplicateProperty, c.Location,
				fmt.Sprintf("property '%s' of '%s' is declared more than once; the first definition is used", p.Key, c.Name)).Emit()
		}
	}
}

type unresolvedKey struct {
	decl int
	name string
}

type resolver struct {
	idx      *Index
	opts     Options
	reporter diag.Reporter

	graphs  map[entity.ClassType]Graph
	cyclic  map[entity.ClassType][]bool // узел входит в цикл для данного вида
	walks   map[entity.ClassType]map[int][]int
	pending map[entity.ClassType][]bool // in-progress marker for walk()
	memo    map[int]entity.ClassInfo

	unresolved map[unresolvedKey]struct{}
}

func newResolver(classes []entity.ClassInfo, r diag.Reporter, opts Options) *resolver {
	res := &resolver{
		idx:        NewIndex(classes),
		opts:       opts,
		reporter:   r,
		graphs:     make(map[entity.ClassType]Graph, 2),
		cyclic:     make(map[entity.ClassType][]bool, 2),
		walks:      make(map[entity.ClassType]map[int][]int, 2),
		pending:    make(map[entity.ClassType][]bool, 2),
		memo:       make(map[int]entity.ClassInfo, len(classes)),
		unresolved: make(map[unresolvedKey]struct{}),
	}
	for _, kind := range []entity.ClassType{entity.PointClass, entity.BrushClass} {
		res.graphs[kind] = BuildGraph(res.idx, kind)
		res.cyclic[kind] = make([]bool, len(classes))
		res.walks[kind] = make(map[int][]int)
		res.pending[kind] = make([]bool, len(classes))
	}
	return res
}

// reportCycles emits one error per distinct cycle. A cycle made of base
// classes shows up in both kind graphs but is reported once.
func (res *resolver) reportCycles() {
	reported := make(map[string]struct{})
	for _, kind := range []entity.ClassType{entity.PointClass, entity.BrushClass} {
		for _, members := range res.graphs[kind].Cycles() {
			for _, m := range members {
				res.cyclic[kind][m] = true
			}
			key := cycleKey(members)
			if _, ok := reported[key]; ok {
				continue
			}
			reported[key] = struct{}{}
			res.reportCycle(members)
		}
	}
}

func (res *resolver) reportCycle(members []NodeID) {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = fmt.Sprintf("'%s'", res.idx.Class(int(m)).Name)
	}
	first := res.idx.Class(int(members[0]))
	msg := fmt.Sprintf("class '%s' is part of an inheritance cycle between %s", first.Name, strings.Join(names, ", "))
	if len(members) == 1 {
		msg = fmt.Sprintf("class '%s' inherits from itself", first.Name)
	}
	b := diag.ReportError(res.reporter, diag.DefInheritanceCycle, first.Location, msg)
	for _, m := range members[1:] {
		c := res.idx.Class(int(m))
		b.WithNote(c.Location, fmt.Sprintf("'%s' declared here", c.Name))
	}
	b.Emit()
}

func cycleKey(members []NodeID) string {
	var sb strings.Builder
	for i, m := range members {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", m)
	}
	return sb.String()
}

// resolve folds every super class reachable from declaration i into a copy of
// it. Lookups along the whole walk use the kind of i.
func (res *resolver) resolve(i int) entity.ClassInfo {
	if c, ok := res.memo[i]; ok {
		return c
	}
	root := res.idx.Class(i)
	acc := root.Clone()
	acc.PropertyDefinitions = uniqueProperties(acc.PropertyDefinitions)
	if res.cyclic[root.Type][i] {
		// член цикла ничего не наследует, но неизвестные имена всё равно сообщаем
		for _, name := range root.SuperClasses {
			res.lookup(i, name, root.Type)
		}
	} else {
		for _, b := range res.walk(i, root.Type) {
			conflicts := fold(&acc, res.idx.Class(b), res.opts.FlagsKey)
			for _, key := range conflicts {
				diag.ReportWarning(res.reporter, diag.DefFlagsMergeConflict, root.Location,
					fmt.Sprintf("cannot merge property '%s' of '%s' with the one inherited from '%s': only one of them is a flags property",
						key, root.Name, res.idx.Class(b).Name)).Emit()
			}
		}
	}
	res.memo[i] = acc
	return acc
}

// walk returns the pre-order of declarations reachable from i for kind,
// without i and without repeats. Results are memoized per kind.
func (res *resolver) walk(i int, kind entity.ClassType) []int {
	if w, ok := res.walks[kind][i]; ok {
		return w
	}
	res.pending[kind][i] = true
	visited := map[int]struct{}{i: {}}
	var order []int
	res.visit(i, kind, visited, &order)
	res.pending[kind][i] = false
	res.walks[kind][i] = order
	return order
}

func (res *resolver) visit(i int, kind entity.ClassType, visited map[int]struct{}, order *[]int) {
	for _, name := range res.idx.Class(i).SuperClasses {
		b, ok := res.lookup(i, name, kind)
		if !ok {
			continue
		}
		if _, seen := visited[b]; seen {
			continue
		}
		visited[b] = struct{}{}
		*order = append(*order, b)

		// A memoized walk is reused only if nothing in it was visited yet;
		// otherwise the shared part has to be skipped node by node.
		if !res.pending[kind][b] {
			sub := res.walk(b, kind)
			if disjoint(sub, visited) {
				for _, s := range sub {
					visited[s] = struct{}{}
				}
				*order = append(*order, sub...)
				continue
			}
		}
		res.visit(b, kind, visited, order)
	}
}

func (res *resolver) lookup(from int, name string, kind entity.ClassType) (int, bool) {
	if b, ok := res.idx.Lookup(name, kind); ok {
		return b, true
	}
	key := unresolvedKey{decl: from, name: name}
	if _, done := res.unresolved[key]; !done {
		res.unresolved[key] = struct{}{}
		c := res.idx.Class(from)
		diag.ReportWarning(res.reporter, diag.DefUnresolvedSuperClass, c.Location,
			fmt.Sprintf("unknown super class '%s' of '%s'", name, c.Name)).Emit()
	}
	return -1, false
}

func disjoint(nodes []int, visited map[int]struct{}) bool {
	for _, n := range nodes {
		if _, ok := visited[n]; ok {
			return false
		}
	}
	return true
}
