// Package typedep detects recursive struct, union and typedef definitions.
//
// A type depends on every named type it embeds by value. Pointer members are
// not dependencies because a pointer's size does not depend on what it points
// to. A cycle in this graph means a type would have to contain itself.
package typedep

import (
	"cmp"
	"slices"

	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/scope"
)

// Kind tags a dependency node.
type Kind int

const (
	// NewType is a typedef alias.
	NewType Kind = iota
	// Algebraic is a struct or union.
	Algebraic
)

// Dep is a node in the type dependency graph.
type Dep struct {
	Kind Kind
	Name string
}

func (d Dep) String() string {
	return d.Name
}

// Graph maps a declared type to the named types it depends on.
type Graph map[Dep][]Dep

// Build constructs the dependency graph from the top-level scope. Only
// struct, union and typedef entities contribute nodes.
func Build(root *scope.Scope) Graph {
	g := make(Graph)

	for _, name := range root.Names() {
		e, _ := root.LookupLocal(name)
		switch e := e.(type) {
		case ast.Struct:
			g[Dep{Kind: Algebraic, Name: name}] = memberDeps(e.Members)
		case ast.Union:
			g[Dep{Kind: Algebraic, Name: name}] = memberDeps(e.Members)
		case ast.TypeDef:
			var deps []Dep
			if d, ok := depOf(e.Aliased); ok {
				deps = append(deps, d)
			}
			g[Dep{Kind: NewType, Name: name}] = deps
		}
	}

	return g
}

func memberDeps(members []ast.Member) []Dep {
	deps := []Dep{}
	for _, m := range members {
		if d, ok := depOf(m.Type); ok {
			deps = append(deps, d)
		}
	}
	return deps
}

// depOf returns the node a by-value use of t depends on.
func depOf(t ast.TypeRef) (Dep, bool) {
	if t.IsPointer() {
		return Dep{}, false
	}
	switch t.Base {
	case ast.StructType, ast.UnionType:
		return Dep{Kind: Algebraic, Name: t.Name}, true
	case ast.NamedType:
		return Dep{Kind: NewType, Name: t.Name}, true
	default:
		return Dep{}, false
	}
}

// visit states
const (
	unvisited = iota
	onPath
	finished
)

// DetectCycle returns the first cycle found, as a path that starts and ends
// at the same node, or nil if the graph is acyclic.
//
// Nodes are tracked in three states. Reaching a node that is on the current
// path closes a cycle; reaching a finished node does not, so a type shared by
// two siblings (a diamond) is not reported.
func DetectCycle(g Graph) []Dep {
	state := make(map[Dep]int, len(g))
	var path []Dep

	var visit func(Dep) []Dep
	visit = func(n Dep) []Dep {
		state[n] = onPath
		path = append(path, n)

		for _, next := range g[n] {
			switch state[next] {
			case onPath:
				start := slices.Index(path, next)
				cycle := append([]Dep(nil), path[start:]...)
				return append(cycle, next)
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[n] = finished
		return nil
	}

	for _, n := range sortedNodes(g) {
		if state[n] == unvisited {
			if cycle := visit(n); cycle != nil {
				return cycle
			}
		}
	}

	return nil
}

// sortedNodes orders nodes by name then kind so results do not depend on map
// iteration order.
func sortedNodes(g Graph) []Dep {
	nodes := make([]Dep, 0, len(g))
	for n := range g {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b Dep) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	return nodes
}

// Check builds the graph for root and reports a cycle as a
// CyclicTypeDefinition error.
func Check(root *scope.Scope) error {
	cycle := DetectCycle(Build(root))
	if cycle == nil {
		return nil
	}
	names := make([]string, len(cycle))
	for i, d := range cycle {
		names[i] = d.String()
	}
	return diag.CyclicTypeDefinition(names)
}
