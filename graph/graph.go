/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package graph implements a small deterministic dependency graph keyed by
// resource path.
//
// An edge from A to B states that A depends on B: B must exist before A
// can be created. Orderings only depend on insertion order, never on map
// iteration.
package graph

import (
	"container/heap"
	"sort"
)

// Edge is a dependency of From on To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed dependency graph. The zero value is not usable; use New.
// A Graph is not safe for concurrent mutation.
type Graph struct {
	index map[string]int
	names []string
	// deps[i] and dependents[i] are kept sorted by node index.
	deps       [][]int
	dependents [][]int
	edges      int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode adds name if absent and reports whether it was added.
func (g *Graph) AddNode(name string) bool {
	if _, ok := g.index[name]; ok {
		return false
	}
	g.index[name] = len(g.names)
	g.names = append(g.names, name)
	g.deps = append(g.deps, nil)
	g.dependents = append(g.dependents, nil)
	return true
}

// AddEdge records that from depends on to, adding missing nodes.
// Duplicate edges are ignored; self dependencies are rejected.
func (g *Graph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return invalidf("empty node name in edge %q -> %q", from, to)
	}
	if from == to {
		return invalidf("self dependency on %q", from)
	}
	g.AddNode(from)
	g.AddNode(to)
	u, v := g.index[from], g.index[to]
	var added bool
	g.deps[u], added = insertSorted(g.deps[u], v)
	if !added {
		return nil
	}
	g.dependents[v], _ = insertSorted(g.dependents[v], u)
	g.edges++
	return nil
}

// Has reports whether name is a node of g.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.names) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Edges returns all edges ordered by the insertion index of From, then To.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u, vs := range g.deps {
		for _, v := range vs {
			out = append(out, Edge{From: g.names[u], To: g.names[v]})
		}
	}
	return out
}

// Dependencies returns the nodes name depends on.
func (g *Graph) Dependencies(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.namesOf(g.deps[i])
}

// Dependents returns the nodes depending on name.
func (g *Graph) Dependents(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.namesOf(g.dependents[i])
}

// DependencyOrder returns every node after all of its dependencies.
// Among nodes that are ready at the same time, the one inserted first wins.
func (g *Graph) DependencyOrder() ([]string, error) {
	order := g.orderIndices()
	if len(order) != len(g.names) {
		return nil, cycleError(g.findCycle())
	}
	return g.namesOf(order), nil
}

// Validate reports a cycle error if g is not acyclic.
func (g *Graph) Validate() error {
	if len(g.orderIndices()) != len(g.names) {
		return cycleError(g.findCycle())
	}
	return nil
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// orderIndices runs Kahn's algorithm over dependency counts. The ready
// queue is a min-heap by insertion index.
func (g *Graph) orderIndices() []int {
	pending := make([]int, len(g.deps))
	ready := &intMinHeap{}
	heap.Init(ready)
	for i, ds := range g.deps {
		pending[i] = len(ds)
		if pending[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(g.names))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, d := range g.dependents[n] {
			pending[d]--
			if pending[d] == 0 {
				heap.Push(ready, d)
			}
		}
	}
	return out
}

// findCycle performs a deterministic DFS along dependency edges and
// returns one cycle, or nil.
func (g *Graph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]int, len(g.names))
	parent := make([]int, len(g.names))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int

	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.deps[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// Back edge u -> v closes v ... u -> v.
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range g.names {
		if color[i] == white && dfs(i) {
			break
		}
	}
	if len(cycle) == 0 {
		return nil
	}

	out := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		out = append(out, g.names[cycle[i]])
	}
	return out
}

func (g *Graph) namesOf(idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = g.names[n]
	}
	return out
}

func insertSorted(s []int, v int) ([]int, bool) {
	i := sort.SearchInts(s, v)
	if i < len(s) && s[i] == v {
		return s, false
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s, true
}
