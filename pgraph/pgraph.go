// qrun
// Copyright (C) 2024-2026+ the qrun contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package pgraph implements a small generic directed graph: an
// adjacency-map of Vertex to Vertex to Edge, topological sort, and cycle
// detection. Unlike a resource-coupled graph, vertices and edges here are
// interfaces so that any comparable value can participate.
package pgraph

import (
	"fmt"
	"sort"
)

// Vertex is anything that can be a node in the graph. Any comparable Go
// value satisfies this and can be used as a map key.
type Vertex interface {
	String() string
}

// Edge is anything that can label a directed connection between two
// vertices.
type Edge interface {
	String() string
}

// Graph is a directed graph represented as an adjacency map.
type Graph struct {
	Name string

	// Adjacency maps a vertex to the set of vertices it points to, and the
	// edge that labels each such arrow.
	Adjacency map[Vertex]map[Vertex]Edge
}

// NewGraph builds a new, empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:      name,
		Adjacency: make(map[Vertex]map[Vertex]Edge),
	}
}

// AddVertex adds zero or more vertices to the graph. Adding a vertex that
// already exists is a no-op.
func (g *Graph) AddVertex(xv ...Vertex) {
	for _, v := range xv {
		if _, exists := g.Adjacency[v]; !exists {
			g.Adjacency[v] = make(map[Vertex]Edge)
		}
	}
}

// HasVertex returns whether the vertex is present in the graph.
func (g *Graph) HasVertex(v Vertex) bool {
	_, exists := g.Adjacency[v]
	return exists
}

// DeleteVertex removes a vertex and any edges that touch it.
func (g *Graph) DeleteVertex(v Vertex) {
	delete(g.Adjacency, v)
	for k := range g.Adjacency {
		delete(g.Adjacency[k], v)
	}
}

// AddEdge adds a directed edge from v1 to v2, overwriting any edge that
// already existed between the same pair.
func (g *Graph) AddEdge(v1, v2 Vertex, e Edge) {
	g.AddVertex(v1, v2)
	g.Adjacency[v1][v2] = e
}

// HasEdge returns whether a direct edge from v1 to v2 exists.
func (g *Graph) HasEdge(v1, v2 Vertex) bool {
	m, exists := g.Adjacency[v1]
	if !exists {
		return false
	}
	_, exists = m[v2]
	return exists
}

// DeleteEdge removes the direct edge from v1 to v2, if any.
func (g *Graph) DeleteEdge(v1, v2 Vertex) {
	if m, exists := g.Adjacency[v1]; exists {
		delete(m, v2)
	}
}

// GetEdge returns the edge between v1 and v2, and whether it exists.
func (g *Graph) GetEdge(v1, v2 Vertex) (Edge, bool) {
	m, exists := g.Adjacency[v1]
	if !exists {
		return nil, false
	}
	e, exists := m[v2]
	return e, exists
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.Adjacency)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	count := 0
	for k := range g.Adjacency {
		count += len(g.Adjacency[k])
	}
	return count
}

// Vertices returns an unordered slice of all vertices in the graph.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, len(g.Adjacency))
	for k := range g.Adjacency {
		out = append(out, k)
	}
	return out
}

// VerticesSorted returns all vertices sorted by their String()
// representation, to give deterministic iteration order where one matters
// (eg: logging, tests).
func (g *Graph) VerticesSorted() []Vertex {
	out := g.Vertices()
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// OutgoingGraphVertices returns the vertices that v points directly at.
func (g *Graph) OutgoingGraphVertices(v Vertex) []Vertex {
	var out []Vertex
	for w := range g.Adjacency[v] {
		out = append(out, w)
	}
	return out
}

// IncomingGraphVertices returns the vertices that point directly at v.
func (g *Graph) IncomingGraphVertices(v Vertex) []Vertex {
	var out []Vertex
	for k := range g.Adjacency {
		if _, exists := g.Adjacency[k][v]; exists {
			out = append(out, k)
		}
	}
	return out
}

// InDegree returns the in-degree of every vertex in the graph.
func (g *Graph) InDegree() map[Vertex]int {
	result := make(map[Vertex]int)
	for k := range g.Adjacency {
		result[k] = 0
	}
	for k := range g.Adjacency {
		for z := range g.Adjacency[k] {
			result[z]++
		}
	}
	return result
}

// OutDegree returns the out-degree of every vertex in the graph.
func (g *Graph) OutDegree() map[Vertex]int {
	result := make(map[Vertex]int)
	for k := range g.Adjacency {
		result[k] = len(g.Adjacency[k])
	}
	return result
}

// ErrCycle is returned by TopologicalSort when the graph is not a DAG. The
// Cycles field, when populated by FindCycles, names the offending vertices.
type ErrCycle struct {
	Cycles [][]Vertex
}

// Error satisfies the error interface.
func (e *ErrCycle) Error() string {
	return fmt.Sprintf("cycles were detected in the graph (%d found)", len(e.Cycles))
}

// TopologicalSort returns the vertices of the graph in topological order
// using Kahn's algorithm. If the graph has a cycle, it returns an *ErrCycle
// populated via FindCycles.
func (g *Graph) TopologicalSort() ([]Vertex, error) {
	var result []Vertex
	var queue []Vertex
	remaining := make(map[Vertex]int)

	for v, d := range g.InDegree() {
		if d == 0 {
			queue = append(queue, v)
		} else {
			remaining[v] = d
		}
	}
	// stable order among initial no-indegree vertices
	sort.Slice(queue, func(i, j int) bool { return queue[i].String() < queue[j].String() })

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		result = append(result, v)

		var freed []Vertex
		for n := range g.Adjacency[v] {
			if remaining[n] > 0 {
				remaining[n]--
				if remaining[n] == 0 {
					freed = append(freed, n)
				}
			}
		}
		sort.Slice(freed, func(i, j int) bool { return freed[i].String() < freed[j].String() })
		queue = append(queue, freed...)
	}

	for _, in := range remaining {
		if in > 0 {
			return nil, &ErrCycle{Cycles: g.FindCycles()}
		}
	}

	return result, nil
}

// FindCycles reports cycles found by a DFS with a recursion stack: one
// cycle for each back edge the DFS meets. Not every elementary cycle is
// listed when cycles share vertices. It is used to render diagnostics;
// TopologicalSort alone can only say "a cycle exists."
func (g *Graph) FindCycles() [][]Vertex {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[Vertex]int)
	var stack []Vertex
	var cycles [][]Vertex

	var visit func(v Vertex)
	visit = func(v Vertex) {
		color[v] = gray
		stack = append(stack, v)
		for n := range g.Adjacency[v] {
			switch color[n] {
			case white:
				visit(n)
			case gray:
				// found a back-edge; extract the cycle from the stack
				for i, s := range stack {
					if s == n {
						cyc := append([]Vertex{}, stack[i:]...)
						cycles = append(cycles, cyc)
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[v] = black
	}

	for _, v := range g.VerticesSorted() {
		if color[v] == white {
			visit(v)
		}
	}
	return cycles
}

// Reverse returns a new slice containing vs in reverse order.
func Reverse(vs []Vertex) []Vertex {
	out := make([]Vertex, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}

// String makes the graph pretty-print.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%s): Vertices(%d), Edges(%d)", g.Name, g.NumVertices(), g.NumEdges())
}
