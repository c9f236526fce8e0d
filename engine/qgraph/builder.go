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

package qgraph

import (
	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/util/errwrap"
)

// Add freezes fn and inserts its edge into the graph. It looks up or
// creates the input-set and output-set nodes (by file-set equality), drops
// any pre-existing edge directly between those two nodes (it would be a
// redundant mapping once the function edge is in place), and inserts the
// new function edge.
func (g *Graph) Add(fn engine.Function) error {
	if err := fn.Freeze(); err != nil {
		return errwrap.Wrapf(err, "could not freeze function %q", fn.Description())
	}

	inNode := g.node(fn.Inputs())
	outNode := g.node(fn.Outputs())

	g.removeEdgeBetween(inNode, outNode)

	fe := &functionEdge{fn: fn, status: engine.Pending}
	g.g.AddEdge(inNode, outNode, fe)
	g.functions = append(g.functions, fe)

	if g.Logf != nil {
		g.Logf("add: %s", fn.Description())
	}
	return nil
}

// removeEdgeBetween deletes whatever edge currently connects a to b, also
// removing it from the functions bookkeeping slice if it was a function
// edge.
func (g *Graph) removeEdgeBetween(a, b *fileSetNode) {
	e, ok := g.g.GetEdge(a, b)
	if !ok {
		return
	}
	g.g.DeleteEdge(a, b)
	if fe, ok := e.(*functionEdge); ok {
		g.removeFunction(fe)
	}
}

// removeFunction drops fe from the functions bookkeeping slice.
func (g *Graph) removeFunction(fe *functionEdge) {
	for i, f := range g.functions {
		if f == fe {
			g.functions = append(g.functions[:i], g.functions[i+1:]...)
			return
		}
	}
}

// FillIn adds mapping edges that expose the indirect dependencies implied
// by multi-file sets. For every function edge, if its outputs set has
// cardinality > 1 then a mapping edge is added from the output-set node to
// each member file's element node; symmetrically for inputs.
func (g *Graph) FillIn() {
	for _, fe := range g.FunctionEdges() {
		outFS := fe.fn.Outputs()
		if outFS.Len() > 1 {
			outNode := g.node(outFS)
			for _, p := range outFS.Paths() {
				elem := g.node(engine.NewFileSet(p))
				if !g.g.HasEdge(outNode, elem) {
					g.g.AddEdge(outNode, elem, mappingEdge{})
				}
			}
		}

		inFS := fe.fn.Inputs()
		if inFS.Len() > 1 {
			inNode := g.node(inFS)
			for _, p := range inFS.Paths() {
				elem := g.node(engine.NewFileSet(p))
				if !g.g.HasEdge(elem, inNode) {
					g.g.AddEdge(elem, inNode, mappingEdge{})
				}
			}
		}
	}
}

// Prune repeatedly removes filler mapping edges (a MappingEdge whose
// target has no outgoing edges, or whose source has no incoming edges)
// until a fixpoint is reached, then removes any vertex left with degree 0.
func (g *Graph) Prune() {
	for {
		removed := false
		for _, v := range g.g.Vertices() {
			for _, w := range g.g.OutgoingGraphVertices(v) {
				e, ok := g.g.GetEdge(v, w)
				if !ok {
					continue
				}
				if _, isMapping := e.(mappingEdge); !isMapping {
					continue
				}
				noConsumer := len(g.g.OutgoingGraphVertices(w)) == 0
				noProducer := len(g.g.IncomingGraphVertices(v)) == 0
				if noConsumer || noProducer {
					g.g.DeleteEdge(v, w)
					removed = true
				}
			}
		}
		if !removed {
			break
		}
	}

	for _, v := range g.g.Vertices() {
		if len(g.g.OutgoingGraphVertices(v)) == 0 && len(g.g.IncomingGraphVertices(v)) == 0 {
			g.g.DeleteVertex(v)
			if n, ok := v.(*fileSetNode); ok {
				delete(g.nodes, n.fs.String())
			}
		}
	}
}
