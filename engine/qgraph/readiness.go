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
	"github.com/spf13/afero"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/pgraph"
)

// ClassifyForRestart sets the initial Status of every function edge, in
// preparation for Run. It must be called exactly once, before the
// scheduling loop starts.
//
// If startClean is true every edge is forced to Pending, discarding
// whatever a previous run left on disk. Otherwise each edge is classified
// by checkDone: intermediates whose outputs are not already Done become
// Skipped rather than Pending, since nothing downstream may need them
// recomputed; non-intermediates are Done only if they and every
// predecessor are already Done or Skipped, and Pending otherwise. Forcing
// a previously-Skipped edge back to Pending can cascade: its own
// producers must be re-examined too, via resetPreviousSkipped.
func (g *Graph) ClassifyForRestart(fsys afero.Fs, startClean bool) {
	if startClean {
		for _, fe := range g.functions {
			fe.setStatus(engine.Pending)
		}
		return
	}

	for _, fe := range g.topoFunctionOrder() {
		g.checkDone(fsys, fe)
	}
}

// topoFunctionOrder returns every function edge ordered so that a function
// always appears after every direct predecessor (by DFS over the producers
// relation). checkDone relies on this: deciding whether a predecessor is
// DONE or SKIPPED only means something once that predecessor has itself
// already been classified.
func (g *Graph) topoFunctionOrder() []*functionEdge {
	order := make([]*functionEdge, 0, len(g.functions))
	visited := make(map[*functionEdge]bool, len(g.functions))

	var visit func(fe *functionEdge)
	visit = func(fe *functionEdge) {
		if visited[fe] {
			return
		}
		visited[fe] = true
		inNode := g.node(fe.fn.Inputs())
		for _, pred := range g.producers(inNode) {
			visit(pred)
		}
		order = append(order, fe)
	}
	for _, fe := range g.functions {
		visit(fe)
	}
	return order
}

// checkDone decides fe's starting Status against the filesystem.
func (g *Graph) checkDone(fsys afero.Fs, fe *functionEdge) {
	if fe.fn.IsIntermediate() {
		if fe.fn.IsDone(fsys) {
			fe.setStatus(engine.Done)
		} else {
			fe.setStatus(engine.Skipped)
		}
		return
	}

	// Terminal/required edge: DONE requires both its own status and
	// every direct predecessor to be DONE or SKIPPED. A predecessor
	// that isn't satisfied means this edge's inputs may be stale even
	// though its own outputs already exist on disk.
	if fe.fn.IsDone(fsys) && g.predecessorsSettled(fe) {
		fe.setStatus(engine.Done)
		return
	}

	fe.setStatus(engine.Pending)
	g.resetPreviousSkipped(fe)
}

// predecessorsSettled reports whether every direct predecessor of fe is
// already DONE or SKIPPED.
func (g *Graph) predecessorsSettled(fe *functionEdge) bool {
	inNode := g.node(fe.fn.Inputs())
	for _, pred := range g.producers(inNode) {
		switch pred.Status() {
		case engine.Done, engine.Skipped:
			continue
		default:
			return false
		}
	}
	return true
}

// resetPreviousSkipped resurrects every function edge that produces one of
// fe's input files and was classified Skipped back to Pending, since fe
// now needs them to actually run. Resurrection recurses: a resurrected
// producer may itself have producers that were only Skipped because it
// looked satisfied.
func (g *Graph) resetPreviousSkipped(fe *functionEdge) {
	inNode := g.node(fe.fn.Inputs())
	for _, pred := range g.producers(inNode) {
		if pred.Status() == engine.Skipped {
			pred.setStatus(engine.Pending)
			g.resetPreviousSkipped(pred)
		}
	}
}

// producers returns every function edge that feeds node v, either
// directly or by way of intervening mapping edges.
func (g *Graph) producers(v pgraph.Vertex) []*functionEdge {
	var out []*functionEdge
	seen := make(map[pgraph.Vertex]bool)
	var walk func(v pgraph.Vertex)
	walk = func(v pgraph.Vertex) {
		if seen[v] {
			return
		}
		seen[v] = true
		for _, u := range g.g.IncomingGraphVertices(v) {
			e, ok := g.g.GetEdge(u, v)
			if !ok {
				continue
			}
			switch typed := e.(type) {
			case *functionEdge:
				out = append(out, typed)
			case mappingEdge:
				walk(u)
			}
		}
	}
	walk(v)
	return out
}
