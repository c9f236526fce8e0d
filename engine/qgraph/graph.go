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

// Package qgraph is the pipeline execution engine's core: it builds a
// bipartite DAG of file-set nodes and function edges, validates it,
// optionally rewrites scatter-gatherable edges into their replacement
// subgraphs, classifies edges for restart, and drives the scheduling loop
// to completion.
package qgraph

import (
	"sync"
	"time"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/engine/notify"
	"github.com/scibatch/qrun/pgraph"
)

// fileSetNode is a vertex identifying a set of files. Nodes are interned by
// the Graph so that two function edges which declare the same file set
// share the identical *fileSetNode pointer, per the "nodes are identified
// by value" invariant.
type fileSetNode struct {
	fs engine.FileSet
}

// String implements pgraph.Vertex.
func (n *fileSetNode) String() string { return n.fs.String() }

// edge is the common interface satisfied by both of our edge kinds.
type edge interface {
	pgraph.Edge
}

// functionEdge owns a Function and its runtime Status.
type functionEdge struct {
	fn     engine.Function
	status engine.Status
	runner engine.JobRunner

	mu sync.Mutex // guards status/runner, written from the loop goroutine only but read from Summarize/metrics
}

// String implements pgraph.Edge.
func (e *functionEdge) String() string { return e.fn.Description() }

// Status returns the edge's current status.
func (e *functionEdge) Status() engine.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// setStatus sets the edge's current status.
func (e *functionEdge) setStatus(s engine.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = s
}

// mappingEdge is a synthetic edge connecting a multi-file set node to one
// of its single-file element nodes. It carries no work and no state.
type mappingEdge struct{}

// String implements pgraph.Edge.
func (mappingEdge) String() string { return "" }

// Graph is the mutable object the whole engine is built around.
type Graph struct {
	// Logf is the logging function used throughout the graph's lifetime.
	Logf func(format string, v ...interface{})

	// PollInterval is how long Run sleeps between polls when idle. Zero
	// means DefaultPollInterval.
	PollInterval time.Duration

	// Notifier, if set, receives a failure alert as soon as any edge
	// fails during Run, in addition to whatever end-of-run summary the
	// caller sends itself. Nil means no mid-run alerting.
	Notifier notify.Notifier

	g     *pgraph.Graph
	nodes map[string]*fileSetNode // interning table, keyed by FileSet.String()

	// functions tracks every live function edge, independent of the
	// underlying adjacency map, so we can iterate them directly.
	functions []*functionEdge

	rewritten bool // Rewrite() may run at most once per Run()

	metrics *Metrics
}

// New builds an empty Graph.
func New(logf func(format string, v ...interface{})) *Graph {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Graph{
		Logf:  logf,
		g:     pgraph.NewGraph("qgraph"),
		nodes: make(map[string]*fileSetNode),
	}
}

// WithMetrics attaches a Metrics recorder to the graph.
func (g *Graph) WithMetrics(m *Metrics) *Graph {
	g.metrics = m
	return g
}

// node interns and returns the vertex for the given file set.
func (g *Graph) node(fs engine.FileSet) *fileSetNode {
	key := fs.String()
	if n, ok := g.nodes[key]; ok {
		return n
	}
	n := &fileSetNode{fs: fs}
	g.nodes[key] = n
	g.g.AddVertex(n)
	return n
}

// FunctionEdges returns every function edge currently in the graph, in no
// particular order.
func (g *Graph) FunctionEdges() []*functionEdge {
	out := make([]*functionEdge, len(g.functions))
	copy(out, g.functions)
	return out
}

// Pgraph exposes the underlying generic graph, primarily for the dotgraph
// visualizer.
func (g *Graph) Pgraph() *pgraph.Graph { return g.g }

// NumFunctionEdges returns the number of function edges in the graph.
func (g *Graph) NumFunctionEdges() int { return len(g.functions) }
