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

import "github.com/sanity-io/litter"

// debugEdge is the shape dumped by Dump, plucked out of functionEdge so
// the mutex doesn't end up in the dump.
type debugEdge struct {
	Description string
	Analysis    string
	Status      string
	AddOrder    []int
}

// Dump renders every function edge's current state with litter, for
// pasting into a bug report when a schedule doesn't look right.
func (g *Graph) Dump() string {
	edges := make([]debugEdge, 0, len(g.functions))
	for _, fe := range g.functions {
		edges = append(edges, debugEdge{
			Description: fe.fn.Description(),
			Analysis:    fe.fn.AnalysisName(),
			Status:      fe.Status().String(),
			AddOrder:    fe.fn.AddOrder(),
		})
	}
	return litter.Sdump(edges)
}
