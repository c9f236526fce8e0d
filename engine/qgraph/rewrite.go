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

// Rewrite expands every scatterable function edge currently in the graph
// into its replacement subgraph (typically one clone per shard plus a
// gathering step), then re-runs FillIn/Prune/Validate to restore the
// graph's invariants. It is a no-op on the second and later calls: a
// scatter/gather expansion happens at most once per Run.
func (g *Graph) Rewrite() error {
	if g.rewritten {
		return nil
	}
	g.rewritten = true

	var toExpand []*functionEdge
	for _, fe := range g.FunctionEdges() {
		sg, ok := fe.fn.(engine.ScatterGatherable)
		if ok && sg.Scatterable() {
			toExpand = append(toExpand, fe)
		}
	}
	if len(toExpand) == 0 {
		return nil
	}

	var errs error
	for _, fe := range toExpand {
		sg := fe.fn.(engine.ScatterGatherable)
		generated, err := sg.GenerateFunctions()
		if err != nil {
			errs = errwrap.Append(errs, errwrap.Wrapf(err, "scatter/gather expansion of %q", fe.fn.Description()))
			continue
		}

		a, b := fe.fn.Inputs(), fe.fn.Outputs()
		g.removeEdgeBetween(g.node(a), g.node(b))

		for _, child := range generated {
			if err := g.Add(child); err != nil {
				errs = errwrap.Append(errs, err)
			}
		}
		if g.Logf != nil {
			g.Logf("rewrite: expanded %q into %d functions", fe.fn.Description(), len(generated))
		}
	}
	if errs != nil {
		return errs
	}

	g.Prune()
	g.FillIn()
	g.Prune()

	if _, err := g.Validate(); err != nil {
		return err
	}
	return nil
}
