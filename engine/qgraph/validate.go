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
	"fmt"

	"github.com/scibatch/qrun/pgraph"
	"github.com/scibatch/qrun/util/errwrap"
)

// Validate checks every function edge for missing fields and confirms the
// graph is acyclic. It returns the total number of missing fields found
// across all edges (zero means the graph is ready to run) and an aggregated
// error (via util/errwrap) naming every problem found, not just the first.
func (g *Graph) Validate() (int, error) {
	var errs error
	missingCount := 0

	for _, fe := range g.FunctionEdges() {
		if missing := fe.fn.MissingFields(); len(missing) > 0 {
			missingCount += len(missing)
			errs = errwrap.Append(errs, fmt.Errorf("%s: missing required fields: %v", fe.fn.Description(), missing))
		}
	}

	if _, err := g.g.TopologicalSort(); err != nil {
		if cycleErr, ok := err.(*pgraph.ErrCycle); ok {
			for _, cycle := range cycleErr.Cycles {
				errs = errwrap.Append(errs, fmt.Errorf("dependency cycle: %s", describeCycle(cycle)))
			}
			errs = errwrap.Append(errs, fmt.Errorf("Cycles were detected in the graph."))
		} else {
			errs = errwrap.Append(errs, err)
		}
	}

	return missingCount, errs
}

func describeCycle(cycle []pgraph.Vertex) string {
	s := ""
	for i, v := range cycle {
		if i > 0 {
			s += " -> "
		}
		s += v.String()
	}
	return s
}
