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

import "sync"

// shutdownBatchSize caps how many runners Shutdown cancels per call, so a
// signal handler racing against a large graph doesn't block indefinitely.
const shutdownBatchSize = 10

// Registry tracks every live JobRunner across the process so a signal
// handler can cancel them all, regardless of which Graph started them.
// There is exactly one Registry per process; use DefaultRegistry.
type Registry struct {
	mu      sync.Mutex
	runners []*functionEdge
}

// DefaultRegistry is the process-wide registry every Graph registers its
// running edges with.
var DefaultRegistry = &Registry{}

func (r *Registry) add(fe *functionEdge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners = append(r.runners, fe)
}

func (r *Registry) remove(fe *functionEdge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.runners {
		if f == fe {
			r.runners = append(r.runners[:i], r.runners[i+1:]...)
			return
		}
	}
}

// Shutdown makes a best-effort attempt to stop every currently-registered
// runner, Logf-ing (never propagating) any error TryStop reports. At most
// shutdownBatchSize runners are canceled per call; call it repeatedly
// (e.g. on repeated signals) to work through a larger graph.
func (r *Registry) Shutdown(logf func(format string, v ...interface{})) {
	r.mu.Lock()
	n := len(r.runners)
	if n > shutdownBatchSize {
		n = shutdownBatchSize
	}
	batch := make([]*functionEdge, n)
	copy(batch, r.runners[:n])
	r.mu.Unlock()

	for _, fe := range batch {
		if fe.runner == nil {
			continue
		}
		if err := fe.runner.TryStop(); err != nil && logf != nil {
			logf("shutdown: %s: %v", fe.fn.Description(), err)
		}
		if err := fe.runner.RemoveTemporaryFiles(); err != nil && logf != nil {
			logf("shutdown: %s: cleanup: %v", fe.fn.Description(), err)
		}
		r.remove(fe)
	}
}
