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

package runner

import (
	"context"
	"sync"

	"github.com/scibatch/qrun/engine"
)

// InProcessRunner runs an InProcessFunction to completion inside Start, in
// the scheduler's own process: no job file, no exit code, just an error
// return.
type InProcessRunner struct {
	Fn   engine.InProcessFunction
	Logf func(format string, v ...interface{})

	mu     sync.Mutex
	status engine.Status
}

// Start implements engine.JobRunner. It blocks until Fn.Run returns, so
// Status is already Done or Failed when Start returns.
func (r *InProcessRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	r.status = engine.Running
	r.mu.Unlock()

	err := r.Fn.Run(ctx)
	s := engine.Done
	if err != nil {
		if r.Logf != nil {
			r.Logf("%s: %v", r.Fn.Description(), err)
		}
		s = engine.Failed
	}
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
	return nil
}

// Status implements engine.JobRunner.
func (r *InProcessRunner) Status() engine.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// TryStop implements engine.JobRunner. There is no way to interrupt an
// InProcessFunction other than the ctx passed to Start; this is a no-op.
func (r *InProcessRunner) TryStop() error { return nil }

// RemoveTemporaryFiles implements engine.JobRunner.
func (r *InProcessRunner) RemoveTemporaryFiles() error { return nil }
