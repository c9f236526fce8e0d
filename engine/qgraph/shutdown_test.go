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
	"context"
	"testing"

	"github.com/scibatch/qrun/engine"
)

// trackingRunner records whether TryStop and RemoveTemporaryFiles were
// called, so shutdown tests can confirm both run.
type trackingRunner struct {
	stopped  bool
	cleaned  bool
	stopErr  error
	cleanErr error
}

func (r *trackingRunner) Start(ctx context.Context) error { return nil }
func (r *trackingRunner) Status() engine.Status            { return engine.Running }
func (r *trackingRunner) TryStop() error {
	r.stopped = true
	return r.stopErr
}
func (r *trackingRunner) RemoveTemporaryFiles() error {
	r.cleaned = true
	return r.cleanErr
}

func TestShutdownStopsAndCleansUpEveryRunner(t *testing.T) {
	reg := &Registry{}
	fns := make([]*trackingRunner, 3)
	for i := range fns {
		fns[i] = &trackingRunner{}
		fe := &functionEdge{fn: &testFn{desc: "f"}, runner: fns[i]}
		reg.add(fe)
	}

	reg.Shutdown(nil)

	for i, r := range fns {
		if !r.stopped {
			t.Errorf("runner %d: expected TryStop to be called", i)
		}
		if !r.cleaned {
			t.Errorf("runner %d: expected RemoveTemporaryFiles to be called", i)
		}
	}
}

func TestShutdownLogsButSwallowsCleanupErrors(t *testing.T) {
	reg := &Registry{}
	r := &trackingRunner{cleanErr: errTestCleanup}
	fe := &functionEdge{fn: &testFn{desc: "f"}, runner: r}
	reg.add(fe)

	var logged []string
	reg.Shutdown(func(format string, v ...interface{}) {
		logged = append(logged, format)
	})

	if !r.cleaned {
		t.Fatalf("expected RemoveTemporaryFiles to be attempted")
	}
	if len(logged) == 0 {
		t.Errorf("expected the cleanup error to be logged")
	}
}

var errTestCleanup = &cleanupError{}

type cleanupError struct{}

func (*cleanupError) Error() string { return "cleanup failed" }
