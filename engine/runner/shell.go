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

// Package runner contains the JobRunner backends: a local shell runner for
// development and small pipelines, and an LSF/DRMAA-shaped batch runner
// for production clusters.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/util/logwriter"
	"github.com/scibatch/qrun/util/semaphore"
)

// ShellJobRunner runs a CommandLineFunction as a local child process,
// bounded by a shared Slots semaphore so a pipeline never overruns the
// machine it's scheduled on.
type ShellJobRunner struct {
	Fn    engine.CommandLineFunction
	Logf  func(format string, v ...interface{})
	Slots *semaphore.Semaphore // nil means unbounded

	mu     sync.Mutex
	cmd    *exec.Cmd
	status engine.Status
	done   chan struct{}
}

// Start implements engine.JobRunner.
func (r *ShellJobRunner) Start(ctx context.Context) error {
	argv := r.Fn.Command()
	if len(argv) == 0 {
		return fmt.Errorf("%s: empty command", r.Fn.Description())
	}

	r.mu.Lock()
	r.status = engine.Running
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.run(ctx, argv)
	return nil
}

func (r *ShellJobRunner) run(ctx context.Context, argv []string) {
	defer close(r.done)

	if r.Slots != nil {
		if err := r.Slots.P(1); err != nil {
			r.finish(engine.Failed)
			return
		}
		defer r.Slots.V(1)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out := &logwriter.LogWriter{Prefix: r.Fn.Description() + ": ", Logf: r.Logf}
	cmd.Stdout = out
	cmd.Stderr = out

	if path := r.Fn.JobOutputFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			defer f.Close()
			cmd.Stdout = f
		}
	}
	if path := r.Fn.JobErrorFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			defer f.Close()
			cmd.Stderr = f
		}
	}

	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()

	err := cmd.Run()
	out.Flush()

	if err != nil {
		if r.Logf != nil {
			r.Logf("%s: %v", r.Fn.Description(), err)
		}
		r.finish(engine.Failed)
		return
	}
	r.finish(engine.Done)
}

func (r *ShellJobRunner) finish(s engine.Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

// Status implements engine.JobRunner.
func (r *ShellJobRunner) Status() engine.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// TryStop implements engine.JobRunner.
func (r *ShellJobRunner) TryStop() error {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// RemoveTemporaryFiles implements engine.JobRunner. The shell runner
// writes directly to the job's declared output/error files, so there is
// nothing of its own to clean up.
func (r *ShellJobRunner) RemoveTemporaryFiles() error { return nil }
