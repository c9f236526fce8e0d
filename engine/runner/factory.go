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
	"fmt"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/util/semaphore"
)

// Backend names a JobRunner implementation selectable from the command
// line.
type Backend string

// The supported Backend values.
const (
	Local Backend = "local"
	Batch Backend = "batch"
	DRMAA Backend = "drmaa"
)

// Options configures New.
type Options struct {
	Backend Backend
	Queue   string
	Logf    func(format string, v ...interface{})
	Slots   *semaphore.Semaphore // local concurrency cap, Local backend only
}

// New builds the JobRunner appropriate for fn and opts.Backend.
// InProcessFunction values always run in-process regardless of Backend,
// since there is no batch-backend equivalent for work that must execute
// inside this program.
func New(fn engine.Function, opts Options) (engine.JobRunner, error) {
	if ip, ok := fn.(engine.InProcessFunction); ok {
		return &InProcessRunner{Fn: ip, Logf: opts.Logf}, nil
	}

	cl, ok := fn.(engine.CommandLineFunction)
	if !ok {
		return nil, fmt.Errorf("runner: %s implements neither CommandLineFunction nor InProcessFunction", fn.Description())
	}

	switch opts.Backend {
	case "", Local:
		return &ShellJobRunner{Fn: cl, Logf: opts.Logf, Slots: opts.Slots}, nil
	case Batch:
		return &BatchJobRunner{Fn: cl, Logf: opts.Logf, Queue: opts.Queue}, nil
	case DRMAA:
		return NewDRMAARunner(cl)
	default:
		return nil, fmt.Errorf("runner: unknown backend %q", opts.Backend)
	}
}
