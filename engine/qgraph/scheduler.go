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
	"fmt"
	"sort"
	"time"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/util/errwrap"
)

// DefaultPollInterval is how long Run sleeps between polls of the backend
// when no edge changed state on the previous tick.
const DefaultPollInterval = 30 * time.Second

// RunnerFactory starts the backend job for a frozen Function.
type RunnerFactory func(fn engine.Function) (engine.JobRunner, error)

// isReady reports whether fe may be dispatched: it must still be Pending,
// and every function edge that produces one of its input files must
// already be Done or Skipped. An edge whose producer is Failed can never
// become ready; this is how a failure's descendants are contained.
func (g *Graph) isReady(fe *functionEdge) bool {
	if fe.Status() != engine.Pending {
		return false
	}
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

// Run drives the scheduling loop to completion: on each tick it reaps
// finished runners, dispatches every newly-ready edge (in deterministic
// AddOrder), and sleeps PollInterval if nothing changed. It returns when
// every edge has reached a terminal status (Done, Failed, or Skipped) or
// when the remaining Pending edges can never become ready because an
// ancestor Failed, or when ctx is canceled.
func (g *Graph) Run(ctx context.Context, factory RunnerFactory) error {
	pollInterval := g.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		changed, justFailed := g.reapFinished()
		if len(justFailed) > 0 {
			g.notifyFailures(justFailed)
		}

		dispatched, err := g.dispatchReady(ctx, factory)
		if err != nil {
			return err
		}
		changed = changed || dispatched > 0

		g.metrics.recordTick()
		g.metrics.recordCounts(g.functions)

		if g.allSettled() {
			return nil
		}

		if !changed && g.noRunningEdges() {
			// Nothing is in flight and nothing became ready: every
			// remaining Pending edge is blocked behind a Failed
			// ancestor. Stop rather than spin forever.
			return nil
		}

		if !changed {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollInterval):
			}
		}
	}
}

// reapFinished polls every Running edge's runner and absorbs any terminal
// status it reports. It returns whether any edge changed state, and the
// subset that just transitioned to Failed this tick.
func (g *Graph) reapFinished() (bool, []*functionEdge) {
	changed := false
	var justFailed []*functionEdge
	for _, fe := range g.functions {
		if fe.Status() != engine.Running {
			continue
		}
		switch s := fe.runner.Status(); s {
		case engine.Done, engine.Failed:
			fe.setStatus(s)
			DefaultRegistry.remove(fe)
			if g.Logf != nil {
				g.Logf("%s: %s", fe.fn.Description(), s)
			}
			changed = true
			if s == engine.Failed {
				justFailed = append(justFailed, fe)
			}
		}
	}
	return changed, justFailed
}

// notifyFailures sends a best-effort failure alert naming each edge in
// justFailed along with its job-output and job-error file paths. Any error
// sending the notification is logged, never propagated: a broken mail relay
// must not stop the scheduling loop.
func (g *Graph) notifyFailures(justFailed []*functionEdge) {
	if g.Notifier == nil {
		return
	}
	body := ""
	for _, fe := range justFailed {
		body += fmt.Sprintf("FAILED: %s\n  job output: %s\n  job error:  %s\n",
			fe.fn.Description(), fe.fn.JobOutputFile(), fe.fn.JobErrorFile())
	}
	if err := g.Notifier.Notify("qrun: job failure", body); err != nil && g.Logf != nil {
		g.Logf("notify: %v", err)
	}
}

// dispatchReady starts every currently-ready edge, in AddOrder, and
// returns how many it started.
func (g *Graph) dispatchReady(ctx context.Context, factory RunnerFactory) (int, error) {
	var ready []*functionEdge
	for _, fe := range g.functions {
		if g.isReady(fe) {
			ready = append(ready, fe)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		return ready[i].fn.AddOrder().Less(ready[j].fn.AddOrder())
	})

	var errs error
	for _, fe := range ready {
		runner, err := factory(fe.fn)
		if err != nil {
			errs = errwrap.Append(errs, errwrap.Wrapf(err, "starting %q", fe.fn.Description()))
			continue
		}
		if err := runner.Start(ctx); err != nil {
			errs = errwrap.Append(errs, errwrap.Wrapf(err, "starting %q", fe.fn.Description()))
			continue
		}
		fe.mu.Lock()
		fe.runner = runner
		fe.status = engine.Running
		fe.mu.Unlock()
		DefaultRegistry.add(fe)
		if g.Logf != nil {
			g.Logf("%s: RUNNING", fe.fn.Description())
		}
	}
	return len(ready), errs
}

// allSettled reports whether every function edge has reached a terminal
// status.
func (g *Graph) allSettled() bool {
	for _, fe := range g.functions {
		switch fe.Status() {
		case engine.Done, engine.Failed, engine.Skipped:
		default:
			return false
		}
	}
	return true
}

// noRunningEdges reports whether no edge is currently Running.
func (g *Graph) noRunningEdges() bool {
	for _, fe := range g.functions {
		if fe.Status() == engine.Running {
			return false
		}
	}
	return true
}
