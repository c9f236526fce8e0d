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
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/scibatch/qrun/engine"
)

func factoryWithOutcomes(outcomes map[string]engine.Status) RunnerFactory {
	return func(fn engine.Function) (engine.JobRunner, error) {
		s, ok := outcomes[fn.Description()]
		if !ok {
			s = engine.Done
		}
		return &fakeRunner{result: s}, nil
	}
}

func TestRunDiamondAllSucceed(t *testing.T) {
	g := New(nil)
	g.PollInterval = time.Millisecond
	a := &testFn{desc: "a", inputs: engine.NewFileSet("x"), outputs: engine.NewFileSet("a.out"), order: engine.AddOrder{0}}
	b := &testFn{desc: "b", inputs: engine.NewFileSet("a.out"), outputs: engine.NewFileSet("b.out"), order: engine.AddOrder{1}}
	c := &testFn{desc: "c", inputs: engine.NewFileSet("a.out"), outputs: engine.NewFileSet("c.out"), order: engine.AddOrder{2}}
	d := &testFn{desc: "d", inputs: engine.NewFileSet("b.out", "c.out"), outputs: engine.NewFileSet("d.out"), order: engine.AddOrder{3}}
	for _, fn := range []engine.Function{a, b, c, d} {
		mustAdd(t, g, fn)
	}
	g.FillIn()
	g.Prune()
	if _, err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	g.ClassifyForRestart(afero.NewMemMapFs(), true)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Run(ctx, factoryWithOutcomes(nil)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, fe := range g.functions {
		if fe.Status() != engine.Done {
			t.Errorf("%s: expected DONE, got %v", fe.fn.Description(), fe.Status())
		}
	}
}

func TestRunFailureContainment(t *testing.T) {
	g := New(nil)
	g.PollInterval = time.Millisecond
	a := &testFn{desc: "a", inputs: engine.NewFileSet("x"), outputs: engine.NewFileSet("y"), order: engine.AddOrder{0}}
	b := &testFn{desc: "b", inputs: engine.NewFileSet("y"), outputs: engine.NewFileSet("z"), order: engine.AddOrder{1}}
	c := &testFn{desc: "c", inputs: engine.NewFileSet("z"), outputs: engine.NewFileSet("w"), order: engine.AddOrder{2}}
	for _, fn := range []engine.Function{a, b, c} {
		mustAdd(t, g, fn)
	}
	g.ClassifyForRestart(afero.NewMemMapFs(), true)

	outcomes := map[string]engine.Status{"b": engine.Failed}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Run(ctx, factoryWithOutcomes(outcomes)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if g.functions[0].Status() != engine.Done {
		t.Errorf("expected a DONE, got %v", g.functions[0].Status())
	}
	if g.functions[1].Status() != engine.Failed {
		t.Errorf("expected b FAILED, got %v", g.functions[1].Status())
	}
	if g.functions[2].Status() != engine.Pending {
		t.Errorf("expected c to stay PENDING, got %v", g.functions[2].Status())
	}
}

type fakeNotifier struct {
	subjects []string
	bodies   []string
}

func (n *fakeNotifier) Notify(subject, body string) error {
	n.subjects = append(n.subjects, subject)
	n.bodies = append(n.bodies, body)
	return nil
}

func TestRunNotifiesAsSoonAsAnEdgeFails(t *testing.T) {
	g := New(nil)
	g.PollInterval = time.Millisecond
	n := &fakeNotifier{}
	g.Notifier = n

	a := &testFn{desc: "a", inputs: engine.NewFileSet("x"), outputs: engine.NewFileSet("y"), order: engine.AddOrder{0}}
	b := &testFn{desc: "b", inputs: engine.NewFileSet("y"), outputs: engine.NewFileSet("z"), order: engine.AddOrder{1}}
	for _, fn := range []engine.Function{a, b} {
		mustAdd(t, g, fn)
	}
	g.ClassifyForRestart(afero.NewMemMapFs(), true)

	outcomes := map[string]engine.Status{"b": engine.Failed}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Run(ctx, factoryWithOutcomes(outcomes)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(n.subjects) != 1 {
		t.Fatalf("expected exactly one failure notification, got %d", len(n.subjects))
	}
	if !strings.Contains(n.bodies[0], "b") {
		t.Errorf("expected failure body to mention the failed edge, got %q", n.bodies[0])
	}
}
