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
	"strings"
	"testing"

	"github.com/scibatch/qrun/engine"
)

func TestSummarizeGroupsByAnalysisAndDerivesOverall(t *testing.T) {
	g := New(nil)
	a := &testFn{desc: "a", analysis: "grp1", inputs: engine.NewFileSet("x"), outputs: engine.NewFileSet("y")}
	b := &testFn{desc: "b", analysis: "grp1", inputs: engine.NewFileSet("y"), outputs: engine.NewFileSet("z")}
	c := &testFn{desc: "c", analysis: "grp2", inputs: engine.NewFileSet("p"), outputs: engine.NewFileSet("q")}
	mustAdd(t, g, a)
	mustAdd(t, g, b)
	mustAdd(t, g, c)

	g.functions[0].setStatus(engine.Done)
	g.functions[1].setStatus(engine.Failed)
	g.functions[2].setStatus(engine.Pending)

	groups := g.Summarize()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].AnalysisName != "grp1" || groups[0].Overall != engine.Failed {
		t.Errorf("expected grp1 FAILED, got %+v", groups[0])
	}
	if groups[1].AnalysisName != "grp2" || groups[1].Overall != engine.Pending {
		t.Errorf("expected grp2 PENDING, got %+v", groups[1])
	}
}

func TestRenderOmitsScatterGatherSuffixBelowFanoutTwo(t *testing.T) {
	gs := GroupStatus{AnalysisName: "grp1", Overall: engine.Done, Total: 1, Done: 1}
	line := Render(gs, len(gs.AnalysisName))
	if !strings.Contains(line, "grp1") || !strings.Contains(line, "DONE") {
		t.Errorf("unexpected render: %q", line)
	}
	if strings.Contains(line, "s:") || strings.Contains(line, "g:") {
		t.Errorf("expected no scatter/gather suffix for fanout <= 1, got %q", line)
	}
}

func TestRenderIncludesScatterGatherSubcountsOnFailure(t *testing.T) {
	g := New(nil)
	base := &testFn{desc: "shard", analysis: "grp1", inputs: engine.NewFileSet("x"), outputs: engine.NewFileSet("y")}
	for i := 0; i < 4; i++ {
		clone := &cloneTestFn{&testFn{desc: base.desc, analysis: "grp1", inputs: engine.NewFileSet("x"), outputs: engine.NewFileSet(fmt.Sprintf("y%d", i))}}
		mustAdd(t, g, clone)
	}
	gather := &gatherTestFn{&testFn{desc: "gather", analysis: "grp1", inputs: engine.NewFileSet("y"), outputs: engine.NewFileSet("z")}}
	mustAdd(t, g, gather)

	// 3 clones DONE, 1 FAILED.
	for i := 0; i < 3; i++ {
		g.functions[i].setStatus(engine.Done)
	}
	g.functions[3].setStatus(engine.Failed)

	groups := g.Summarize()
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	gs := groups[0]
	if gs.ScatterTotal != 4 || gs.ScatterDone != 3 || gs.ScatterFailed != 1 {
		t.Fatalf("unexpected scatter sub-counts: %+v", gs)
	}
	if gs.Overall != engine.Failed {
		t.Fatalf("expected group FAILED, got %v", gs.Overall)
	}

	line := Render(gs, len(gs.AnalysisName))
	if !strings.Contains(line, "s:4t/3d/1f") {
		t.Errorf("expected scatter sub-count suffix in render, got %q", line)
	}
}

func TestRenderAllAlignsToWidestName(t *testing.T) {
	gss := []GroupStatus{
		{AnalysisName: "short", Overall: engine.Done},
		{AnalysisName: "a-much-longer-name", Overall: engine.Pending},
	}
	lines := RenderAll(gss)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	shortBracket := strings.Index(lines[0], "[")
	longBracket := strings.Index(lines[1], "[")
	if shortBracket != longBracket {
		t.Errorf("expected both lines' status brackets aligned, got columns %d and %d", shortBracket, longBracket)
	}
}
