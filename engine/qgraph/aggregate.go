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
	"sort"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/util/pad"
)

// GroupStatus is the per-analysis rollup produced by Summarize.
type GroupStatus struct {
	AnalysisName string
	Overall      engine.Status

	Total   int
	Pending int
	Running int
	Done    int
	Failed  int
	Skipped int

	// ScatterTotal/Done/Failed are the total/done/failed sub-counts
	// among edges tagged CloneFunction.
	ScatterTotal  int
	ScatterDone   int
	ScatterFailed int

	// GatherTotal/Done/Failed are the total/done/failed sub-counts
	// among edges tagged GatherFunction.
	GatherTotal  int
	GatherDone   int
	GatherFailed int
}

// Summarize groups every function edge by AnalysisName and derives an
// overall Status for each group: any Failed edge makes the group Failed;
// else if every edge is Done the group is Done; else if every edge is Done
// or Skipped the group is Skipped; else if any edge is Done or Running the
// group is Running; otherwise it's Pending. Groups are returned sorted by
// name.
func (g *Graph) Summarize() []GroupStatus {
	byName := make(map[string]*GroupStatus)
	var order []string

	for _, fe := range g.functions {
		name := fe.fn.AnalysisName()
		gs, ok := byName[name]
		if !ok {
			gs = &GroupStatus{AnalysisName: name}
			byName[name] = gs
			order = append(order, name)
		}
		gs.Total++
		switch fe.Status() {
		case engine.Pending:
			gs.Pending++
		case engine.Running:
			gs.Running++
		case engine.Done:
			gs.Done++
		case engine.Failed:
			gs.Failed++
		case engine.Skipped:
			gs.Skipped++
		}
		if _, ok := fe.fn.(engine.CloneFunction); ok {
			gs.ScatterTotal++
			switch fe.Status() {
			case engine.Done:
				gs.ScatterDone++
			case engine.Failed:
				gs.ScatterFailed++
			}
		}
		if _, ok := fe.fn.(engine.GatherFunction); ok {
			gs.GatherTotal++
			switch fe.Status() {
			case engine.Done:
				gs.GatherDone++
			case engine.Failed:
				gs.GatherFailed++
			}
		}
	}

	sort.Strings(order)
	out := make([]GroupStatus, 0, len(order))
	for _, name := range order {
		gs := byName[name]
		gs.Overall = overallStatus(*gs)
		out = append(out, *gs)
	}
	return out
}

func overallStatus(gs GroupStatus) engine.Status {
	switch {
	case gs.Failed > 0:
		return engine.Failed
	case gs.Done == gs.Total:
		return engine.Done
	case gs.Done+gs.Skipped == gs.Total:
		return engine.Skipped
	case gs.Done > 0 || gs.Running > 0:
		return engine.Running
	default:
		return engine.Pending
	}
}

// RenderAll formats every group in gss as one line each, with the name
// column padded to the widest AnalysisName across the whole set so the
// lines form an aligned report.
func RenderAll(gss []GroupStatus) []string {
	width := 0
	for _, gs := range gss {
		if len(gs.AnalysisName) > width {
			width = len(gs.AnalysisName)
		}
	}
	out := make([]string, len(gss))
	for i, gs := range gss {
		out[i] = Render(gs, width)
	}
	return out
}

// Render formats gs as a single summary line: its name padded to width, a
// centered 7-char overall status, and an "s:<t>t/<d>d/<f>f" / "g:<t>t/<d>d/<f>f"
// suffix for the scatter/gather sub-counts whenever that fan-out exceeds 1.
func Render(gs GroupStatus, width int) string {
	line := fmt.Sprintf("%s [%s]", pad.Right(gs.AnalysisName, width), pad.Center(gs.Overall.String(), 7))
	if gs.ScatterTotal > 1 {
		line += fmt.Sprintf(" s:%dt/%dd/%df", gs.ScatterTotal, gs.ScatterDone, gs.ScatterFailed)
	}
	if gs.GatherTotal > 1 {
		line += fmt.Sprintf(" g:%dt/%dd/%df", gs.GatherTotal, gs.GatherDone, gs.GatherFailed)
	}
	return line
}
