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

	"github.com/spf13/afero"

	"github.com/scibatch/qrun/engine"
)

// testFn is a minimal engine.Function used across this package's tests.
type testFn struct {
	desc         string
	analysis     string
	inputs       engine.FileSet
	outputs      engine.FileSet
	order        engine.AddOrder
	intermediate bool
	missing      []string
	doneOnDisk   bool
}

func (f *testFn) Inputs() engine.FileSet        { return f.inputs }
func (f *testFn) Outputs() engine.FileSet       { return f.outputs }
func (f *testFn) Description() string           { return f.desc }
func (f *testFn) AnalysisName() string          { return f.analysis }
func (f *testFn) AddOrder() engine.AddOrder     { return f.order }
func (f *testFn) IsIntermediate() bool          { return f.intermediate }
func (f *testFn) MissingFields() []string       { return f.missing }
func (f *testFn) Freeze() error                 { return nil }
func (f *testFn) JobOutputFile() string         { return "" }
func (f *testFn) JobErrorFile() string          { return "" }
func (f *testFn) IsDone(fsys afero.Fs) bool     { return f.doneOnDisk }

// fakeRunner resolves to a fixed terminal status the instant its Status is
// polled, so scheduling tests converge without real waiting.
type fakeRunner struct {
	result engine.Status
}

func (r *fakeRunner) Start(ctx context.Context) error    { return nil }
func (r *fakeRunner) Status() engine.Status              { return r.result }
func (r *fakeRunner) TryStop() error                     { return nil }
func (r *fakeRunner) RemoveTemporaryFiles() error         { return nil }

// cloneTestFn wraps a testFn to additionally satisfy engine.CloneFunction.
type cloneTestFn struct{ *testFn }

func (f *cloneTestFn) isClone() {}

// gatherTestFn wraps a testFn to additionally satisfy engine.GatherFunction.
type gatherTestFn struct{ *testFn }

func (f *gatherTestFn) isGather() {}

// scatterFn wraps a testFn to additionally satisfy engine.ScatterGatherable.
type scatterFn struct {
	*testFn
	clones int
}

func (f *scatterFn) Scatterable() bool { return true }

func (f *scatterFn) GenerateFunctions() ([]engine.Function, error) {
	var out []engine.Function
	gatherInputs := make([]string, 0, f.clones)
	for i := 0; i < f.clones; i++ {
		shardOut := engine.NewFileSet(f.outputs.String() + ".shard")
		out = append(out, &testFn{
			desc:     f.desc + ".clone",
			analysis: f.analysis,
			inputs:   f.inputs,
			outputs:  engine.NewFileSet(shardOut.Paths()[0] + string(rune('0'+i))),
			order:    append(append(engine.AddOrder{}, f.order...), i),
		})
		gatherInputs = append(gatherInputs, shardOut.Paths()[0]+string(rune('0'+i)))
	}
	out = append(out, &testFn{
		desc:     f.desc + ".gather",
		analysis: f.analysis,
		inputs:   engine.NewFileSet(gatherInputs...),
		outputs:  f.outputs,
		order:    append(append(engine.AddOrder{}, f.order...), f.clones),
	})
	return out, nil
}
