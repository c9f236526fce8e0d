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

// Package engine defines the contracts that the scheduling core consumes:
// Function (the frozen description of a unit of work), JobRunner (the
// backend handle to a running or completed job), and the Status each
// function edge moves through. Concrete QFunction/JobRunner
// implementations (a DSL front-end, LSF, DRMAA, local shell) live outside
// this package; it only names the shapes they must satisfy.
package engine

import (
	"context"

	"github.com/spf13/afero"
)

// Status is the runtime state of a function edge.
type Status int

// The valid Status values. Transitions are monotone per run: Pending ->
// (Running | Skipped) -> (Done | Failed).
const (
	Pending Status = iota
	Running
	Done
	Failed
	Skipped
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Running:
		return "RUNNING"
	case Done:
		return "DONE"
	case Failed:
		return "FAILED"
	case Skipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// AddOrder is a declaration-order tuple used to deterministically
// tie-break between sibling edges that become ready simultaneously.
// Lexicographic compare, with a shorter prefix winning on a tie.
type AddOrder []int

// Less reports whether a sorts before b.
func (a AddOrder) Less(b AddOrder) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// FileSet is a hashable, order-independent set of file paths. Node
// identity in the graph is by value of the file set, so FileSet keeps a
// sorted, deduplicated copy of its paths; its String method renders that
// copy and serves as the comparison and map key.
type FileSet struct {
	paths []string // always sorted + deduplicated
}

// NewFileSet builds a FileSet from an arbitrary slice of paths.
func NewFileSet(paths ...string) FileSet {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sortStrings(out)
	return FileSet{paths: out}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Paths returns the sorted, deduplicated list of paths in the set.
func (f FileSet) Paths() []string {
	out := make([]string, len(f.paths))
	copy(out, f.paths)
	return out
}

// Len returns the number of distinct files in the set.
func (f FileSet) Len() int { return len(f.paths) }

// String implements both fmt.Stringer and the identity key used by
// pgraph.Vertex: two FileSets with the same paths produce the same string.
func (f FileSet) String() string {
	s := "{"
	for i, p := range f.paths {
		if i > 0 {
			s += ","
		}
		s += p
	}
	return s + "}"
}

// Equal reports whether f and o contain exactly the same paths.
func (f FileSet) Equal(o FileSet) bool {
	return f.String() == o.String()
}

// Overlaps reports whether f and o share at least one path.
func (f FileSet) Overlaps(o FileSet) bool {
	m := make(map[string]struct{}, len(f.paths))
	for _, p := range f.paths {
		m[p] = struct{}{}
	}
	for _, p := range o.paths {
		if _, ok := m[p]; ok {
			return true
		}
	}
	return false
}

// Function is the contract that a unit of work (a "QFunction" in the
// distributed-pipeline literature this engine implements) must satisfy to
// be added to the graph.
type Function interface {
	// Inputs is the set of files this function reads.
	Inputs() FileSet
	// Outputs is the set of files this function produces.
	Outputs() FileSet

	// Description is a human-facing, one-line summary.
	Description() string
	// AnalysisName groups this function with its scatter/gather siblings
	// for status reporting.
	AnalysisName() string
	// AddOrder is this function's declaration-order tuple.
	AddOrder() AddOrder

	// IsIntermediate reports whether this function's outputs are
	// disposable: they may be SKIPPED if nothing downstream currently
	// needs them.
	IsIntermediate() bool

	// MissingFields reports the names of required arguments that are
	// still unbound. A non-empty result means this function cannot run.
	MissingFields() []string

	// Freeze irreversibly resolves any dynamic fields. Once frozen, the
	// function's position in the graph (its Inputs/Outputs) is stable.
	Freeze() error

	// JobOutputFile and JobErrorFile are the log file paths used for
	// post-mortem reporting on failure.
	JobOutputFile() string
	JobErrorFile() string

	// IsDone inspects the filesystem (existence and, where the function
	// knows how, a content fingerprint) to decide whether this
	// function's outputs are already up to date from a previous run.
	IsDone(fs afero.Fs) bool
}

// CommandLineFunction is a Function executed by an external process via a
// batch backend (local shell, LSF, DRMAA).
type CommandLineFunction interface {
	Function
	// Command returns the argv to execute.
	Command() []string
}

// InProcessFunction is a Function executed synchronously inside the
// scheduling loop's own process.
type InProcessFunction interface {
	Function
	// Run performs the work. It blocks until done or ctx is canceled.
	Run(ctx context.Context) error
}

// ScatterGatherable is a Function that may be rewritten into a replacement
// subgraph of shards plus a combining gather step before execution begins.
type ScatterGatherable interface {
	Function
	// Scatterable reports whether this particular instance should be
	// rewritten. A ScatterGatherable function for which this returns
	// false is left as-is.
	Scatterable() bool
	// GenerateFunctions returns the replacement functions (typically N
	// clones plus one gather) for this function edge.
	GenerateFunctions() ([]Function, error)
}

// CloneFunction tags a Function as one shard of a scatter.
type CloneFunction interface {
	Function
	isClone()
}

// GatherFunction tags a Function as the combining step of a scatter/gather.
type GatherFunction interface {
	Function
	isGather()
}

// JobRunner is the handle a backend factory hands back for a single
// started function. Implementations must transition Status monotonically
// and report Failed for any nonzero exit code or backend-reported error.
type JobRunner interface {
	// Start begins execution. Runners backed by an external process
	// return without waiting for job completion; a runner for an
	// InProcessFunction runs it to completion before returning.
	Start(ctx context.Context) error
	// Status returns the runner's current view of the job. It is read
	// from the scheduling loop's goroutine only.
	Status() Status
	// TryStop makes a best-effort attempt to cancel the job. Used only
	// by the shutdown path; errors are logged, never propagated.
	TryStop() error
	// RemoveTemporaryFiles performs idempotent cleanup of any side
	// files this runner created.
	RemoveTemporaryFiles() error
}
