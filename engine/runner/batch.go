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
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/util/errwrap"
)

// bsubJobIDPattern matches the job ID LSF's bsub prints on a successful
// submit: "Job <12345> is submitted to queue <normal>.".
var bsubJobIDPattern = regexp.MustCompile(`Job <(\d+)> is submitted`)

// BatchJobRunner submits a CommandLineFunction to an LSF-compatible batch
// system and polls bjobs for completion. The submit/poll binaries are
// overridable so the same shape also serves SGE/DRMAA-family backends
// that speak a similar bsub/bjobs CLI.
type BatchJobRunner struct {
	Fn    engine.CommandLineFunction
	Logf  func(format string, v ...interface{})
	Queue string

	SubmitBin string // default "bsub"
	PollBin   string // default "bjobs"

	mu     sync.Mutex
	jobID  string
	status engine.Status
}

// Start implements engine.JobRunner: it submits the job synchronously
// (bsub returns as soon as the job is queued) and leaves polling for
// Status.
func (r *BatchJobRunner) Start(ctx context.Context) error {
	submitBin := r.SubmitBin
	if submitBin == "" {
		submitBin = "bsub"
	}

	argv := []string{"-q", r.Queue}
	if path := r.Fn.JobOutputFile(); path != "" {
		argv = append(argv, "-o", path)
	}
	if path := r.Fn.JobErrorFile(); path != "" {
		argv = append(argv, "-e", path)
	}
	argv = append(argv, r.Fn.Command()...)

	cmd := exec.CommandContext(ctx, submitBin, argv...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return errwrap.Wrapf(err, "%s: %s failed", r.Fn.Description(), submitBin)
	}

	m := bsubJobIDPattern.FindStringSubmatch(stdout.String())
	if m == nil {
		return fmt.Errorf("%s: could not parse job id from %s output: %q", r.Fn.Description(), submitBin, stdout.String())
	}

	r.mu.Lock()
	r.jobID = m[1]
	r.status = engine.Running
	r.mu.Unlock()

	if r.Logf != nil {
		r.Logf("%s: submitted as job %s", r.Fn.Description(), m[1])
	}
	return nil
}

// Status implements engine.JobRunner by shelling out to bjobs. It is
// called repeatedly from the scheduling loop, so a transient poll error
// leaves the status unchanged rather than failing the job outright.
func (r *BatchJobRunner) Status() engine.Status {
	r.mu.Lock()
	jobID, cached := r.jobID, r.status
	r.mu.Unlock()

	if jobID == "" || cached == engine.Done || cached == engine.Failed {
		return cached
	}

	pollBin := r.PollBin
	if pollBin == "" {
		pollBin = "bjobs"
	}
	out, err := exec.Command(pollBin, "-noheader", "-o", "stat", jobID).Output()
	if err != nil {
		if r.Logf != nil {
			r.Logf("%s: poll failed: %v", r.Fn.Description(), err)
		}
		return cached
	}

	s := lsfStateToStatus(strings.TrimSpace(string(out)), cached)
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
	return s
}

// lsfStateToStatus maps an LSF job state string to our Status. An empty
// state (bjobs prints nothing once a job has aged out of its history
// window) is treated as Done, since the job is no longer pending or
// running by definition. An unrecognized state returns fallback unchanged.
func lsfStateToStatus(state string, fallback engine.Status) engine.Status {
	switch state {
	case "PEND", "PSUSP", "USUSP", "SSUSP", "WAIT":
		return engine.Running
	case "RUN":
		return engine.Running
	case "DONE":
		return engine.Done
	case "EXIT":
		return engine.Failed
	case "":
		return engine.Done
	default:
		return fallback
	}
}

// TryStop implements engine.JobRunner by invoking bkill.
func (r *BatchJobRunner) TryStop() error {
	r.mu.Lock()
	jobID := r.jobID
	r.mu.Unlock()
	if jobID == "" {
		return nil
	}
	return exec.Command("bkill", jobID).Run()
}

// RemoveTemporaryFiles implements engine.JobRunner. Batch job output/error
// files are the function's own declared files, not scratch the runner
// owns, so there is nothing to remove here.
func (r *BatchJobRunner) RemoveTemporaryFiles() error { return nil }

// String satisfies fmt.Stringer for debug logging.
func (r *BatchJobRunner) String() string {
	return fmt.Sprintf("batch(%s, job=%s)", r.Fn.Description(), r.jobID)
}
