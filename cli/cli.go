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

// Package cli defines the qrun command-line surface.
package cli

import "github.com/alexflint/go-arg"

// Args is the full command-line surface for cmd/qrun, parsed with go-arg.
type Args struct {
	Run              bool   `arg:"--run" help:"actually execute the pipeline; without it, build/validate/rewrite and print the plan only"`
	StartFromScratch bool   `arg:"--startFromScratch" help:"force every function edge to PENDING, ignoring what's already on disk"`
	JobRunner        string `arg:"--jobRunner" default:"local" help:"backend to dispatch jobs to: local, batch, or drmaa"`
	JobQueue         string `arg:"--jobQueue" help:"batch queue name, passed to -jobRunner=batch"`
	LocalSlots       int    `arg:"--localSlots" default:"4" help:"maximum concurrent jobs for -jobRunner=local"`
	TempDir          string `arg:"--tempDir" default:"/tmp" help:"scratch directory for runner-owned temporary files"`
	RunDir           string `arg:"--runDir" help:"working directory job output/error files are written under"`
	StatusEmailTo    string `arg:"--statusEmailTo" help:"address to send the final run summary to; empty disables email"`
	StatusEmailFrom  string `arg:"--statusEmailFrom" default:"qrun@localhost" help:"From address on the status email"`
	SMTPAddr         string `arg:"--smtpAddr" default:"localhost:25" help:"SMTP relay used for -statusEmailTo"`
	Dot              string `arg:"--dot" help:"write the pre-rewrite graph in DOT format to this path"`
	ExpandedDot      string `arg:"--expandedDot" help:"write the post-scatter/gather graph in DOT format to this path"`
	MetricsAddr      string `arg:"--metricsAddr" help:"if set, serve Prometheus metrics on this address while the pipeline runs"`
}

// Version is reported by --version via go-arg.
func (Args) Version() string { return "qrun" }

// Parse parses os.Args into an Args, exiting the process on -h/--help or a
// parse error (go-arg's standard behavior).
func Parse() *Args {
	var a Args
	arg.MustParse(&a)
	return &a
}
