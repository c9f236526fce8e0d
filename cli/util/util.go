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

// Package util bundles a parsed cli.Args together with the values derived
// from it once, so cmd/qrun doesn't recompute them at every call site.
package util

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"

	"github.com/scibatch/qrun/cli"
)

// Data is the resolved configuration for one qrun invocation.
type Data struct {
	Args *cli.Args

	// RunID namespaces this invocation's log files so concurrent or
	// successive runs against the same RunDir don't clobber each other.
	RunID string

	// Logf is the process-wide logging function, prefixed with RunID.
	Logf func(format string, v ...interface{})
}

// New resolves a Data from parsed Args.
func New(a *cli.Args) *Data {
	runID := uuid.NewString()
	logf := func(format string, v ...interface{}) {
		log.Printf("[%s] %s", runID[:8], fmt.Sprintf(format, v...))
	}
	return &Data{Args: a, RunID: runID, Logf: logf}
}

// LogPath joins the configured RunDir with name, namespacing it under this
// run's RunID so successive runs don't overwrite each other's job logs.
func (d *Data) LogPath(name string) string {
	dir := d.Args.RunDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, d.RunID, name)
}

// AnalysisLogDir returns the per-analysis log directory for analysisName,
// snake-cased so a human-authored display name like "Variant Calling"
// turns into a shell-friendly "variant_calling" path segment.
func (d *Data) AnalysisLogDir(analysisName string) string {
	return d.LogPath(strcase.ToSnake(analysisName))
}
