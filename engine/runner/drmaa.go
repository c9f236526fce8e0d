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
	"errors"

	"github.com/scibatch/qrun/engine"
)

// ErrNotImplemented is returned by NewDRMAARunner: a real DRMAA binding
// depends on a cgo wrapper over the site's libdrmaa.so, which isn't
// something this module can vendor sight unseen. BatchJobRunner's
// bsub/bjobs shape already covers the LSF case directly.
var ErrNotImplemented = errors.New("runner: DRMAA backend is not implemented, use -jobRunner=batch against an LSF-compatible CLI instead")

// NewDRMAARunner always fails with ErrNotImplemented. It exists so a
// -jobRunner=drmaa flag value has somewhere to resolve to, with a clear
// error, rather than silently falling back to another backend.
func NewDRMAARunner(fn engine.CommandLineFunction) (engine.JobRunner, error) {
	return nil, ErrNotImplemented
}
