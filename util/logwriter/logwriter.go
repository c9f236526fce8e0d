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

// Package logwriter adapts a Logf-style logging function to io.Writer, so
// that an *os/exec.Cmd's Stdout/Stderr can be wired directly into the
// engine's logging without a temp file in the common case.
package logwriter

import "strings"

// LogWriter splits whatever is written to it into lines and forwards each
// one, prefixed, to Logf.
type LogWriter struct {
	Prefix string
	Logf   func(format string, v ...interface{})

	buf strings.Builder
}

// Write implements io.Writer. Partial lines are buffered until the next
// newline arrives.
func (w *LogWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	s := w.buf.String()
	lines := strings.Split(s, "\n")
	for _, line := range lines[:len(lines)-1] {
		if w.Logf != nil {
			w.Logf("%s%s", w.Prefix, line)
		}
	}
	w.buf.Reset()
	w.buf.WriteString(lines[len(lines)-1])
	return len(p), nil
}

// Flush forwards any trailing partial line that never saw a newline.
func (w *LogWriter) Flush() {
	if w.buf.Len() == 0 {
		return
	}
	if w.Logf != nil {
		w.Logf("%s%s", w.Prefix, w.buf.String())
	}
	w.buf.Reset()
}
