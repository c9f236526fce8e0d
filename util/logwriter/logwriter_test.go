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

package logwriter

import (
	"fmt"
	"testing"
)

func TestWriteSplitsLines(t *testing.T) {
	var lines []string
	w := &LogWriter{Prefix: "job: ", Logf: func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	}}

	n, err := w.Write([]byte("first\nsecond\npartial"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len("first\nsecond\npartial") {
		t.Errorf("unexpected n: %d", n)
	}
	if len(lines) != 2 || lines[0] != "job: first" || lines[1] != "job: second" {
		t.Fatalf("unexpected lines before flush: %v", lines)
	}

	w.Flush()
	if len(lines) != 3 || lines[2] != "job: partial" {
		t.Fatalf("unexpected lines after flush: %v", lines)
	}
}
