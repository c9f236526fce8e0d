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

// Package dotgraph writes a pgraph.Graph out in Graphviz DOT format, for
// the -dot and -expandedDot flags.
package dotgraph

import (
	"io"

	"github.com/scibatch/qrun/pgraph"
)

// Write renders g as DOT and copies it to w.
func Write(w io.Writer, g *pgraph.Graph) error {
	_, err := io.WriteString(w, g.Graphviz())
	return err
}
