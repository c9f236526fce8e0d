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

package pgraph

import (
	"fmt"
	"sort"
)

// Graphviz renders the graph in DOT format.
// https://en.wikipedia.org/wiki/DOT_%28graph_description_language%29
func (g *Graph) Graphviz() string {
	out := fmt.Sprintf("digraph %v {\n", g.Name)
	out += fmt.Sprintf("\tlabel=\"%v\";\n", g.Name)

	ids := make(map[Vertex]int)
	vertices := g.VerticesSorted()
	for i, v := range vertices {
		ids[v] = i
		out += fmt.Sprintf("\tn%d [label=%q];\n", i, v.String())
	}

	var lines []string
	for _, v := range vertices {
		for w, e := range g.Adjacency[v] {
			label := ""
			if e != nil {
				label = e.String()
			}
			lines = append(lines, fmt.Sprintf("\tn%d -> n%d [label=%q];\n", ids[v], ids[w], label))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		out += l
	}

	out += "}\n"
	return out
}
