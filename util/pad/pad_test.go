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

package pad

import "testing"

func TestLeftRight(t *testing.T) {
	if got := Left("ab", 5); got != "   ab" {
		t.Errorf("Left: got %q", got)
	}
	if got := Right("ab", 5); got != "ab   " {
		t.Errorf("Right: got %q", got)
	}
}

func TestCenter(t *testing.T) {
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center: got %q", got)
	}
	if got := Center("abc", 6); got != " abc  " {
		t.Errorf("Center odd padding: got %q", got)
	}
	if got := Center("toolong", 3); got != "toolong" {
		t.Errorf("Center shouldn't truncate: got %q", got)
	}
}
