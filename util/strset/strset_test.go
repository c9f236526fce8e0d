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

package strset

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestInList(t *testing.T) {
	if !InList("b", []string{"a", "b", "c"}) {
		t.Errorf("expected b to be found")
	}
	if InList("z", []string{"a", "b", "c"}) {
		t.Errorf("expected z not to be found")
	}
}

func TestIntersection(t *testing.T) {
	got := Intersection([]string{"a", "b", "b", "c"}, []string{"b", "c", "d"})
	want := []string{"b", "c"}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("Intersection mismatch (-got +want):\n%s", diff)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	got := RemoveDuplicates([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("RemoveDuplicates mismatch (-got +want):\n%s", diff)
	}
}
