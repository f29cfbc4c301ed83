// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rvecs

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parse creates result vectors from a string of 'M' (match), 'D' (delete) and 'I' (insert).
func parse(ops string) (rx, ry []bool) {
	for _, op := range ops {
		switch op {
		case 'M':
			rx = append(rx, false)
			ry = append(ry, false)
		case 'D':
			rx = append(rx, true)
		case 'I':
			ry = append(ry, true)
		default:
			panic("invalid op: " + string(op))
		}
	}
	return append(rx, false), append(ry, false)
}

func TestMake(t *testing.T) {
	rx, ry := Make(3, 2)
	if len(rx) != 4 || len(ry) != 3 {
		t.Fatalf("Make(3, 2) = len %d, %d, want 4, 3", len(rx), len(ry))
	}
	rx = append(rx, true) // must not overwrite ry
	if ry[0] {
		t.Errorf("appending to rx changed ry")
	}
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name string
		ops  string
		want []Run
	}{
		{
			name: "empty",
			ops:  "",
			want: nil,
		},
		{
			name: "identical",
			ops:  "MMM",
			want: []Run{{Match, 0, 0, 3}},
		},
		{
			name: "ABCABBA_to_CBABAC",
			ops:  "DDMIMMDMI",
			want: []Run{
				{Delete, 0, 0, 2},
				{Match, 2, 0, 1},
				{Insert, 3, 1, 1},
				{Match, 3, 2, 2},
				{Delete, 5, 4, 1},
				{Match, 6, 4, 1},
				{Insert, 7, 5, 1},
			},
		},
		{
			name: "insert-before-delete-is-reordered",
			ops:  "MIDM",
			want: []Run{
				{Match, 0, 0, 1},
				{Delete, 1, 1, 1},
				{Insert, 2, 1, 1},
				{Match, 2, 2, 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := parse(tt.ops)
			got := slices.Collect(Runs(rx, ry))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Runs(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	rx, ry := parse("DIMDMMDMI")
	if got := Distance(rx, ry); got != 5 {
		t.Errorf("Distance(...) = %d, want 5", got)
	}
}

func TestHunks(t *testing.T) {
	tests := []struct {
		name    string
		ops     string
		context int
		want    []Hunk
	}{
		{
			name:    "identical",
			ops:     "MMMMM",
			context: 3,
			want:    nil,
		},
		{
			name:    "ABCABBA_to_CBABAC",
			ops:     "DIMDMMDMI",
			context: 3,
			want:    []Hunk{{0, 7, 0, 6, 9}},
		},
		{
			name:    "ABCABBA_to_CBABAC_no_context",
			ops:     "DIMDMMDMI",
			context: 0,
			want: []Hunk{
				{0, 1, 0, 1, 2},
				{2, 3, 2, 2, 1},
				{5, 6, 4, 4, 1},
				{7, 7, 5, 6, 1},
			},
		},
		{
			name:    "two-hunks",
			ops:     "DMMMMMMMMI",
			context: 1,
			want: []Hunk{
				{0, 2, 0, 1, 2},
				{8, 9, 7, 9, 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := parse(tt.ops)
			got := slices.Collect(Hunks(rx, ry, tt.context))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Hunks(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}
