// Copyright 2026 The minigit Authors
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

package lcs

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/arka816/minigit/internal/rvecs"
	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want string
	}{
		{
			name: "identical",
			x:    []string{"foo", "bar", "baz"},
			y:    []string{"foo", "bar", "baz"},
			want: "MMM",
		},
		{
			name: "empty",
			want: "",
		},
		{
			name: "x-empty",
			y:    []string{"foo", "bar", "baz"},
			want: "III",
		},
		{
			name: "y-empty",
			x:    []string{"foo", "bar", "baz"},
			want: "DDD",
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    strings.Split("ABCABBA", ""),
			y:    strings.Split("CBABAC", ""),
			want: "DDMDMIMMI",
		},
		{
			name: "replace-middle-line",
			x:    []string{"a", "b", "c"},
			y:    []string{"a", "x", "c"},
			want: "MDIM",
		},
		{
			name: "same-suffix",
			x:    []string{"foo", "bar"},
			y:    []string{"loo", "bar"},
			want: "DIM",
		},
		{
			name: "first-occurrence-wins",
			x:    []string{"a"},
			y:    []string{"b", "a", "a"},
			want: "IMI",
		},
		{
			name: "x-shorter",
			x:    []string{"a", "c"},
			y:    []string{"a", "b", "c", "d"},
			want: "MIMI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := rvecs.Make(len(tt.x), len(tt.y))
			Diff(tt.x, tt.y, rx, ry)
			got := render(rx, ry, len(tt.x), len(tt.y))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestRowBuffers(t *testing.T) {
	tests := []struct {
		name string
		x, y string
	}{
		{name: "x-longer", x: "abcabba", y: "cbab"},
		{name: "y-longer", x: "cbab", y: "abcabba"},
		{name: "equal", x: "abc", y: "cba"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := []byte(tt.x), []byte(tt.y)
			rx, ry := rvecs.Make(len(x), len(y))
			h := newHirschberg(x, y, rx, ry)
			if got, want := len(h.fwd), min(len(x), len(y))+1; got != want {
				t.Errorf("len(fwd) = %d, want %d", got, want)
			}
			if got, want := len(h.bwd), min(len(x), len(y))+1; got != want {
				t.Errorf("len(bwd) = %d, want %d", got, want)
			}

			Diff(x, y, rx, ry)
			kx, ky := keep(x, rx), keep(y, ry)
			if diff := cmp.Diff(kx, ky); diff != "" {
				t.Errorf("Diff(%q, %q) kept elements that don't match [-x,+y]:\n%s", x, y, diff)
			}
			if got, want := len(kx), reference(x, y); got != want {
				t.Errorf("Diff(%q, %q) kept %d elements, want LCS length %d", x, y, got, want)
			}
		})
	}
}

func TestDiffRandom(t *testing.T) {
	for i := range 200 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		rng := rand.New(rand.NewChaCha8(seed))
		x := randomInput(rng, 4, 16)
		y := randomInput(rng, 4, 16)

		rx, ry := rvecs.Make(len(x), len(y))
		Diff(x, y, rx, ry)
		kx, ky := keep(x, rx), keep(y, ry)
		if diff := cmp.Diff(kx, ky); diff != "" {
			t.Errorf("Diff(%v, %v) kept elements that don't match [-x,+y]:\n%s", x, y, diff)
		}
		if got, want := len(kx), reference(x, y); got != want {
			t.Errorf("Diff(%v, %v) kept %d elements, want LCS length %d", x, y, got, want)
		}
		if got, want := Length(x, y), reference(x, y); got != want {
			t.Errorf("Length(%v, %v) = %d, want %d", x, y, got, want)
		}
	}
}

func FuzzDiff(f *testing.F) {
	f.Add([]byte("ABCABBA"), []byte("CBABAC"))
	f.Fuzz(func(t *testing.T, x, y []byte) {
		if len(x)*len(y) > 1<<16 {
			t.Skip("input too large")
		}
		rx, ry := rvecs.Make(len(x), len(y))
		Diff(x, y, rx, ry)
		kx, ky := keep(x, rx), keep(y, ry)
		if diff := cmp.Diff(kx, ky); diff != "" {
			t.Errorf("Diff(%q, %q) kept elements that don't match [-x,+y]:\n%s", x, y, diff)
		}
		if got, want := len(kx), reference(x, y); got != want {
			t.Errorf("Diff(%q, %q) kept %d elements, want LCS length %d", x, y, got, want)
		}
	})
}

func render(rx, ry []bool, n, m int) string {
	var sb strings.Builder
	for s, t := 0, 0; s < n || t < m; {
		if rx[s] {
			sb.WriteRune('D')
			s++
		} else if ry[t] {
			sb.WriteRune('I')
			t++
		} else {
			sb.WriteRune('M')
			s++
			t++
		}
	}
	return sb.String()
}

func randomInput(rng *rand.Rand, alphabet, maxLen int) []byte {
	out := make([]byte, rng.IntN(maxLen+1))
	for i := range out {
		out[i] = byte('a' + rng.IntN(alphabet))
	}
	return out
}

func keep[T any](in []T, r []bool) []T {
	out := []T{}
	for i, e := range in {
		if !r[i] {
			out = append(out, e)
		}
	}
	return out
}

// reference computes the LCS length with a full dynamic programming table.
func reference[T comparable](x, y []T) int {
	tab := make([][]int, len(x)+1)
	for i := range tab {
		tab[i] = make([]int, len(y)+1)
	}
	for i := range x {
		for j := range y {
			if x[i] == y[j] {
				tab[i+1][j+1] = tab[i][j] + 1
			} else {
				tab[i+1][j+1] = max(tab[i][j+1], tab[i+1][j])
			}
		}
	}
	return tab[len(x)][len(y)]
}
