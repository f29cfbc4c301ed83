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

package myers

// Diff compares x and y and marks the elements of a minimal edit script in the result vectors rx
// (deletions) and ry (insertions), which must have len(x)+1 and len(y)+1 elements and be false.
//
// If limit > 0 and the edit distance is larger than limit, Diff gives up, returns false and leaves
// rx and ry untouched.
func Diff[T comparable](x, y []T, rx, ry []bool, limit int) bool {
	trace, ok := search(x, y, limit)
	if !ok {
		return false
	}
	backtrack(trace, len(x), len(y), rx, ry)
	return true
}

// Distance returns the edit distance between x and y.
func Distance[T comparable](x, y []T) int {
	trace, _ := search(x, y, 0)
	return len(trace) - 1
}

// search runs the forward pass and returns the trace. trace[d][k+d] is the furthest s reached on
// diagonal k with d edits.
func search[T comparable](x, y []T, limit int) (trace [][]int, ok bool) {
	n, m := len(x), len(y)
	dmax := n + m
	if limit > 0 {
		dmax = min(dmax, limit)
	}

	// v is indexed by k+off, v[off+1] = 0 seeds the d = 0 round.
	off := dmax + 1
	v := make([]int, 2*dmax+3)
	for d := 0; d <= dmax; d++ {
		for k := -d; k <= d; k += 2 {
			var s int
			if k == -d || k != d && v[off+k-1] < v[off+k+1] {
				s = v[off+k+1] // step down
			} else {
				s = v[off+k-1] + 1 // step right
			}
			t := s - k
			for s < n && t < m && x[s] == y[t] {
				s++
				t++
			}
			v[off+k] = s
			if s >= n && t >= m {
				return append(trace, snapshot(v, off, d)), true
			}
		}
		trace = append(trace, snapshot(v, off, d))
	}

	if limit > 0 {
		return trace, false
	}
	// There is always a path with n+m edits.
	panic("never reached")
}

func snapshot(v []int, off, d int) []int {
	snap := make([]int, 2*d+1)
	copy(snap, v[off-d:off+d+1])
	return snap
}

// backtrack walks the trace from (n,m) back to (0,0) and marks every non-diagonal step.
func backtrack(trace [][]int, n, m int, rx, ry []bool) {
	s, t := n, m
	for d := len(trace) - 1; d > 0; d-- {
		prev := trace[d-1] // prev[k+d-1] is the furthest s on diagonal k after d-1 edits
		k := s - t
		var pk int
		if k == -d || k != d && prev[k-1+d-1] < prev[k+1+d-1] {
			pk = k + 1
		} else {
			pk = k - 1
		}
		ps := prev[pk+d-1]
		pt := ps - pk
		if pk == k+1 {
			ry[pt] = true // step down from (ps, pt) inserts y[pt]
		} else {
			rx[ps] = true // step right from (ps, pt) deletes x[ps]
		}
		s, t = ps, pt
	}
}
