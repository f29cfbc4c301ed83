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

// Package lcs contains an implementation of Hirschberg's linear space longest common subsequence
// algorithm.
//
// The algorithm splits x in half and computes, for every split point j of y, the length of the
// LCS of the first half of x with y[:j] (forward pass) and of the second half of x with y[j:]
// (backward pass). The split point that maximizes the sum is on an optimal path, so the problem
// splits into two independent subproblems. Each pass only needs a single row of the dynamic
// programming table. Rows run along the shorter input, which makes the auxiliary space
// O(min(len(x), len(y))) instead of O(len(x)*len(y)).
//
// ## References:
//
// Hirschberg, D.S. A linear space algorithm for computing maximal common subsequences.
// Communications of the ACM 18, 341-343 (1975). https://doi.org/10.1145/360825.360861
package lcs

// Diff compares x and y and marks all elements that are not part of a longest common subsequence
// in the result vectors rx (deletions) and ry (insertions), which must have len(x)+1 and len(y)+1
// elements and be false.
//
// The row buffers are sized by the shorter input.
func Diff[T comparable](x, y []T, rx, ry []bool) {
	h := newHirschberg(x, y, rx, ry)
	h.compare(0, len(h.x), 0, len(h.y))
}

// Length returns the length of a longest common subsequence of x and y.
func Length[T comparable](x, y []T) int {
	h := newHirschberg(x, y, nil, nil)
	h.forward(0, len(h.x), 0, len(h.y))
	return h.fwd[len(h.y)]
}

// newHirschberg orients the problem so that y is the shorter side. LCS is symmetric, so swapping
// x and y together with their result vectors yields the same markings.
func newHirschberg[T comparable](x, y []T, rx, ry []bool) *hirschberg[T] {
	if len(y) > len(x) {
		x, y = y, x
		rx, ry = ry, rx
	}
	return &hirschberg[T]{
		x:   x,
		y:   y,
		rx:  rx,
		ry:  ry,
		fwd: make([]int, len(y)+1),
		bwd: make([]int, len(y)+1),
	}
}

type hirschberg[T comparable] struct {
	x, y   []T
	rx, ry []bool

	// Row buffers, reused on every level of the recursion.
	fwd, bwd []int
}

func (h *hirschberg[T]) compare(smin, smax, tmin, tmax int) {
	switch {
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			h.rx[s] = true
		}
		return
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			h.ry[t] = true
		}
		return
	// Direct scans, the first occurrence wins.
	case tmax-tmin == 1:
		match := -1
		for s := smin; s < smax; s++ {
			if h.x[s] == h.y[tmin] {
				match = s
				break
			}
		}
		if match < 0 {
			h.ry[tmin] = true
		}
		for s := smin; s < smax; s++ {
			h.rx[s] = s != match
		}
		return
	case smax-smin == 1:
		match := -1
		for t := tmin; t < tmax; t++ {
			if h.x[smin] == h.y[t] {
				match = t
				break
			}
		}
		if match < 0 {
			h.rx[smin] = true
		}
		for t := tmin; t < tmax; t++ {
			h.ry[t] = t != match
		}
		return
	}

	mid := smin + (smax-smin)/2
	h.forward(smin, mid, tmin, tmax)
	h.backward(mid, smax, tmin, tmax)

	n := tmax - tmin
	best, split := -1, 0
	for j := 0; j <= n; j++ {
		if l := h.fwd[j] + h.bwd[n-j]; l > best {
			best, split = l, j
		}
	}

	h.compare(smin, mid, tmin, tmin+split)
	h.compare(mid, smax, tmin+split, tmax)
}

// forward computes fwd[j] = LCS(x[smin:smax], y[tmin:tmin+j]) for j in [0, tmax-tmin].
func (h *hirschberg[T]) forward(smin, smax, tmin, tmax int) {
	row := h.fwd[:tmax-tmin+1]
	clear(row)
	for s := smin; s < smax; s++ {
		diag := 0 // row[j-1] of the previous iteration
		for j := 1; j < len(row); j++ {
			up := row[j]
			if h.x[s] == h.y[tmin+j-1] {
				row[j] = diag + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			diag = up
		}
	}
}

// backward computes bwd[j] = LCS(x[smin:smax], y[tmax-j:tmax]) for j in [0, tmax-tmin].
func (h *hirschberg[T]) backward(smin, smax, tmin, tmax int) {
	row := h.bwd[:tmax-tmin+1]
	clear(row)
	for s := smax - 1; s >= smin; s-- {
		diag := 0
		for j := 1; j < len(row); j++ {
			up := row[j]
			if h.x[s] == h.y[tmax-j] {
				row[j] = diag + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			diag = up
		}
	}
}
