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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's shared by both solvers and is then translated to a user facing API.
//
// For inputs x and y, rx has len(x)+1 and ry has len(y)+1 elements. rx[s] is true if x[s] is
// deleted and ry[t] is true if y[t] is inserted. The last element of each vector is a border that
// is always false, it allows scanning without bounds checks.
package rvecs

import "iter"

// Make allocates result vectors for inputs of length n and m.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// Kind describes the operation of a run.
type Kind int

const (
	Match Kind = iota
	Delete
	Insert
)

// Run is a maximal sequence of elements that share the same operation.
type Run struct {
	Kind Kind
	S, T int // Start position in x and y.
	Len  int
}

// Runs returns the runs described by rx and ry in order. Within a change, deletions come before
// insertions.
func Runs(rx, ry []bool) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		n, m := len(rx)-1, len(ry)-1
		for s, t := 0, 0; s < n || t < m; {
			if s0 := s; rx[s] {
				for s < n && rx[s] {
					s++
				}
				if !yield(Run{Delete, s0, t, s - s0}) {
					return
				}
			}
			if t0 := t; ry[t] {
				for t < m && ry[t] {
					t++
				}
				if !yield(Run{Insert, s, t0, t - t0}) {
					return
				}
			}
			if s0, t0 := s, t; s < n && t < m && !rx[s] && !ry[t] {
				for s < n && t < m && !rx[s] && !ry[t] {
					s++
					t++
				}
				if !yield(Run{Match, s0, t0, s - s0}) {
					return
				}
			}
		}
	}
}

// Distance returns the number of deletions and insertions.
func Distance(rx, ry []bool) int {
	d := 0
	for _, r := range rx {
		if r {
			d++
		}
	}
	for _, r := range ry {
		if r {
			d++
		}
	}
	return d
}
