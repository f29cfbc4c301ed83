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

// Package myers contains an implementation of Myers' greedy O(ND) difference algorithm that keeps
// the full search history (the trace) and recovers the edit script by walking it backwards.
//
// Keeping the trace costs O(D²) memory where D is the edit distance, this package is meant for
// short inputs like characters of a line. For long inputs, the caller limits the search with a
// cost limit and falls back to a linear space solver when the limit is exceeded.
//
// # Edit graph
//
// For x = "ABCABBA" and y = "CBABAC", all possible edits from x to y form the graph:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// A vertex (s,t) is the state after consuming x[:s] and y[:t]. A step right deletes x[s], a step
// down inserts y[t] and a diagonal step, which only exists if x[s] == y[t], is a match. Steps
// right and down cost 1, diagonals are free. A shortest path from (0,0) to (N,M) is a minimal edit
// script.
//
// The diagonal k contains all vertices with s-t = k. A path with exactly d non-diagonal steps (a
// d-path) ends on a diagonal in {-d, -d+2, ..., d}. A furthest reaching d-path on diagonal k
// is a furthest reaching (d-1)-path on k-1 followed by a step right, or one on k+1 followed by a
// step down, followed by as many diagonal steps as possible. The algorithm computes, for d = 0,
// 1, 2, ..., the furthest s reachable on every diagonal k in v[k] and stops at the first d that
// reaches (N,M). For the graph above, that's d = 5.
//
// # Trace
//
// After every d, a copy of v[-d..d] is appended to the trace. The copies are never modified, so
// backtracking can consult the state of any earlier round. Starting at (N,M) with d = D, the
// predecessor diagonal is chosen with the same rule used in the forward pass: k+1 (a step down)
// if k = -d or if k != d and v[k-1] < v[k+1], and k-1 (a step right) otherwise. The step is
// recorded as an insertion or deletion, and the walk continues at the end of the (d-1)-path.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers
