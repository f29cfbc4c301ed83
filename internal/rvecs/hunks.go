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

import "iter"

// Hunk describes a sequence of consecutive runs with surrounding context.
type Hunk struct {
	PosX, EndX int // Start and end of the hunk in x.
	PosY, EndY int // Start and end of the hunk in y.
	Edits      int // Number of lines in this hunk, including context.
}

// Hunks groups the changes in rx and ry into hunks with context matching elements before the first
// and after the last change. Hunks that would overlap or touch are joined.
func Hunks(rx, ry []bool, context int) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		s, t := 0, 0     // current index into x, y
		hs, ht := -1, -1 // start of the current hunk, -1 if there's none
		edits := 0       // number of edits in the current hunk
		matches := 0     // number of consecutive matches
		n, m := len(rx)-1, len(ry)-1
		for s < n || t < m {
			if rx[s] || ry[t] {
				matches = 0
				if hs < 0 {
					hs, ht = max(0, s-context), max(0, t-context)
					edits = s - hs
				}
				for s < n && rx[s] {
					s++
					edits++
				}
				for t < m && ry[t] {
					t++
					edits++
				}
			} else {
				for s < n && t < m && !rx[s] && !ry[t] {
					s++
					t++
					matches++
					edits++
				}
			}
			// Close the hunk once the run of matches can't be shared with the next hunk or the
			// input is exhausted.
			if hs >= 0 && (matches > 2*context || s == n && t == m) {
				trim := min(0, context-matches)
				if !yield(Hunk{hs, s + trim, ht, t + trim, edits + trim}) {
					return
				}
				hs, ht = -1, -1
			}
		}
	}
}
