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

// Package indentheuristic slides groups of changed lines to positions that are easier to read,
// following the indentation heuristic by Michael Haggerty
// (https://github.com/mhagger/diff-slider-tools).
//
// A group of deleted (or inserted) lines can often be moved along a run of identical lines
// without changing the edit distance: if the line before the group equals the last line of the
// group, the group can move up by one line, and likewise down. Apply uses this freedom in three
// steps:
//
//  1. Merge groups that touch after sliding.
//  2. Align a group with a group on the other side, so that deletions are directly followed by
//     insertions.
//  3. Otherwise, pick the position whose boundaries score best according to indentation and
//     blank lines around them. The weights are derived from human rated diffs.
//
// Lines may or may not carry their line terminator, only leading whitespace is inspected.
package indentheuristic

import "cmp"

const (
	maxSliding = 100 // Never move a group further than this.
	maxIndent  = 200 // Indentation is clamped to this value.
	maxBlanks  = 20  // Don't look at more consecutive blank lines than this.
)

// Score weights.
const (
	startOfFilePenalty              = 1   // No non-blank lines before the split
	endOfFilePenalty                = 21  // No non-blank lines after the split
	totalBlankWeight                = -30 // Per blank line around the split
	postBlankWeight                 = 6   // Per blank line after the split
	relativeIndentPenalty           = -4  // Indented more than predecessor
	relativeIndentWithBlankPenalty  = 10  // Indented more than predecessor, with blank lines
	relativeOutdentPenalty          = 24  // Indented less than predecessor, next line indented more
	relativeOutdentWithBlankPenalty = 17  // Same, with blank lines
	relativeDentPenalty             = 23  // Indented less than predecessor
	relativeDentWithBlankPenalty    = 17  // Same, with blank lines
	indentWeight                    = 60  // Weight of the effective indent comparison
)

// Apply moves the groups of deletions in rx and insertions in ry. x and y are the compared lines,
// rx and ry the result vectors of a diff between them. The number of edits is unchanged.
func Apply(x, y []string, rx, ry []bool) {
	slide(x, y, rx, ry)
	slide(y, x, ry, rx)
}

// slide moves the groups in r. The groups in the other result vector ro are only used to find
// alignment opportunities, ro is not changed.
func slide(lines, other []string, r, ro []bool) {
	g, o := newGroups(lines, r), newGroups(other, ro)
	for g.next() {
		if !o.next() {
			panic("groups out of sync")
		}
		if g.len() == 0 {
			continue
		}

		aligned := -1  // End of g at a position where it faces a group in o.
		lowest := g.end // Highest end position g can be moved to.
		for size := 0; size != g.len(); {
			size = g.len()
			aligned = -1

			for g.up() {
				o.mustPrev()
			}
			lowest = g.end
			if o.len() > 0 {
				aligned = g.end
			}

			for g.down() {
				o.mustNext()
				if o.len() > 0 {
					aligned = g.end
				}
			}
		}

		switch {
		case lowest == g.end:
			// Can't be moved.
		case aligned != -1:
			for o.len() == 0 {
				if !g.up() {
					panic("aligned position lost")
				}
				o.mustPrev()
			}
		default:
			// g is at its lowest position now, only upward moves are left.
			best := -1
			var bestScore score
			for end := max(lowest, g.end-g.len()-1, g.end-maxSliding); end <= g.end; end++ {
				var sc score
				sc.add(measure(lines, end))
				sc.add(measure(lines, end-g.len()))
				if best == -1 || sc.compare(bestScore) <= 0 {
					best, bestScore = end, sc
				}
			}
			for g.end > best {
				if !g.up() {
					panic("best position lost")
				}
				o.mustPrev()
			}
		}
	}
	if o.next() {
		panic("groups out of sync")
	}
}

// groups iterates over the groups of changed lines in r. Groups may be empty; every unchanged
// line is followed by exactly one group, which keeps two iterators over rx and ry in sync.
type groups struct {
	start, end int // [start, end) are changed lines
	lines      []string
	r          []bool
}

func newGroups(lines []string, r []bool) *groups {
	return &groups{start: -1, end: -1, lines: lines, r: r}
}

func (g *groups) len() int { return g.end - g.start }

func (g *groups) last() int { return len(g.r) - 1 }

func (g *groups) next() bool {
	if g.end == g.last() {
		return false
	}
	g.start, g.end = g.end+1, g.end+1
	for g.end < g.last() && g.r[g.end] {
		g.end++
	}
	return true
}

func (g *groups) prev() bool {
	if g.start == 0 {
		return false
	}
	g.start, g.end = g.start-1, g.start-1
	for g.start > 0 && g.r[g.start-1] {
		g.start--
	}
	return true
}

func (g *groups) mustNext() {
	if !g.next() {
		panic("groups out of sync")
	}
}

func (g *groups) mustPrev() {
	if !g.prev() {
		panic("groups out of sync")
	}
}

// down moves the group down by one line and merges it with a group it runs into.
func (g *groups) down() bool {
	if g.end >= g.last() || g.lines[g.start] != g.lines[g.end] {
		return false
	}
	g.r[g.start], g.r[g.end] = false, true
	g.start++
	g.end++
	for g.end < g.last() && g.r[g.end] {
		g.end++
	}
	return true
}

// up moves the group up by one line and merges it with a group it runs into.
func (g *groups) up() bool {
	if g.start == 0 || g.lines[g.start-1] != g.lines[g.end-1] {
		return false
	}
	g.r[g.start-1], g.r[g.end-1] = true, false
	g.start--
	g.end--
	for g.start > 0 && g.r[g.start-1] {
		g.start--
	}
	return true
}

// split describes the surroundings of a group boundary.
type split struct {
	endOfFile  bool
	indent     int // -1 for a blank line
	preBlank   int
	preIndent  int
	postBlank  int
	postIndent int
}

func measure(lines []string, at int) split {
	sp := split{indent: -1, preIndent: -1, postIndent: -1}
	if at >= len(lines) {
		sp.endOfFile = true
	} else {
		sp.indent = indentation(lines[at])
	}

	for i := at - 1; i >= 0; i-- {
		sp.preIndent = indentation(lines[i])
		if sp.preIndent != -1 {
			break
		}
		sp.preBlank++
		if sp.preBlank == maxBlanks {
			sp.preIndent = 0
			break
		}
	}

	for i := at + 1; i < len(lines); i++ {
		sp.postIndent = indentation(lines[i])
		if sp.postIndent != -1 {
			break
		}
		sp.postBlank++
		if sp.postBlank == maxBlanks {
			sp.postIndent = 0
			break
		}
	}
	return sp
}

// indentation returns the width of the leading whitespace of line, or -1 if the line is blank.
func indentation(line string) int {
	n := 0
	for i := range len(line) {
		switch line[i] {
		case ' ':
			n++
		case '\t':
			n += 8 - n%8
		case '\n', '\v', '\r', '\f':
			// Doesn't count.
		default:
			return n
		}
		if n >= maxIndent {
			return maxIndent
		}
	}
	return -1
}

type score struct {
	effectiveIndent int // smaller is better
	penalty         int // smaller is better
}

func (s *score) add(sp split) {
	if sp.preIndent == -1 && sp.preBlank == 0 {
		s.penalty += startOfFilePenalty
	}
	if sp.endOfFile {
		s.penalty += endOfFilePenalty
	}

	postBlank := 0
	if sp.indent == -1 {
		postBlank = 1 + sp.postBlank
	}
	totalBlank := sp.preBlank + postBlank
	s.penalty += totalBlankWeight * totalBlank
	s.penalty += postBlankWeight * postBlank

	indent := sp.indent
	if indent == -1 {
		indent = sp.postIndent
	}
	s.effectiveIndent += indent

	switch {
	case indent == -1 || sp.preIndent == -1:
	case indent > sp.preIndent:
		if totalBlank != 0 {
			s.penalty += relativeIndentWithBlankPenalty
		} else {
			s.penalty += relativeIndentPenalty
		}
	case indent == sp.preIndent:
	case sp.postIndent != -1 && sp.postIndent > indent:
		// Likely the start of a new block.
		if totalBlank != 0 {
			s.penalty += relativeOutdentWithBlankPenalty
		} else {
			s.penalty += relativeOutdentPenalty
		}
	default:
		// Likely the end of a block.
		if totalBlank != 0 {
			s.penalty += relativeDentWithBlankPenalty
		} else {
			s.penalty += relativeDentPenalty
		}
	}
}

func (s score) compare(t score) int {
	return indentWeight*cmp.Compare(s.effectiveIndent, t.effectiveIndent) + s.penalty - t.penalty
}
