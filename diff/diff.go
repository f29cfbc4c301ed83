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

package diff

import (
	"github.com/arka816/minigit/internal/config"
	"github.com/arka816/minigit/internal/impl"
	"github.com/arka816/minigit/internal/indentheuristic"
	"github.com/arka816/minigit/internal/rvecs"
	"github.com/arka816/minigit/internal/seqs"
)

// Chars compares the characters of x and y and returns a minimal script that transforms x into
// y. Adjacent segments are merged and common affixes of changes are moved into the surrounding
// Equal segments, use [Script.Cleanup] for a more readable result.
//
// Characters are runes. Invalid UTF-8 decodes to U+FFFD, so [Script.Old] and
// [Script.New] only reproduce x and y for valid UTF-8. Compare arbitrary bytes with
// Tokens([]byte(x), []byte(y)) instead.
//
// Chars uses Myers' algorithm unless configured otherwise.
//
// The following options are supported: [diff.Myers], [diff.Hirschberg], [diff.CostLimit]
func Chars(x, y string, opts ...Option) Script[rune] {
	return Tokens([]rune(x), []rune(y), opts...)
}

// Tokens compares two arbitrary token sequences and returns a minimal script that transforms x
// into y.
//
// Tokens uses Myers' algorithm unless configured otherwise.
//
// The following options are supported: [diff.Myers], [diff.Hirschberg], [diff.CostLimit]
func Tokens[T comparable](x, y []T, opts ...Option) Script[T] {
	cfg := config.FromOptions(opts, config.Solvers|config.CostLimit)
	rx, ry := impl.Diff(x, y, cfg, config.SolverMyers)
	return fromResultVectors(x, y, rx, ry).MergeAdjacent().CleanupMerge()
}

// Lines compares x and y line by line and returns a minimal script that transforms the lines of
// x into the lines of y. Lines are split with [SplitLines], so line terminators are not part of
// the script. Two empty inputs result in an empty script.
//
// Lines uses Hirschberg's algorithm unless configured otherwise.
//
// The following options are supported: [diff.Myers], [diff.Hirschberg], [diff.CostLimit],
// [diff.IndentHeuristic]
func Lines(x, y string, opts ...Option) Script[string] {
	cfg := config.FromOptions(opts, config.Solvers|config.CostLimit|config.IndentHeuristic)
	xlines, ylines := seqs.SplitLines(x), seqs.SplitLines(y)
	rx, ry := impl.Diff(xlines, ylines, cfg, config.SolverHirschberg)
	if cfg.IndentHeuristic {
		indentheuristic.Apply(xlines, ylines, rx, ry)
	}
	return fromResultVectors(xlines, ylines, rx, ry).MergeAdjacent().CleanupMerge()
}

// SplitLines splits text into lines at '\n'. A trailing '\r' is removed from every line. The
// empty string has no lines, a text that ends in '\n' has an empty last line.
func SplitLines(text string) []string {
	return seqs.SplitLines(text)
}

// fromResultVectors converts result vectors into a raw script with one segment per element.
// Deletions come before insertions in every gap between matches.
func fromResultVectors[T comparable](x, y []T, rx, ry []bool) Script[T] {
	out := make(Script[T], 0, len(x)+len(y))
	for run := range rvecs.Runs(rx, ry) {
		for i := range run.Len {
			switch run.Kind {
			case rvecs.Delete:
				s := run.S + i
				out = append(out, Segment[T]{Delete, x[s : s+1 : s+1]})
			case rvecs.Insert:
				t := run.T + i
				out = append(out, Segment[T]{Insert, y[t : t+1 : t+1]})
			case rvecs.Match:
				s := run.S + i
				out = append(out, Segment[T]{Equal, x[s : s+1 : s+1]})
			}
		}
	}
	return out
}
