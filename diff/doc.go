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

// Package diff computes minimal edit scripts between two sequences and cleans them up for human
// consumption.
//
// [Chars] and [Tokens] compare characters or arbitrary tokens with Myers' O(ND) algorithm, [Lines]
// compares lines with Hirschberg's linear space algorithm. Both return a [Script], a sequence of
// Equal, Delete and Insert segments. The solver can be changed with [Myers] and [Hirschberg].
//
// A raw script is minimal but not always easy to read. [Script.Cleanup] rewrites it into a form
// that is easier to understand: it merges changes, slides changes that repeat their surroundings
// and absorbs short matches that are surrounded by larger changes. The individual passes are
// available as [Script.CleanupMerge], [Script.TransposeChaffs] and [Script.CleanupSemantic].
//
// Note: For unified diffs and other renderings, please see the textdiff package.
package diff
