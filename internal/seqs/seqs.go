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

// Package seqs contains small helpers on slices and lines that are shared by the solvers, the
// cleanup passes and the renderers.
package seqs

import "strings"

// CommonPrefix returns the length of the longest common prefix of a and b.
func CommonPrefix[T comparable](a, b []T) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// CommonSuffix returns the length of the longest common suffix of a and b.
func CommonSuffix[T comparable](a, b []T) int {
	n := min(len(a), len(b))
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return i - 1
		}
	}
	return n
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix[T comparable](s, prefix []T) bool {
	return len(s) >= len(prefix) && CommonPrefix(s[:len(prefix)], prefix) == len(prefix)
}

// HasSuffix reports whether s ends with suffix.
func HasSuffix[T comparable](s, suffix []T) bool {
	return len(s) >= len(suffix) && CommonSuffix(s[len(s)-len(suffix):], suffix) == len(suffix)
}

// SplitLines splits text at '\n' and strips a trailing '\r' from every line. The empty text has
// no lines. A text ending in '\n' has an empty last line, so that joining the result with "\n"
// gives back the input (modulo '\r').
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, strings.TrimSuffix(text[:i], "\r"))
		text = text[i+1:]
	}
	return append(lines, strings.TrimSuffix(text, "\r"))
}

// SplitAfterLines splits text into lines that keep their '\n' terminator. If the last line is
// not terminated, missingNewline is its index, otherwise it's -1.
func SplitAfterLines(text string) (lines []string, missingNewline int) {
	n := strings.Count(text, "\n")
	if len(text) > 0 && text[len(text)-1] != '\n' {
		n++
	}
	lines = make([]string, n)
	for i := range n {
		m := strings.IndexByte(text, '\n')
		if m < 0 {
			break
		}
		lines[i] = text[:m+1]
		text = text[m+1:]
	}
	missingNewline = -1
	if len(text) > 0 {
		lines[n-1] = text
		missingNewline = n - 1
	}
	return lines, missingNewline
}
