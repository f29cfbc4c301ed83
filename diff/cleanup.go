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

package diff

import (
	"slices"

	"github.com/arka816/minigit/internal/seqs"
)

// MergeAdjacent coalesces consecutive segments that share an operation into one and drops empty
// segments. It makes no other changes.
func (s Script[T]) MergeAdjacent() Script[T] {
	out := make(Script[T], 0, len(s))
	for i := 0; i < len(s); {
		j, n := i, 0
		for ; j < len(s) && s[j].op == s[i].op; j++ {
			n += len(s[j].text)
		}
		switch {
		case n == 0:
			// Only empty segments.
		case j-i == 1:
			out = append(out, s[i])
		default:
			text := make([]T, 0, n)
			for _, seg := range s[i:j] {
				text = append(text, seg.text...)
			}
			out = append(out, Segment[T]{s[i].op, text})
		}
		i = j
	}
	return out
}

// CleanupMerge reorders and merges the changes between two Equal segments.
//
// All Delete and Insert segments between two Equal segments are combined into at most one Delete
// followed by at most one Insert. A common prefix of the deleted and inserted text is moved into
// the preceding Equal segment and a common suffix into the following one. Adjacent Equal segments
// are merged and empty segments dropped.
func (s Script[T]) CleanupMerge() Script[T] {
	out := make(Script[T], 0, len(s)+1)
	var del, ins []T
	pending := false
	for i := 0; i <= len(s); i++ {
		var eq []T
		if i < len(s) {
			switch seg := s[i]; seg.op {
			case Delete:
				del = append(del, seg.text...)
				pending = true
				continue
			case Insert:
				ins = append(ins, seg.text...)
				pending = true
				continue
			}
			if len(s[i].text) == 0 {
				continue
			}
			eq = s[i].text
		}
		// i == len(s) acts as an empty Equal segment that flushes the last change.

		if pending {
			if n := seqs.CommonPrefix(del, ins); n > 0 {
				out = appendEqual(out, ins[:n:n])
				del, ins = del[n:], ins[n:]
			}
			if n := seqs.CommonSuffix(del, ins); n > 0 {
				eq = slices.Concat(ins[len(ins)-n:], eq)
				del, ins = del[:len(del)-n], ins[:len(ins)-n]
			}
			if len(del) > 0 {
				out = append(out, Segment[T]{Delete, del})
			}
			if len(ins) > 0 {
				out = append(out, Segment[T]{Insert, ins})
			}
			del, ins = nil, nil
			pending = false
		}
		if len(eq) > 0 {
			out = appendEqual(out, eq)
		}
	}
	return out
}

func appendEqual[T comparable](out Script[T], text []T) Script[T] {
	if n := len(out); n > 0 && out[n-1].op == Equal {
		out[n-1].text = slices.Concat(out[n-1].text, text)
		return out
	}
	return append(out, Segment[T]{Equal, text})
}

// TransposeChaffs slides Equal text across a change that is a rotation of its neighbor.
//
// For example, "=a +ba =c" becomes "+ab =ac" and "=c +ab =a" becomes "=ca +ba". The edit distance
// is unchanged but the change no longer repeats the text next to it. Every rewrite is followed by
// [Script.CleanupMerge] and the pass is repeated until nothing moves.
func (s Script[T]) TransposeChaffs() Script[T] {
	if !s.Normalized() {
		s = s.MergeAdjacent()
	}
	for range s.size() + len(s) + 1 {
		next, changed := transpose(s)
		if !changed {
			return s
		}
		s = next.CleanupMerge()
	}
	return s
}

func transpose[T comparable](s Script[T]) (Script[T], bool) {
	out := slices.Clone(s)
	changed := false
	for i := 1; i < len(out)-1; i++ {
		prev, cur, next := out[i-1], out[i], out[i+1]
		if prev.op != Equal || next.op != Equal || cur.op == Equal {
			continue
		}
		if len(prev.text) == 0 || len(cur.text) == 0 {
			continue
		}
		switch {
		case seqs.HasSuffix(cur.text, prev.text):
			// =A +BA =C  ->  +AB =AC
			out[i] = cur.with(slices.Concat(prev.text, cur.text[:len(cur.text)-len(prev.text)]))
			out[i+1] = next.with(slices.Concat(prev.text, next.text))
			out = slices.Delete(out, i-1, i)
			changed = true
		case len(next.text) > 0 && seqs.HasPrefix(cur.text, next.text):
			// =A +CB =C  ->  =AC +BC
			out[i-1] = prev.with(slices.Concat(prev.text, next.text))
			out[i] = cur.with(slices.Concat(cur.text[len(next.text):], next.text))
			out = slices.Delete(out, i+1, i+2)
			changed = true
		}
	}
	return out, changed
}

// CleanupSemantic turns short Equal segments into changes if they are surrounded by larger
// changes.
//
// An Equal segment is absorbed when it's not longer than the deleted plus inserted text directly
// before it and not longer than the deleted plus inserted text directly after it. The pass is
// repeated, each time followed by [Script.CleanupMerge], until the script doesn't change anymore.
func (s Script[T]) CleanupSemantic() Script[T] {
	for range s.size() + len(s) + 1 {
		next, changed := semantic(s)
		if !changed {
			return s
		}
		next = next.CleanupMerge()
		if next.Equal(s) {
			return s
		}
		s = next
	}
	return s
}

func semantic[T comparable](s Script[T]) (Script[T], bool) {
	out := slices.Clone(s)
	var (
		equalities    []int // Indices of Equal segments that may still be absorbed
		last          []T   // Text of the most recent Equal segment
		hasLast       bool
		before, after int // Changed elements before and after last
		changed       bool
	)
	for i := 0; i < len(out); i++ {
		if out[i].op == Equal {
			equalities = append(equalities, i)
			before, after = after, 0
			last, hasLast = out[i].text, true
			continue
		}
		after += len(out[i].text)
		if !hasLast || len(last) == 0 || len(last) > before || len(last) > after {
			continue
		}

		j := equalities[len(equalities)-1]
		out[j] = Segment[T]{Delete, last}
		out = slices.Insert(out, j+1, Segment[T]{Insert, last})

		// The Equal segment before j now has different trailing context, drop it too and restart
		// the scan after the one before that.
		equalities = equalities[:len(equalities)-1]
		if len(equalities) > 0 {
			equalities = equalities[:len(equalities)-1]
		}
		i = -1
		if len(equalities) > 0 {
			i = equalities[len(equalities)-1]
		}
		before, after = 0, 0
		last, hasLast = nil, false
		changed = true
	}
	return out, changed
}

// Cleanup runs [Script.CleanupMerge], [Script.TransposeChaffs] and [Script.CleanupSemantic] until
// the script reaches a fixpoint. Applying Cleanup to its own result returns an equal script.
func (s Script[T]) Cleanup() Script[T] {
	s = s.MergeAdjacent()
	for range s.size() + len(s) + 2 {
		next := s.CleanupMerge().TransposeChaffs().CleanupSemantic()
		if next.Equal(s) {
			return s
		}
		s = next
	}
	return s
}
