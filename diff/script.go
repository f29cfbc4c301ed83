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
	"fmt"
	"slices"
	"strings"
)

// Script is an ordered sequence of segments that transforms an old sequence into a new one.
//
// Scripts returned by this package are normalized: no two adjacent segments share an operation
// and no segment is empty. The methods of Script never modify the receiver, they return a new
// script instead.
type Script[T comparable] []Segment[T]

// Old reconstructs the old sequence from the Equal and Delete segments.
func (s Script[T]) Old() []T {
	return s.collect(Insert)
}

// New reconstructs the new sequence from the Equal and Insert segments.
func (s Script[T]) New() []T {
	return s.collect(Delete)
}

func (s Script[T]) collect(skip Op) []T {
	n := 0
	for _, seg := range s {
		if seg.op != skip {
			n += len(seg.text)
		}
	}
	out := make([]T, 0, n)
	for _, seg := range s {
		if seg.op != skip {
			out = append(out, seg.text...)
		}
	}
	return out
}

// Distance returns the number of deleted and inserted elements.
func (s Script[T]) Distance() int {
	d := 0
	for _, seg := range s {
		if seg.op != Equal {
			d += len(seg.text)
		}
	}
	return d
}

// Equal reports whether s and other consist of the same segments.
func (s Script[T]) Equal(other Script[T]) bool {
	return slices.EqualFunc(s, other, func(a, b Segment[T]) bool {
		return a.op == b.op && slices.Equal(a.text, b.text)
	})
}

// Normalized reports whether s has no empty segments and no two adjacent segments with the same
// operation.
func (s Script[T]) Normalized() bool {
	for i, seg := range s {
		if len(seg.text) == 0 {
			return false
		}
		if i > 0 && s[i-1].op == seg.op {
			return false
		}
	}
	return true
}

// String returns a compact notation of the script, for example "=ab -c +d". Every segment is
// prefixed with '=', '-' or '+'.
func (s Script[T]) String() string {
	var b strings.Builder
	for i, seg := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(seg.op.sigil())
		b.WriteString(format(seg.text))
	}
	return b.String()
}

func format[T comparable](text []T) string {
	switch v := any(text).(type) {
	case []rune:
		return string(v)
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// size returns the total number of elements in all segments.
func (s Script[T]) size() int {
	n := 0
	for _, seg := range s {
		n += len(seg.text)
	}
	return n
}
