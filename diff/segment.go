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
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSegment is returned by [NewSegment] when the operation and the texts don't fit
// together.
var ErrInvalidSegment = errors.New("invalid segment")

// Segment is a contiguous run of elements that share a single operation.
//
// An Equal segment holds the text present on both sides, a Delete segment the text only present
// in the old sequence, and an Insert segment the text only present in the new sequence. The zero
// value is an empty Equal segment.
type Segment[T comparable] struct {
	op   Op
	text []T
}

// NewSegment creates a segment from the text on the old and the new side. A nil slice denotes
// an absent side:
//
//   - Equal requires both sides to be present and equal,
//   - Delete requires the old side only,
//   - Insert requires the new side only.
//
// Any other combination returns an error wrapping [ErrInvalidSegment].
func NewSegment[T comparable](op Op, oldText, newText []T) (Segment[T], error) {
	switch op {
	case Equal:
		if oldText == nil || newText == nil {
			return Segment[T]{}, fmt.Errorf("%w: %v needs both sides", ErrInvalidSegment, op)
		}
		if !slices.Equal(oldText, newText) {
			return Segment[T]{}, fmt.Errorf("%w: %v with different sides", ErrInvalidSegment, op)
		}
		return Segment[T]{op, oldText}, nil
	case Delete:
		if oldText == nil || newText != nil {
			return Segment[T]{}, fmt.Errorf("%w: %v needs the old side only", ErrInvalidSegment, op)
		}
		return Segment[T]{op, oldText}, nil
	case Insert:
		if oldText != nil || newText == nil {
			return Segment[T]{}, fmt.Errorf("%w: %v needs the new side only", ErrInvalidSegment, op)
		}
		return Segment[T]{op, newText}, nil
	default:
		return Segment[T]{}, fmt.Errorf("%w: unknown operation %v", ErrInvalidSegment, op)
	}
}

// EqualSegment returns a segment of text present on both sides.
func EqualSegment[T comparable](text []T) Segment[T] { return Segment[T]{Equal, text} }

// DeleteSegment returns a segment of text removed from the old side.
func DeleteSegment[T comparable](text []T) Segment[T] { return Segment[T]{Delete, text} }

// InsertSegment returns a segment of text added to the new side.
func InsertSegment[T comparable](text []T) Segment[T] { return Segment[T]{Insert, text} }

// Op returns the operation of the segment.
func (s Segment[T]) Op() Op { return s.op }

// Text returns the text of the segment, regardless of the side it belongs to.
//
// The returned slice shares memory with the segment and must not be modified.
func (s Segment[T]) Text() []T { return s.text }

// Len returns the number of elements in the segment.
func (s Segment[T]) Len() int { return len(s.text) }

// Old returns the text on the old side, or nil for Insert segments.
func (s Segment[T]) Old() []T {
	if s.op == Insert {
		return nil
	}
	return s.text
}

// New returns the text on the new side, or nil for Delete segments.
func (s Segment[T]) New() []T {
	if s.op == Delete {
		return nil
	}
	return s.text
}

// with returns a copy of the segment carrying different text.
func (s Segment[T]) with(text []T) Segment[T] {
	s.text = text
	return s
}
