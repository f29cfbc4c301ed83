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

package filetree

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ChangeKind describes how a file changed between two trees.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Modified
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change is a file that differs between two trees.
type Change struct {
	Path string
	Kind ChangeKind
	Old  *Node // nil if the file was added
	New  *Node // nil if the file was removed
}

// Compare returns the files that differ between old and new, sorted by path. Either tree may be
// nil. Subtrees with equal digests are not visited. A path that is a file in one tree and a
// directory in the other is reported as a removal and additions.
func Compare(old, new *Node) []Change {
	changes := compare(nil, old, new)
	slices.SortStableFunc(changes, func(a, b Change) int { return strings.Compare(a.Path, b.Path) })
	return changes
}

func compare(out []Change, old, new *Node) []Change {
	switch {
	case old == nil && new == nil:
		return out
	case old == nil:
		return appendFiles(out, new, Added)
	case new == nil:
		return appendFiles(out, old, Removed)
	case old.Kind != new.Kind:
		out = appendFiles(out, old, Removed)
		return appendFiles(out, new, Added)
	case old.Digest == new.Digest:
		return out
	case old.Kind == Blob:
		return append(out, Change{Path: new.Path, Kind: Modified, Old: old, New: new})
	}

	i, j := 0, 0
	for i < len(old.Children) || j < len(new.Children) {
		switch {
		case j == len(new.Children) || i < len(old.Children) && old.Children[i].Name < new.Children[j].Name:
			out = compare(out, old.Children[i], nil)
			i++
		case i == len(old.Children) || new.Children[j].Name < old.Children[i].Name:
			out = compare(out, nil, new.Children[j])
			j++
		default:
			out = compare(out, old.Children[i], new.Children[j])
			i++
			j++
		}
	}
	return out
}

func appendFiles(out []Change, n *Node, kind ChangeKind) []Change {
	return append(out, lo.Map(n.Files(), func(f *Node, _ int) Change {
		c := Change{Path: f.Path, Kind: kind}
		if kind == Removed {
			c.Old = f
		} else {
			c.New = f
		}
		return c
	})...)
}

// Count returns the number of changes of each kind.
func Count(changes []Change) map[ChangeKind]int {
	return lo.CountValuesBy(changes, func(c Change) ChangeKind { return c.Kind })
}
