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

package textdiff

import (
	"strconv"

	"github.com/arka816/minigit/diff"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	deleteStyle = cellStyle.Foreground(lipgloss.Color("1"))
	insertStyle = cellStyle.Foreground(lipgloss.Color("2"))
)

// Table renders a script as a table with one row per segment and the columns "#", "Op", "Old"
// and "New". format turns the text of a segment into a cell, absent sides are left empty.
//
// Whether the table is colored depends on the terminal the process is attached to.
func Table[T comparable](script diff.Script[T], format func([]T) string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Op", "Old", "New").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 0 || row >= len(script):
				return cellStyle
			case script[row].Op() == diff.Delete:
				return deleteStyle
			case script[row].Op() == diff.Insert:
				return insertStyle
			default:
				return cellStyle
			}
		})
	for i, seg := range script {
		var oldText, newText string
		if seg.Op() != diff.Insert {
			oldText = format(seg.Old())
		}
		if seg.Op() != diff.Delete {
			newText = format(seg.New())
		}
		t.Row(strconv.Itoa(i), seg.Op().String(), oldText, newText)
	}
	return t.String()
}
