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

// Package textdiff renders comparisons of text for humans: as unified diffs, as inline markup and
// as tables.
package textdiff

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/internal/config"
	"github.com/arka816/minigit/internal/impl"
	"github.com/arka816/minigit/internal/indentheuristic"
	"github.com/arka816/minigit/internal/rvecs"
	"github.com/arka816/minigit/internal/seqs"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const missingNewline = "\n\\ No newline at end of file\n"

// Unified compares the lines in x and y and returns the changes necessary to convert from one to
// the other in unified format.
//
// The following options are supported: [diff.Context], [diff.Myers], [diff.Hirschberg],
// [diff.CostLimit], [diff.IndentHeuristic], [TerminalColors]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Unified(x, y string, opts ...diff.Option) string {
	cfg := config.FromOptions(opts, config.Context|config.Solvers|config.CostLimit|config.IndentHeuristic|config.TerminalColors)

	xlines, ylines := splitLines(x), splitLines(y)
	rx, ry := impl.Diff(xlines, ylines, cfg, config.SolverHirschberg)
	if cfg.IndentHeuristic {
		indentheuristic.Apply(xlines, ylines, rx, ry)
	}

	p := printer{colors: cfg.Colors}
	for h := range rvecs.Hunks(rx, ry, cfg.Context) {
		p.header(h)
		for s, t := h.PosX, h.PosY; s < h.EndX || t < h.EndY; {
			for s < h.EndX && rx[s] {
				p.line(prefixDelete, xlines[s])
				s++
			}
			for t < h.EndY && ry[t] {
				p.line(prefixInsert, ylines[t])
				t++
			}
			for s < h.EndX && t < h.EndY && !rx[s] && !ry[t] {
				p.line(prefixMatch, xlines[s])
				s++
				t++
			}
		}
	}
	return p.b.String()
}

// UnifiedBytes is like [Unified] but for byte slices.
//
// The following options are supported: [diff.Context], [diff.Myers], [diff.Hirschberg],
// [diff.CostLimit], [diff.IndentHeuristic], [TerminalColors]
func UnifiedBytes(x, y []byte, opts ...diff.Option) []byte {
	// Viewing the inputs as strings avoids copying them. It's safe because the inputs are never
	// modified and the lines referencing them don't outlive this call.
	xs := unsafe.String(unsafe.SliceData(x), len(x))
	ys := unsafe.String(unsafe.SliceData(y), len(y))
	out := Unified(xs, ys, opts...)
	if out == "" {
		return nil
	}
	return []byte(out)
}

// splitLines splits text into lines that keep their line terminator. An unterminated last line
// gets the missing newline marker, which also makes it different from the same terminated line.
func splitLines(text string) []string {
	lines, missing := seqs.SplitAfterLines(text)
	if missing >= 0 {
		lines[missing] += missingNewline
	}
	return lines
}

type printer struct {
	b      strings.Builder
	colors *config.ColorConfig
}

func (p *printer) header(h rvecs.Hunk) {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.PosX+1, h.EndX-h.PosX, h.PosY+1, h.EndY-h.PosY)
	if p.colors != nil {
		p.colored(p.colors.HunkHeader, header)
	} else {
		p.b.WriteString(header)
	}
	p.b.WriteByte('\n')
}

// line writes a line that ends in '\n'.
func (p *printer) line(prefix, line string) {
	if p.colors == nil {
		p.b.WriteString(prefix)
		p.b.WriteString(line)
		return
	}
	var code string
	switch prefix {
	case prefixMatch:
		code = p.colors.Match
	case prefixDelete:
		code = p.colors.Delete
	case prefixInsert:
		code = p.colors.Insert
	}
	p.colored(code, prefix+strings.TrimSuffix(line, "\n"))
	p.b.WriteByte('\n')
}

func (p *printer) colored(code, text string) {
	if code == "" {
		p.b.WriteString(text)
		return
	}
	p.b.WriteString(code)
	p.b.WriteString(text)
	p.b.WriteString(config.Reset)
}
