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

// Package unixpatch applies unified diffs.
//
// [Apply] understands the output of textdiff.Unified. [Patch] runs the unix patch tool and is used
// to check that the output is understood by other tools, too.
package unixpatch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arka816/minigit/internal/seqs"
	"github.com/pkg/errors"
)

const noNewline = `\ No newline at end of file`

type hunk struct {
	oldPos, oldLen int
	newPos, newLen int
}

// Apply applies the unified diff to orig and returns the result. Hunk positions are 1-based line
// numbers of the first line covered by the hunk, also for empty ranges. Every context and deleted
// line must match orig exactly.
func Apply(orig, diff string) (string, error) {
	lines, _ := seqs.SplitAfterLines(orig)
	plines, _ := seqs.SplitAfterLines(diff)

	var out strings.Builder
	pos := 0
	for i := 0; i < len(plines); {
		var h hunk
		if _, err := fmt.Sscanf(plines[i], "@@ -%d,%d +%d,%d @@", &h.oldPos, &h.oldLen, &h.newPos, &h.newLen); err != nil {
			return "", errors.Errorf("line %d: invalid hunk header %q", i+1, strings.TrimSuffix(plines[i], "\n"))
		}
		start := h.oldPos - 1
		if start < pos || start > len(lines) {
			return "", errors.Errorf("line %d: hunk starts at line %d, outside of %d..%d", i+1, h.oldPos, pos+1, len(lines)+1)
		}
		for ; pos < start; pos++ {
			out.WriteString(lines[pos])
		}
		i++

		body, next, err := parseBody(plines, i)
		if err != nil {
			return "", err
		}
		oldLen, newLen := 0, 0
		for _, l := range body {
			if l.op != '+' {
				if pos >= len(lines) || lines[pos] != l.text {
					return "", errors.Errorf("line %d: %q doesn't match the original", l.lineno, strings.TrimSuffix(l.text, "\n"))
				}
				pos++
				oldLen++
			}
			if l.op != '-' {
				out.WriteString(l.text)
				newLen++
			}
		}
		if oldLen != h.oldLen || newLen != h.newLen {
			return "", errors.Errorf("line %d: hunk has %d old and %d new lines, header says %d and %d", i, oldLen, newLen, h.oldLen, h.newLen)
		}
		i = next
	}
	for ; pos < len(lines); pos++ {
		out.WriteString(lines[pos])
	}
	return out.String(), nil
}

type bodyLine struct {
	op     byte
	text   string
	lineno int
}

// parseBody parses the lines of a hunk starting at plines[i] and returns them together with the
// index of the next hunk header.
func parseBody(plines []string, i int) ([]bodyLine, int, error) {
	var body []bodyLine
	for ; i < len(plines) && !strings.HasPrefix(plines[i], "@@"); i++ {
		l := plines[i]
		switch {
		case strings.TrimSuffix(l, "\n") == noNewline:
			if len(body) == 0 {
				return nil, 0, errors.Errorf("line %d: missing newline marker without a line", i+1)
			}
			body[len(body)-1].text = strings.TrimSuffix(body[len(body)-1].text, "\n")
		case l == "" || !strings.ContainsRune(" -+", rune(l[0])):
			return nil, 0, errors.Errorf("line %d: invalid hunk line %q", i+1, strings.TrimSuffix(l, "\n"))
		default:
			body = append(body, bodyLine{op: l[0], text: l[1:], lineno: i + 1})
		}
	}
	return body, i, nil
}

// Available reports whether the patch tool is installed.
func Available() bool {
	_, err := exec.LookPath("patch")
	return err == nil
}

// Patch applies diff to orig with the unix patch tool.
func Patch(ctx context.Context, orig, diff string) (string, error) {
	// Using patch with an empty diff will not create an output file.
	if len(diff) == 0 {
		return orig, nil
	}

	dir, err := os.MkdirTemp("", "patch-*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(dir)

	patchfile := filepath.Join(dir, "patch")
	origfile := filepath.Join(dir, "orig")
	outfile := filepath.Join(dir, "out")

	if err := os.WriteFile(patchfile, []byte(diff), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write patch file")
	}
	if err := os.WriteFile(origfile, []byte(orig), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write orig file")
	}

	cmd := exec.CommandContext(ctx, "patch", "-u", "-i", patchfile, "-o", outfile, origfile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", errors.Wrapf(err, "patch %s\n%s", strings.Join(cmd.Args[1:], " "), out)
	}

	out, err := os.ReadFile(outfile)
	if err != nil {
		return "", errors.Wrap(err, "failed to read patched file")
	}
	return string(out), nil
}
