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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/diff/textdiff"
	"github.com/arka816/minigit/internal/repo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type diffFlags struct {
	chars   bool
	cleanup bool
	color   bool
	format  string
	context int
}

func (a *app) diffCmd() *cobra.Command {
	var f diffFlags
	cmd := &cobra.Command{
		Use:   "diff <old> [new]",
		Short: "Diff a file against the latest snapshot, or two files",
		Long: `With one argument, diff the file in the latest snapshot against the work tree.
With two arguments, diff two files; no repository is needed.

Line diffs default to the unified format, character diffs (--chars) to the inline format.
--cleanup applies semantic cleanup to inline and table output.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var before, after string
			if len(args) == 2 {
				if before, err = readFile(args[0]); err != nil {
					return err
				}
				if after, err = readFile(args[1]); err != nil {
					return err
				}
			} else {
				r, err := a.open(cmd)
				if err != nil {
					return err
				}
				before, after, err = r.Contents(cmd.Context(), args[0])
				var cerr error
				closeRepo(r, &cerr)
				if err != nil {
					return err
				}
				if cerr != nil {
					return cerr
				}
			}

			dc := a.cfg.Diff
			if cmd.Flags().Changed("context") {
				dc.Context = f.context
			}
			if f.cleanup {
				dc.Cleanup = true
			}
			out, err := render(before, after, dc, f)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&f.chars, "chars", false, "diff characters instead of lines")
	cmd.Flags().BoolVar(&f.cleanup, "cleanup", false, "apply semantic cleanup")
	cmd.Flags().BoolVar(&f.color, "color", false, "color the output with ANSI escape codes")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: unified, inline or table")
	cmd.Flags().IntVarP(&f.context, "context", "U", 3, "lines of context in unified output")
	return cmd
}

func readFile(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	return string(data), nil
}

// render formats the diff between before and after.
func render(before, after string, dc repo.DiffConfig, f diffFlags) (string, error) {
	var colors []diff.Option
	if f.color {
		colors = append(colors, textdiff.TerminalColors())
	}

	format := f.format
	if format == "" {
		format = "unified"
		if f.chars {
			format = "inline"
		}
	}

	if f.chars {
		script := diff.Chars(before, after, dc.SolverOptions()...)
		if dc.Cleanup {
			script = script.Cleanup()
		}
		switch format {
		case "inline":
			return withNewline(textdiff.Inline(script, colors...)), nil
		case "table":
			return withNewline(textdiff.Table(script, func(r []rune) string { return string(r) })), nil
		}
		return "", errors.Errorf("format %q is not supported for character diffs", format)
	}

	switch format {
	case "unified":
		return textdiff.Unified(before, after, append(dc.UnifiedOptions(), colors...)...), nil
	case "table":
		script := diff.Lines(before, after, dc.LineOptions()...)
		if dc.Cleanup {
			script = script.Cleanup()
		}
		return withNewline(textdiff.Table(script, func(lines []string) string { return strings.Join(lines, "\n") })), nil
	case "inline":
		return "", errors.New("the inline format needs --chars")
	}
	return "", errors.Errorf("unknown format %q", format)
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
