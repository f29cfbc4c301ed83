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

package config_test

import (
	"testing"

	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/diff/textdiff"
	"github.com/arka816/minigit/diff/textdiff/color"
	"github.com/arka816/minigit/internal/config"
	"github.com/google/go-cmp/cmp"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "context",
			opts: []config.Option{
				diff.Context(5),
			},
			want: config.Config{
				Context: 5,
			},
		},
		{
			name: "negative-context",
			opts: []config.Option{
				diff.Context(-1),
			},
			want: config.Config{
				Context: 0,
			},
		},
		{
			name: "solver",
			opts: []config.Option{
				diff.Hirschberg(),
			},
			want: config.Config{
				Context: config.Default.Context,
				Solver:  config.SolverHirschberg,
			},
		},
		{
			name: "solver-override",
			opts: []config.Option{
				diff.Hirschberg(),
				diff.CostLimit(8),
				diff.Myers(),
			},
			want: config.Config{
				Context:   config.Default.Context,
				Solver:    config.SolverMyers,
				CostLimit: 8,
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				diff.Context(1),
				diff.Myers(),
				diff.CostLimit(100),
				diff.IndentHeuristic(),
				textdiff.TerminalColors(color.Deletes(1, 31)),
			},
			want: config.Config{
				Context:         1,
				Solver:          config.SolverMyers,
				CostLimit:       100,
				IndentHeuristic: true,
				Colors: &config.ColorConfig{
					HunkHeader: config.DefaultColors.HunkHeader,
					Match:      config.DefaultColors.Match,
					Delete:     "\033[1;31m",
					Insert:     config.DefaultColors.Insert,
				},
			},
		},
	}

	all := config.Context | config.Solvers | config.CostLimit | config.IndentHeuristic | config.TerminalColors
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, all)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("FromOptions(...) did not panic")
		}
		if got, want := r, "Option diff.IndentHeuristic not allowed here"; got != want {
			t.Errorf("FromOptions(...) panicked with %q, want %q", got, want)
		}
	}()
	config.FromOptions([]config.Option{diff.IndentHeuristic()}, config.Context)
}

func TestPick(t *testing.T) {
	cfg := config.Default
	if got := cfg.Pick(config.SolverHirschberg); got != config.SolverHirschberg {
		t.Errorf("Pick(Hirschberg) on default = %v, want Hirschberg", got)
	}
	cfg.Solver = config.SolverMyers
	if got := cfg.Pick(config.SolverHirschberg); got != config.SolverMyers {
		t.Errorf("Pick(Hirschberg) with Myers set = %v, want Myers", got)
	}
}
