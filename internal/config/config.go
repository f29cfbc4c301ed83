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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// diff.Option.
package config

// Solver selects the algorithm used to compute an edit script.
type Solver int

const (
	// Use the solver that fits the entry point: Myers for characters and tokens, Hirschberg for
	// lines.
	SolverDefault Solver = iota

	// Myers' O(ND) edit graph search with a retained trace.
	SolverMyers

	// Hirschberg's linear space longest common subsequence.
	SolverHirschberg
)

// ColorConfig holds the ANSI escape sequences used by the renderers. An empty string disables
// coloring for that element.
type ColorConfig struct {
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
}

// DefaultColors is the color configuration used when colors are enabled without further options.
var DefaultColors = ColorConfig{
	HunkHeader: "\033[36m",
	Match:      "",
	Delete:     "\033[31m",
	Insert:     "\033[32m",
}

// Reset ends a colored section.
const Reset = "\033[0m"

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// Solver overrides the algorithm of the entry point.
	Solver Solver

	// CostLimit is the maximum edit distance the Myers solver explores before falling back to
	// Hirschberg. Zero means no limit.
	CostLimit int

	// If set, line diffs will apply the indent heuristic.
	IndentHeuristic bool

	// If set, renderers emit ANSI colors.
	Colors *ColorConfig
}

// Default is the default configuration.
var Default = Config{
	Context:         3,
	Solver:          SolverDefault,
	CostLimit:       0,
	IndentHeuristic: false,
	Colors:          nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by an entry point.
type Flag int

const (
	Context Flag = 1 << iota
	Solvers
	CostLimit
	IndentHeuristic
	TerminalColors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

// Pick resolves the solver of cfg against the default of an entry point.
func (cfg Config) Pick(fallback Solver) Solver {
	if cfg.Solver == SolverDefault {
		return fallback
	}
	return cfg.Solver
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "diff.Context"
	case Solvers:
		return "diff.Myers/diff.Hirschberg"
	case CostLimit:
		return "diff.CostLimit"
	case IndentHeuristic:
		return "diff.IndentHeuristic"
	case TerminalColors:
		return "textdiff.TerminalColors"
	default:
		panic("never reached")
	}
}
