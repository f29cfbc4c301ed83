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

package diff

import "github.com/arka816/minigit/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Context sets the number of matches to include as a prefix and postfix for hunks rendered by
// the textdiff package. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// Myers selects Myers' O(ND) algorithm. It keeps a trace of the search and needs O((N+M)·D)
// memory where D is the edit distance, see [CostLimit] to bound it.
//
// This is the default for [Chars] and [Tokens].
func Myers() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Solver = config.SolverMyers
		return config.Solvers
	}
}

// Hirschberg selects Hirschberg's divide and conquer algorithm. It needs O(N·M) time but only
// linear memory.
//
// This is the default for [Lines].
func Hirschberg() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Solver = config.SolverHirschberg
		return config.Solvers
	}
}

// CostLimit bounds the edit distance Myers' algorithm explores while keeping its trace. If the
// inputs are further apart, the comparison continues with Hirschberg's algorithm. The result is
// minimal in both cases. Zero, the default, means no limit.
func CostLimit(d int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.CostLimit = max(0, d)
		return config.CostLimit
	}
}

// IndentHeuristic applies a heuristic to move groups of changed lines along runs of identical
// lines so that they line up with indentation boundaries. The edit distance is unchanged.
//
// The heuristic is only applied to line comparisons.
func IndentHeuristic() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IndentHeuristic = true
		return config.IndentHeuristic
	}
}
