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

package textdiff

import (
	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/diff/textdiff/color"
	"github.com/arka816/minigit/internal/config"
)

// TerminalColors enables ANSI colors in the output. Without further options, hunk headers are
// cyan, deletions red and insertions green. The colors can be changed with the options in the
// color package.
func TerminalColors(opts ...color.Option) diff.Option {
	return func(cfg *config.Config) config.Flag {
		cc := config.DefaultColors
		for _, opt := range opts {
			opt(&cc)
		}
		cfg.Colors = &cc
		return config.TerminalColors
	}
}
