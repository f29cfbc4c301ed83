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

// Package color configures the ANSI colors used by [textdiff.TerminalColors].
//
// Every option takes SGR parameters, for example Deletes(1, 31) renders deletions in bold red.
// Calling an option without parameters disables coloring for that element.
//
// [textdiff.TerminalColors]: https://pkg.go.dev/github.com/arka816/minigit/diff/textdiff#TerminalColors
package color

import (
	"strconv"
	"strings"

	"github.com/arka816/minigit/internal/config"
)

// An Option configures the colors used by textdiff.TerminalColors.
type Option func(*config.ColorConfig)

// HunkHeaders colors hunk headers, the "@@ ... @@" part of a unified diff.
func HunkHeaders(params ...int) Option {
	code := sgr(params)
	return func(cc *config.ColorConfig) {
		cc.HunkHeader = code
	}
}

// Matches colors unchanged text.
func Matches(params ...int) Option {
	code := sgr(params)
	return func(cc *config.ColorConfig) {
		cc.Match = code
	}
}

// Deletes colors deleted text.
func Deletes(params ...int) Option {
	code := sgr(params)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors inserted text.
func Inserts(params ...int) Option {
	code := sgr(params)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

// sgr formats a "select graphic rendition" escape sequence.
func sgr(params []int) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, v := range params {
		parts[i] = strconv.Itoa(v)
	}
	return "\033[" + strings.Join(parts, ";") + "m"
}
