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
	"strings"

	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/internal/config"
)

// Inline renders a character script as a single text with the changes marked in place: deleted
// text as "[-...-]" and inserted text as "{+...+}". With [TerminalColors], changes are colored
// instead of marked.
//
// The following options are supported: [TerminalColors]
func Inline(script diff.Script[rune], opts ...diff.Option) string {
	cfg := config.FromOptions(opts, config.TerminalColors)

	var b strings.Builder
	for _, seg := range script {
		text := string(seg.Text())
		switch {
		case cfg.Colors != nil:
			code := cfg.Colors.Match
			switch seg.Op() {
			case diff.Delete:
				code = cfg.Colors.Delete
			case diff.Insert:
				code = cfg.Colors.Insert
			}
			if code == "" {
				b.WriteString(text)
				continue
			}
			b.WriteString(code)
			b.WriteString(text)
			b.WriteString(config.Reset)
		case seg.Op() == diff.Delete:
			b.WriteString("[-" + text + "-]")
		case seg.Op() == diff.Insert:
			b.WriteString("{+" + text + "+}")
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
