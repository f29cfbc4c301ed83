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

package diff_test

import (
	"fmt"

	"github.com/arka816/minigit/diff"
)

// Compare two strings rune by rune.
func ExampleChars() {
	script := diff.Chars("Hello, World", "Hello, 世界")
	for _, seg := range script {
		fmt.Printf("%v %q\n", seg.Op(), string(seg.Text()))
	}
	// Output:
	// Equal "Hello, "
	// Delete "World"
	// Insert "世界"
}

// Compare two texts line by line.
func ExampleLines() {
	script := diff.Lines("a\nb\nc", "a\nx\nc")
	for _, seg := range script {
		fmt.Printf("%v %q\n", seg.Op(), seg.Text())
	}
	// Output:
	// Equal ["a"]
	// Delete ["b"]
	// Insert ["x"]
	// Equal ["c"]
}

// A minimal script can be hard to read if the texts have little in common.
func ExampleScript_Cleanup() {
	script := diff.Chars("mouse", "sofas")
	fmt.Println(script)
	fmt.Println(script.Cleanup())
	// Output:
	// -m +s =o -u +fa =s -e
	// -mouse +sofas
}

func ExampleNewSegment() {
	_, err := diff.NewSegment(diff.Delete, []rune("old"), []rune("new"))
	fmt.Println(err)
	// Output:
	// invalid segment: Delete needs the old side only
}
