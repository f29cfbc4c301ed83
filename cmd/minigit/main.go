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

// Command minigit snapshots a directory and diffs files against the latest snapshot.
//
// Usage:
//
//	minigit [--dir D] [--log-level L] <command>
//
// Commands:
//
//	init       create a repository in D
//	snapshot   record the work tree
//	status     list files changed since the latest snapshot
//	sync       take a snapshot if anything changed
//	verify     check the integrity of stored objects and snapshots
//	log        list snapshots, newest first
//	hash       print the digests of a directory tree
//	diff       diff a file against the latest snapshot, or two files
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(os.Stdout, os.Stderr).execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
