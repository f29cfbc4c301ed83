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
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arka816/minigit/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes minigit with args in the repository directory dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).execute(context.Background(), append([]string{"--dir", dir, "--log-level", "warn"}, args...))
	return stdout.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "minigit %v", args)
	return out
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

var snapshotLine = regexp.MustCompile(`^snapshot [0-9a-f-]{36} \(\d+ files, \d+ B\)\n$`)

func TestWorkflow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a\nb\nc\n")
	writeFile(t, dir, "src/main.go", "package main\n")

	out := mustRun(t, dir, "init")
	assert.Contains(t, out, "Initialized empty repository in ")

	out = mustRun(t, dir, "status")
	assert.Equal(t, "no snapshot yet\n  added:    a.txt\n  added:    src/main.go\n2 added\n", out)

	out = mustRun(t, dir, "snapshot")
	assert.Regexp(t, snapshotLine, out)

	out = mustRun(t, dir, "status")
	assert.Contains(t, out, "nothing changed")

	writeFile(t, dir, "a.txt", "a\nB\nc\n")
	writeFile(t, dir, "new.txt", "new\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "src", "main.go")))

	out = mustRun(t, dir, "status")
	assert.Contains(t, out, "  modified: a.txt\n")
	assert.Contains(t, out, "  added:    new.txt\n")
	assert.Contains(t, out, "  removed:  src/main.go\n")
	assert.Contains(t, out, "1 added, 1 modified, 1 removed\n")

	out = mustRun(t, dir, "diff", "a.txt")
	assert.Equal(t, "@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n", out)

	out = mustRun(t, dir, "diff", "--context", "0", "a.txt")
	assert.Equal(t, "@@ -2,1 +2,1 @@\n-b\n+B\n", out)

	out = mustRun(t, dir, "sync")
	assert.Contains(t, out, "1 added, 1 modified, 1 removed\n")
	assert.Contains(t, out, "snapshot ")

	out = mustRun(t, dir, "sync")
	assert.Equal(t, "nothing changed\n", out)

	out = mustRun(t, dir, "log")
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), 2)

	out = mustRun(t, dir, "--log-level", "info", "verify")
	assert.Equal(t, "ok\n", out)
	assert.FileExists(t, repo.LogPath(dir))
}

func TestDiffFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old.txt", "The mice ran\n")
	writeFile(t, dir, "new.txt", "The rust ran\n")
	oldPath, newPath := filepath.Join(dir, "old.txt"), filepath.Join(dir, "new.txt")

	out := mustRun(t, dir, "diff", oldPath, newPath)
	assert.Equal(t, "@@ -1,1 +1,1 @@\n-The mice ran\n+The rust ran\n", out)

	out = mustRun(t, dir, "diff", "--chars", oldPath, newPath)
	assert.Equal(t, "The [-mice-]{+rust+} ran\n", out)

	out = mustRun(t, dir, "diff", "--chars", "--format", "table", oldPath, newPath)
	assert.Contains(t, out, "Delete")
	assert.Contains(t, out, "Insert")

	out = mustRun(t, dir, "diff", "--color", oldPath, newPath)
	assert.Contains(t, out, "\x1b[31m-The mice ran\x1b[0m\n")

	_, err := run(t, dir, "diff", "--format", "inline", oldPath, newPath)
	assert.ErrorContains(t, err, "needs --chars")

	_, err = run(t, dir, "diff", "--chars", "--format", "unified", oldPath, newPath)
	assert.ErrorContains(t, err, "not supported for character diffs")

	_, err = run(t, dir, "diff", "--format", "side-by-side", oldPath, newPath)
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, dir, "diff", filepath.Join(dir, "missing.txt"), newPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello\n")
	writeFile(t, dir, "sub/b.txt", "world\n")

	out := mustRun(t, dir, "hash", "-v")
	assert.Equal(t, ""+
		"f572d396fae9206628714fb2ce00f72e94f2258f      6 B a.txt\n"+
		"9591818c07e900db7e1e0bc4b884c945e6a61b24      6 B sub/b.txt\n"+
		"446fae36cdade95251a4fcd0fd1aedd72b190cfc     12 B .\n", out)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "status")
	assert.ErrorIs(t, err, repo.ErrNotRepository)

	mustRun(t, dir, "init")
	_, err = run(t, dir, "init")
	assert.ErrorIs(t, err, repo.ErrAlreadyInitialized)

	_, err = run(t, dir, "log")
	assert.ErrorIs(t, err, repo.ErrNoSnapshot)

	_, err = run(t, dir, "status", "extra")
	assert.Error(t, err)
}

func TestLogFileClosedOnError(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	err := a.execute(context.Background(), []string{"--dir", dir, "--log-level", "info", "diff", "missing.txt"})
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, a.closer, "log file left open after a failing command")
}
