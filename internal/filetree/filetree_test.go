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

package filetree

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the files in dir. A name ending in a slash creates an empty directory.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":               "hello\n",
		"sub/b.txt":           "world\n",
		".minigit/objects/x":  "ignored",
		"node_modules/dep.js": "ignored",
	})

	tree, err := Build(context.Background(), dir, Ignore("node_modules"), Concurrency(2))
	require.NoError(t, err)

	assert.Equal(t, "446fae36cdade95251a4fcd0fd1aedd72b190cfc", tree.Digest.String())
	assert.Equal(t, Dir, tree.Kind)
	assert.Equal(t, int64(12), tree.Size)

	files := tree.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].Path)
	assert.Equal(t, "f572d396fae9206628714fb2ce00f72e94f2258f", files[0].Digest.String())
	assert.Equal(t, "sub/b.txt", files[1].Path)
	assert.Equal(t, "9591818c07e900db7e1e0bc4b884c945e6a61b24", files[1].Digest.String())

	sub := tree.Find("sub")
	require.NotNil(t, sub)
	assert.Equal(t, "9ddf67301ae69b6234d2e5ec5176046ac497203b", sub.Digest.String())
	assert.Nil(t, tree.Find("node_modules"))
	assert.Nil(t, tree.Find(".minigit"))
}

func TestBuildEmpty(t *testing.T) {
	tree, err := Build(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", tree.Digest.String())
	assert.Empty(t, tree.Files())
}

func TestBuildErrors(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file": "x"})

	_, err := Build(context.Background(), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Build(context.Background(), filepath.Join(dir, "file"))
	assert.ErrorContains(t, err, "is not a directory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenameChangesDigest(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeTree(t, a, map[string]string{"x.txt": "same"})
	writeTree(t, b, map[string]string{"y.txt": "same"})

	ta, err := Build(context.Background(), a)
	require.NoError(t, err)
	tb, err := Build(context.Background(), b)
	require.NoError(t, err)
	assert.NotEqual(t, ta.Digest, tb.Digest)
	assert.False(t, Equal(ta, tb))
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":       "hello\n",
		"sub/b.txt":   "world\n",
		"sub/c/d.txt": "deep\n",
	})
	built, err := Build(context.Background(), dir)
	require.NoError(t, err)

	var files []File
	for _, f := range built.Files() {
		files = append(files, File{Path: f.Path, Digest: f.Digest, Size: f.Size})
	}
	// Order of the input must not matter.
	files[0], files[2] = files[2], files[0]

	tree, err := FromFiles(files)
	require.NoError(t, err)
	assert.Equal(t, built.Digest, tree.Digest)
	assert.Equal(t, built.Size, tree.Size)
	assert.Empty(t, Compare(built, tree))
}

func TestFromFilesErrors(t *testing.T) {
	_, err := FromFiles([]File{{Path: "a"}, {Path: "a"}})
	assert.ErrorContains(t, err, "duplicate path a")

	_, err = FromFiles([]File{{Path: "a"}, {Path: "a/b"}})
	assert.ErrorContains(t, err, "a is a file and a directory")

	_, err = FromFiles([]File{{Path: "/"}})
	assert.ErrorContains(t, err, "invalid file path")
}

func TestWalkSkipDir(t *testing.T) {
	tree, err := FromFiles([]File{{Path: "a/x"}, {Path: "b/y"}, {Path: "c"}})
	require.NoError(t, err)

	var visited []string
	err = tree.Walk(func(n *Node) error {
		visited = append(visited, n.Path)
		if n.Path == "a" {
			return fs.SkipDir
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "a", "b", "b/y", "c"}, visited)
}

func TestParseDigest(t *testing.T) {
	d, err := ParseDigest("f572d396fae9206628714fb2ce00f72e94f2258f")
	require.NoError(t, err)
	assert.Equal(t, HashBytes([]byte("hello\n")), d)
	assert.False(t, d.IsZero())

	_, err = ParseDigest("f572")
	assert.Error(t, err)
	_, err = ParseDigest("zz72d396fae9206628714fb2ce00f72e94f2258f")
	assert.Error(t, err)
}
