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

// Package filetree builds content addressed trees of a directory.
//
// Every file (blob) is identified by the SHA-1 digest of its contents. Every directory is
// identified by the SHA-1 digest over its children in name order, where each child contributes
// its name, its kind and its digest. Two trees with the same root digest have the same files with
// the same contents.
package filetree

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Kind is the kind of a node.
type Kind int

const (
	Blob Kind = iota // A regular file
	Dir              // A directory
)

func (k Kind) String() string {
	switch k {
	case Blob:
		return "blob"
	case Dir:
		return "dir"
	default:
		return "unknown"
	}
}

// Digest is the SHA-1 digest of a node.
type Digest [sha1.Size]byte

// String returns the digest in hexadecimal.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool { return d == Digest{} }

// ParseDigest parses a hexadecimal digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if hex.DecodedLen(len(s)) != len(d) {
		return d, errors.Errorf("invalid digest %q: wrong length", s)
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, errors.Wrapf(err, "invalid digest %q", s)
	}
	return d, nil
}

// HashBytes returns the digest of a blob with the given contents.
func HashBytes(data []byte) Digest { return sha1.Sum(data) }

// HashFile returns the digest and the size of the file at name.
func HashFile(name string) (Digest, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return Digest{}, 0, errors.Wrapf(err, "failed to open %s", name)
	}
	defer f.Close()

	h := sha1.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Digest{}, 0, errors.Wrapf(err, "failed to read %s", name)
	}
	var d Digest
	h.Sum(d[:0])
	return d, n, nil
}

// Node is a file or a directory in a tree.
type Node struct {
	Name     string  // Base name, empty for the root
	Path     string  // Slash separated path relative to the root, empty for the root
	Kind     Kind    // Blob or Dir
	Size     int64   // Size of a blob, or the total size of all blobs below a directory
	Digest   Digest  // Digest of the contents
	Children []*Node // Children of a directory, sorted by name
}

// Walk calls fn for n and all nodes below it, parents before their children. If fn returns
// [fs.SkipDir] for a directory, its children are skipped. Any other error stops the walk.
func (n *Node) Walk(fn func(*Node) error) error {
	err := n.walk(fn)
	if err == fs.SkipDir {
		return nil
	}
	return err
}

func (n *Node) walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.walk(fn); err != nil && err != fs.SkipDir {
			return err
		}
	}
	return nil
}

// Find returns the node at the slash separated path p, or nil if there's none.
func (n *Node) Find(p string) *Node {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return n
	}
	cur := n
	for name := range strings.SplitSeq(p, "/") {
		i, found := slices.BinarySearchFunc(cur.Children, name, func(c *Node, name string) int {
			return strings.Compare(c.Name, name)
		})
		if !found {
			return nil
		}
		cur = cur.Children[i]
	}
	return cur
}

// Files returns all blobs below n in walk order.
func (n *Node) Files() []*Node {
	var out []*Node
	_ = n.Walk(func(c *Node) error {
		if c.Kind == Blob {
			out = append(out, c)
		}
		return nil
	})
	return out
}

// seal computes the digest and the size of a directory from its children.
func (n *Node) seal() {
	slices.SortFunc(n.Children, func(a, b *Node) int { return strings.Compare(a.Name, b.Name) })
	h := sha1.New()
	n.Size = 0
	for _, c := range n.Children {
		h.Write([]byte(c.Name))
		h.Write([]byte{0, byte(c.Kind)})
		h.Write(c.Digest[:])
		n.Size += c.Size
	}
	h.Sum(n.Digest[:0])
}

// File describes a blob by its path.
type File struct {
	Path   string
	Digest Digest
	Size   int64
}

// FromFiles builds a tree from a list of blobs. Directories are implied by the paths. The
// resulting digests are the same as the ones computed by [Build] for a directory with these files
// and no empty directories.
func FromFiles(files []File) (*Node, error) {
	root := &Node{Kind: Dir}
	dirs := map[string]*Node{"": root}

	var dir func(p string) (*Node, error)
	dir = func(p string) (*Node, error) {
		if d, ok := dirs[p]; ok {
			if d.Kind != Dir {
				return nil, errors.Errorf("%s is a file and a directory", p)
			}
			return d, nil
		}
		parent, err := dir(parentOf(p))
		if err != nil {
			return nil, err
		}
		d := &Node{Name: path.Base(p), Path: p, Kind: Dir}
		parent.Children = append(parent.Children, d)
		dirs[p] = d
		return d, nil
	}

	for _, f := range files {
		p := strings.Trim(path.Clean("/"+f.Path), "/")
		if p == "" {
			return nil, errors.Errorf("invalid file path %q", f.Path)
		}
		if _, ok := dirs[p]; ok {
			return nil, errors.Errorf("duplicate path %s", p)
		}
		parent, err := dir(parentOf(p))
		if err != nil {
			return nil, err
		}
		blob := &Node{Name: path.Base(p), Path: p, Kind: Blob, Size: f.Size, Digest: f.Digest}
		parent.Children = append(parent.Children, blob)
		dirs[p] = blob
	}
	sealAll(root)
	return root, nil
}

func parentOf(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

// sealAll seals all directories below n, children first.
func sealAll(n *Node) {
	if n.Kind != Dir {
		return
	}
	for _, c := range n.Children {
		sealAll(c)
	}
	n.seal()
}

// Option configures [Build].
type Option func(*options)

type options struct {
	ignore      map[string]bool
	concurrency int
	logger      zerolog.Logger
}

// Ignore skips files and directories with one of the given base names.
func Ignore(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.ignore[name] = true
		}
	}
}

// Concurrency sets the number of files hashed in parallel. The default is GOMAXPROCS.
func Concurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// MetaDir is the name of the repository metadata directory, it's never part of a tree.
const MetaDir = ".minigit"

// Build hashes the directory root and returns its tree. Only regular files and directories are
// included, symbolic links and other special files are skipped.
func Build(ctx context.Context, root string, opts ...Option) (*Node, error) {
	o := options{
		ignore:      map[string]bool{MetaDir: true},
		concurrency: runtime.GOMAXPROCS(0),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", root)
	}

	tree := &Node{Kind: Dir}
	var blobs []*Node
	if err := scan(ctx, root, tree, &blobs, &o); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, blob := range blobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, size, err := HashFile(filepath.Join(root, filepath.FromSlash(blob.Path)))
			if err != nil {
				return err
			}
			blob.Digest, blob.Size = d, size
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sealAll(tree)
	o.logger.Debug().Str("root", root).Int("files", len(blobs)).Str("digest", tree.Digest.String()).Msg("Built file tree")
	return tree, nil
}

// scan adds the entries of the directory dir to the node parent and collects all blobs.
func scan(ctx context.Context, root string, parent *Node, blobs *[]*Node, o *options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(parent.Path)))
	if err != nil {
		return errors.Wrapf(err, "failed to read directory %s", filepath.Join(root, parent.Path))
	}
	for _, e := range entries {
		if o.ignore[e.Name()] {
			continue
		}
		p := path.Join(parent.Path, e.Name())
		switch {
		case e.Type().IsRegular():
			blob := &Node{Name: e.Name(), Path: p, Kind: Blob}
			parent.Children = append(parent.Children, blob)
			*blobs = append(*blobs, blob)
		case e.IsDir():
			d := &Node{Name: e.Name(), Path: p, Kind: Dir}
			if err := scan(ctx, root, d, blobs, o); err != nil {
				return err
			}
			parent.Children = append(parent.Children, d)
		default:
			o.logger.Debug().Str("path", p).Str("mode", e.Type().String()).Msg("Skipping special file")
		}
	}
	return nil
}

// Equal reports whether a and b have the same digest.
func Equal(a, b *Node) bool {
	return a != nil && b != nil && a.Kind == b.Kind && a.Digest == b.Digest
}
