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

// Package repo implements a minimal snapshotting repository.
//
// A repository is a directory with a .minigit metadata directory. Snapshots record the digest and
// the contents of every file in the work tree, status and diff compare the work tree against the
// latest snapshot.
package repo

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/internal/filetree"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotRepository      = errors.New("not a minigit repository")
	ErrAlreadyInitialized = errors.New("repository already initialized")
	ErrNoSnapshot         = errors.New("no snapshot")
	ErrCorruptObject      = errors.New("corrupt object")
	ErrMissingObject      = errors.New("missing object")
	ErrCorruptSnapshot    = errors.New("corrupt snapshot")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

const (
	configYAML = "config.yaml"
	configTOML = "config.toml"
	indexName  = "index.db"
	objectsDir = "objects"
	logsDir    = "logs"
	logName    = "minigit.log"
)

// MetaDir returns the metadata directory of the repository at root.
func MetaDir(root string) string { return filepath.Join(root, filetree.MetaDir) }

// ConfigPath returns the configuration file of the repository at root. A config.toml takes
// precedence over config.yaml.
func ConfigPath(root string) string {
	if name := filepath.Join(MetaDir(root), configTOML); fileExists(name) {
		return name
	}
	return filepath.Join(MetaDir(root), configYAML)
}

// LogPath returns the log file of the repository at root.
func LogPath(root string) string { return filepath.Join(MetaDir(root), logsDir, logName) }

// ReadConfig reads the configuration of the repository at root.
func ReadConfig(root string) (Config, error) {
	if err := checkRepository(root); err != nil {
		return DefaultConfig(), err
	}
	return LoadConfig(ConfigPath(root))
}

func checkRepository(root string) error {
	info, err := os.Stat(MetaDir(root))
	if errors.Is(err, fs.ErrNotExist) || err == nil && !info.IsDir() {
		return errors.Wrapf(ErrNotRepository, "%s", root)
	}
	return errors.Wrapf(err, "failed to stat %s", MetaDir(root))
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// Repo is an open repository.
type Repo struct {
	root    string
	cfg     Config
	index   *index
	objects objects
	logger  zerolog.Logger
}

// Init creates a repository in the directory root and opens it.
func Init(ctx context.Context, root string, logger zerolog.Logger) (*Repo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid repository path %s", root)
	}
	meta := MetaDir(root)
	if fileExists(meta) {
		return nil, errors.Wrapf(ErrAlreadyInitialized, "%s", root)
	}
	for _, dir := range []string{objectsDir, logsDir} {
		if err := os.MkdirAll(filepath.Join(meta, dir), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", filepath.Join(meta, dir))
		}
	}
	if err := WriteConfig(filepath.Join(meta, configYAML), DefaultConfig()); err != nil {
		return nil, err
	}
	logger.Info().Str("root", root).Msg("Initialized repository")
	return Open(ctx, root, logger)
}

// Open opens the repository in the directory root.
func Open(ctx context.Context, root string, logger zerolog.Logger) (*Repo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid repository path %s", root)
	}
	cfg, err := ReadConfig(root)
	if err != nil {
		return nil, err
	}
	idx, err := openIndex(ctx, filepath.Join(MetaDir(root), indexName), logger)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", root).Msg("Opened repository")
	return &Repo{
		root:    root,
		cfg:     cfg,
		index:   idx,
		objects: objects{dir: filepath.Join(MetaDir(root), objectsDir)},
		logger:  logger,
	}, nil
}

// Root returns the absolute path of the work tree.
func (r *Repo) Root() string { return r.root }

// Config returns the repository configuration.
func (r *Repo) Config() Config { return r.cfg }

// Close releases the index.
func (r *Repo) Close() error {
	return errors.Wrap(r.index.close(), "failed to close index")
}

// Tree hashes the work tree.
func (r *Repo) Tree(ctx context.Context) (*filetree.Node, error) {
	return filetree.Build(ctx, r.root,
		filetree.Ignore(r.cfg.Ignore...),
		filetree.Concurrency(r.cfg.Concurrency),
		filetree.WithLogger(r.logger),
	)
}

// Snapshot records the current work tree and stores the contents of every file.
func (r *Repo) Snapshot(ctx context.Context) (*Snapshot, error) {
	tree, err := r.Tree(ctx)
	if err != nil {
		return nil, err
	}
	blobs := tree.Files()

	limit := r.cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, blob := range blobs {
		g.Go(func() error { return r.store(gctx, blob) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := lo.Map(blobs, func(n *filetree.Node, _ int) filetree.File {
		return filetree.File{Path: n.Path, Digest: n.Digest, Size: n.Size}
	})
	recorded, err := filetree.FromFiles(files)
	if err != nil {
		return nil, err
	}
	snap := Snapshot{
		ID:      uuid.New(),
		Tree:    recorded.Digest,
		Created: time.Now().UTC(),
		Files:   len(files),
		Bytes:   recorded.Size,
	}
	if err := r.index.insert(ctx, snap, files); err != nil {
		return nil, err
	}
	r.logger.Info().Str("id", snap.ID.String()).Int("files", snap.Files).Int64("bytes", snap.Bytes).Msg("Created snapshot")
	return &snap, nil
}

// store copies the contents of a work tree file into the object store.
func (r *Repo) store(ctx context.Context, blob *filetree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(r.abs(blob.Path))
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", blob.Path)
	}
	if filetree.HashBytes(data) != blob.Digest {
		return errors.Errorf("%s changed during the snapshot", blob.Path)
	}
	return r.objects.put(blob.Digest, data)
}

func (r *Repo) abs(p string) string { return filepath.Join(r.root, filepath.FromSlash(p)) }

// Latest returns the most recent snapshot or [ErrNoSnapshot].
func (r *Repo) Latest(ctx context.Context) (*Snapshot, error) { return r.index.latest(ctx) }

// Snapshots returns all snapshots, oldest first.
func (r *Repo) Snapshots(ctx context.Context) ([]Snapshot, error) { return r.index.snapshots(ctx) }

// Entries returns the files recorded by a snapshot, sorted by path.
func (r *Repo) Entries(ctx context.Context, id uuid.UUID) ([]filetree.File, error) {
	return r.index.entries(ctx, id)
}

// Status is the difference between the latest snapshot and the work tree.
type Status struct {
	Base    *Snapshot // nil if there's no snapshot yet
	Tree    *filetree.Node
	Changes []filetree.Change
}

// Clean reports whether the work tree matches the latest snapshot.
func (s *Status) Clean() bool { return len(s.Changes) == 0 }

// Filter returns the changes of the given kind.
func (s *Status) Filter(kind filetree.ChangeKind) []filetree.Change {
	return lo.Filter(s.Changes, func(c filetree.Change, _ int) bool { return c.Kind == kind })
}

// Status compares the work tree against the latest snapshot.
func (r *Repo) Status(ctx context.Context) (*Status, error) {
	base, old, err := r.latestTree(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := r.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{Base: base, Tree: tree, Changes: filetree.Compare(old, tree)}, nil
}

// latestTree returns the latest snapshot and its tree, both nil if there's no snapshot.
func (r *Repo) latestTree(ctx context.Context) (*Snapshot, *filetree.Node, error) {
	base, err := r.index.latest(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	files, err := r.index.entries(ctx, base.ID)
	if err != nil {
		return nil, nil, err
	}
	tree, err := filetree.FromFiles(files)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrCorruptSnapshot, "%s: %v", base.ID, err)
	}
	return base, tree, nil
}

// Sync takes a snapshot if the work tree differs from the latest snapshot or if there's no
// snapshot yet. The returned snapshot is nil if nothing changed.
func (r *Repo) Sync(ctx context.Context) (*Snapshot, *Status, error) {
	st, err := r.Status(ctx)
	if err != nil {
		return nil, nil, err
	}
	if st.Base != nil && st.Clean() {
		r.logger.Info().Str("id", st.Base.ID.String()).Msg("Work tree is clean")
		return nil, st, nil
	}
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, st, err
	}
	return snap, st, nil
}

// Contents returns the contents of the file p in the latest snapshot and in the work tree. A file
// missing on one side has empty contents there.
func (r *Repo) Contents(ctx context.Context, p string) (before, after string, err error) {
	p, err = r.rel(p)
	if err != nil {
		return "", "", err
	}

	_, tree, err := r.latestTree(ctx)
	if err != nil {
		return "", "", err
	}
	inSnapshot := false
	if tree != nil {
		if n := tree.Find(p); n != nil && n.Kind == filetree.Blob {
			data, err := r.objects.get(n.Digest)
			if err != nil {
				return "", "", err
			}
			before, inSnapshot = string(data), true
		}
	}

	data, err := os.ReadFile(r.abs(p))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !inSnapshot {
			return "", "", errors.Wrapf(err, "%s is neither in the snapshot nor in the work tree", p)
		}
	case err != nil:
		return "", "", errors.Wrapf(err, "failed to read %s", p)
	default:
		after = string(data)
	}
	return before, after, nil
}

// rel turns p into a slash separated path relative to the root. Relative paths are interpreted
// relative to the root.
func (r *Repo) rel(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return "", errors.Wrapf(err, "%s is outside of the repository", p)
		}
		p = rel
	}
	p = path.Clean(filepath.ToSlash(p))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", errors.Errorf("%s is outside of the repository", p)
	}
	if p == filetree.MetaDir || strings.HasPrefix(p, filetree.MetaDir+"/") {
		return "", errors.Errorf("%s is inside the metadata directory", p)
	}
	return p, nil
}

// Diff returns the line diff of the file p between the latest snapshot and the work tree.
func (r *Repo) Diff(ctx context.Context, p string) (diff.Script[string], error) {
	before, after, err := r.Contents(ctx, p)
	if err != nil {
		return nil, err
	}
	script := diff.Lines(before, after, r.cfg.Diff.LineOptions()...)
	if r.cfg.Diff.Cleanup {
		script = script.Cleanup()
	}
	return script, nil
}

// Verify checks the integrity of the repository: every stored object must match its digest,
// every file of every snapshot must be stored, and the files of every snapshot must rebuild the
// recorded tree digest. All failures are reported.
func (r *Repo) Verify(ctx context.Context) error {
	var result *multierror.Error

	err := r.objects.each(func(d filetree.Digest, name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsZero() {
			result = multierror.Append(result, errors.Wrapf(ErrCorruptObject, "unexpected file %s", name))
			return nil
		}
		if _, err := r.objects.get(d); err != nil {
			result = multierror.Append(result, err)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to walk objects")
	}

	digests, err := r.index.digests(ctx)
	if err != nil {
		return err
	}
	for _, s := range digests {
		d, err := filetree.ParseDigest(s)
		if err != nil {
			result = multierror.Append(result, errors.Wrap(ErrCorruptSnapshot, err.Error()))
			continue
		}
		if !r.objects.has(d) {
			result = multierror.Append(result, errors.Wrapf(ErrMissingObject, "object %s", d))
		}
	}

	snaps, err := r.index.snapshots(ctx)
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		files, err := r.index.entries(ctx, snap.ID)
		if err != nil {
			return err
		}
		tree, err := filetree.FromFiles(files)
		switch {
		case err != nil:
			result = multierror.Append(result, errors.Wrapf(ErrCorruptSnapshot, "%s: %v", snap.ID, err))
		case tree.Digest != snap.Tree:
			result = multierror.Append(result, errors.Wrapf(ErrCorruptSnapshot, "%s: tree digest %s, recorded %s", snap.ID, tree.Digest, snap.Tree))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		r.logger.Warn().Int("problems", len(result.Errors)).Msg("Repository verification failed")
		return err
	}
	r.logger.Info().Int("snapshots", len(snaps)).Int("objects", len(digests)).Msg("Repository verified")
	return nil
}
