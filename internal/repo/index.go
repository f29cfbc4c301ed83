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

package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/arka816/minigit/internal/filetree"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Snapshot is a recorded state of the work tree.
type Snapshot struct {
	ID      uuid.UUID
	Tree    filetree.Digest // Root digest of the tree rebuilt from the snapshot's files
	Created time.Time
	Files   int
	Bytes   int64
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	tree TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	files INTEGER NOT NULL,
	bytes INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
	path TEXT NOT NULL,
	digest TEXT NOT NULL,
	size INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, path)
);
`

// index is the sqlite database recording snapshots and their files.
type index struct {
	db     *sql.DB
	logger zerolog.Logger
}

func openIndex(ctx context.Context, name string, logger zerolog.Logger) (*index, error) {
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open index %s", name)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		logger.Error().Err(err).Str("path", name).Msg("Failed to initialize index schema")
		return nil, errors.Wrapf(err, "failed to initialize index %s", name)
	}
	return &index{db: db, logger: logger}, nil
}

func (x *index) close() error { return x.db.Close() }

func (x *index) insert(ctx context.Context, snap Snapshot, files []filetree.File) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, tree, created_at, files, bytes) VALUES (?, ?, ?, ?, ?)`,
		snap.ID.String(), snap.Tree.String(), snap.Created.UnixNano(), snap.Files, snap.Bytes)
	if err != nil {
		return errors.Wrapf(err, "failed to insert snapshot %s", snap.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (snapshot_id, path, digest, size) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare entry insert")
	}
	defer stmt.Close()
	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, snap.ID.String(), f.Path, f.Digest.String(), f.Size); err != nil {
			return errors.Wrapf(err, "failed to insert entry %s", f.Path)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit snapshot")
}

const snapshotColumns = `id, tree, created_at, files, bytes`

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var (
		snap    Snapshot
		id      string
		tree    string
		created int64
	)
	if err := row.Scan(&id, &tree, &created, &snap.Files, &snap.Bytes); err != nil {
		return snap, err
	}
	var err error
	if snap.ID, err = uuid.Parse(id); err != nil {
		return snap, errors.Wrapf(err, "invalid snapshot id %q", id)
	}
	if snap.Tree, err = filetree.ParseDigest(tree); err != nil {
		return snap, err
	}
	snap.Created = time.Unix(0, created).UTC()
	return snap, nil
}

func (x *index) latest(ctx context.Context) (*Snapshot, error) {
	row := x.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY seq DESC LIMIT 1`)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read latest snapshot")
	}
	return &snap, nil
}

func (x *index) snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := x.db.QueryContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read snapshot")
		}
		out = append(out, snap)
	}
	return out, errors.Wrap(rows.Err(), "failed to list snapshots")
}

func (x *index) entries(ctx context.Context, id uuid.UUID) ([]filetree.File, error) {
	rows, err := x.db.QueryContext(ctx,
		`SELECT path, digest, size FROM entries WHERE snapshot_id = ? ORDER BY path`, id.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list entries of snapshot %s", id)
	}
	defer rows.Close()

	var out []filetree.File
	for rows.Next() {
		var (
			f      filetree.File
			digest string
		)
		if err := rows.Scan(&f.Path, &digest, &f.Size); err != nil {
			return nil, errors.Wrap(err, "failed to read entry")
		}
		if f.Digest, err = filetree.ParseDigest(digest); err != nil {
			return nil, errors.Wrapf(err, "entry %s", f.Path)
		}
		out = append(out, f)
	}
	return out, errors.Wrapf(rows.Err(), "failed to list entries of snapshot %s", id)
}

// digests returns every blob digest referenced by any snapshot.
func (x *index) digests(ctx context.Context) ([]string, error) {
	rows, err := x.db.QueryContext(ctx, `SELECT DISTINCT digest FROM entries ORDER BY digest`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list digests")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, errors.Wrap(err, "failed to read digest")
		}
		out = append(out, d)
	}
	return out, errors.Wrap(rows.Err(), "failed to list digests")
}
