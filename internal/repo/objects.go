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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arka816/minigit/internal/filetree"
	"github.com/pkg/errors"
)

// objects stores blobs by digest under objects/<2 hex>/<38 hex>.
type objects struct {
	dir string
}

func (o objects) path(d filetree.Digest) string {
	hex := d.String()
	return filepath.Join(o.dir, hex[:2], hex[2:])
}

func (o objects) has(d filetree.Digest) bool {
	info, err := os.Stat(o.path(d))
	return err == nil && info.Mode().IsRegular()
}

// put stores data under the digest d. Existing objects are left untouched.
func (o objects) put(d filetree.Digest, data []byte) error {
	if o.has(d) {
		return nil
	}
	name := o.path(d)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create object directory for %s", d)
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create object %s", d)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to write object %s", d)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to write object %s", d)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to store object %s", d)
	}
	return nil
}

// get returns the contents of the object d and checks its digest.
func (o objects) get(d filetree.Digest) ([]byte, error) {
	data, err := os.ReadFile(o.path(d))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read object %s", d)
	}
	if filetree.HashBytes(data) != d {
		return nil, errors.Wrapf(ErrCorruptObject, "object %s", d)
	}
	return data, nil
}

// each calls fn for every stored object. Files that don't look like objects are reported with a
// zero digest.
func (o objects) each(fn func(d filetree.Digest, name string) error) error {
	return filepath.WalkDir(o.dir, func(name string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(o.dir, name)
		if err != nil {
			return err
		}
		d, err := filetree.ParseDigest(filepath.Dir(rel) + filepath.Base(rel))
		if err != nil || o.path(d) != name {
			return fn(filetree.Digest{}, name)
		}
		return fn(d, name)
	})
}
