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
	"fmt"
	"slices"
	"strings"

	"github.com/arka816/minigit/internal/filetree"
	"github.com/arka816/minigit/internal/repo"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			r, err := repo.Init(cmd.Context(), a.dir, a.logger)
			if err != nil {
				return err
			}
			defer closeRepo(r, &err)
			fmt.Fprintf(a.stdout, "Initialized empty repository in %s\n", repo.MetaDir(r.Root()))
			return nil
		},
	}
}

func (a *app) snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Record the work tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			r, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(r, &err)

			snap, err := r.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			a.printSnapshot(snap)
			return nil
		},
	}
}

func (a *app) printSnapshot(snap *repo.Snapshot) {
	fmt.Fprintf(a.stdout, "snapshot %s (%d files, %s)\n", snap.ID, snap.Files, humanize.Bytes(uint64(snap.Bytes)))
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List files changed since the latest snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			r, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(r, &err)

			st, err := r.Status(cmd.Context())
			if err != nil {
				return err
			}
			a.printStatus(st)
			return nil
		},
	}
}

func (a *app) printStatus(st *repo.Status) {
	if st.Base == nil {
		fmt.Fprintln(a.stdout, "no snapshot yet")
	} else {
		fmt.Fprintf(a.stdout, "on snapshot %s, taken %s\n", st.Base.ID, humanize.Time(st.Base.Created))
	}
	if st.Clean() {
		fmt.Fprintln(a.stdout, "nothing changed")
		return
	}
	for _, c := range st.Changes {
		fmt.Fprintf(a.stdout, "  %-9s %s\n", c.Kind.String()+":", c.Path)
	}
	fmt.Fprintln(a.stdout, summarize(st.Changes))
}

// summarize returns a line like "1 added, 2 modified".
func summarize(changes []filetree.Change) string {
	counts := filetree.Count(changes)
	kinds := []filetree.ChangeKind{filetree.Added, filetree.Modified, filetree.Removed}
	parts := lo.FilterMap(kinds, func(k filetree.ChangeKind, _ int) (string, bool) {
		return fmt.Sprintf("%d %s", counts[k], k), counts[k] > 0
	})
	return strings.Join(parts, ", ")
}

func (a *app) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Take a snapshot if the work tree changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			r, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(r, &err)

			snap, st, err := r.Sync(cmd.Context())
			if err != nil {
				return err
			}
			if snap == nil {
				fmt.Fprintln(a.stdout, "nothing changed")
				return nil
			}
			if len(st.Changes) > 0 {
				fmt.Fprintln(a.stdout, summarize(st.Changes))
			}
			a.printSnapshot(snap)
			return nil
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check stored objects and snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			r, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(r, &err)

			if err := r.Verify(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "ok")
			return nil
		},
	}
}

func (a *app) logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			r, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(r, &err)

			snaps, err := r.Snapshots(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				return repo.ErrNoSnapshot
			}
			slices.Reverse(snaps)
			for _, snap := range snaps {
				fmt.Fprintf(a.stdout, "%s  %s  %d files  %s  %s\n",
					snap.ID, snap.Created.Local().Format("2006-01-02 15:04:05"), snap.Files,
					humanize.Bytes(uint64(snap.Bytes)), snap.Tree.String()[:12])
			}
			return nil
		},
	}
}

func (a *app) hashCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "hash [path]",
		Short: "Print the digest of a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.dir
			if len(args) == 1 {
				dir = args[0]
			}
			tree, err := filetree.Build(cmd.Context(), dir,
				filetree.Ignore(a.cfg.Ignore...),
				filetree.Concurrency(a.cfg.Concurrency),
				filetree.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if verbose {
				for _, f := range tree.Files() {
					fmt.Fprintf(a.stdout, "%s %8s %s\n", f.Digest, humanize.IBytes(uint64(f.Size)), f.Path)
				}
			}
			fmt.Fprintf(a.stdout, "%s %8s .\n", tree.Digest, humanize.IBytes(uint64(tree.Size)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the digest of every file")
	return cmd
}
