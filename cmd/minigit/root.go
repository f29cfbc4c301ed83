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
	"context"
	"io"

	"github.com/arka816/minigit/internal/logging"
	"github.com/arka816/minigit/internal/repo"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands.
type app struct {
	dir      string
	logLevel string

	stdout io.Writer
	stderr io.Writer

	cfg    repo.Config
	logger zerolog.Logger
	closer io.Closer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}
}

// execute runs the command line args and closes the log file, also when the command fails.
func (a *app) execute(ctx context.Context, args []string) (err error) {
	defer a.closeLog(&err)
	root := a.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "minigit",
		Short:             "Snapshot a directory and diff files against the latest snapshot",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "repository directory")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error), defaults to the repository configuration")

	root.AddCommand(
		a.initCmd(),
		a.snapshotCmd(),
		a.statusCmd(),
		a.syncCmd(),
		a.verifyCmd(),
		a.logCmd(),
		a.hashCmd(),
		a.diffCmd(),
	)
	return root
}

// setup reads the repository configuration, if there is a repository, and creates the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := repo.ReadConfig(a.dir)
	isRepo := err == nil
	if err != nil && !errors.Is(err, repo.ErrNotRepository) {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	lc := logging.Config{
		Level:   level,
		Console: a.stderr,
		NoColor: true,
	}
	if isRepo && cfg.Log.File {
		lc.File = repo.LogPath(a.dir)
		lc.MaxSizeMB = cfg.Log.MaxSizeMB
		lc.MaxBackups = cfg.Log.MaxBackups
	}
	logger, closer, err := logging.New(lc)
	if err != nil {
		return err
	}
	a.logger = logger.With().Str("command", cmd.Name()).Logger()
	a.closer = closer
	return nil
}

// closeLog closes the log file, if one was opened, and adds a failure to *err.
func (a *app) closeLog(err *error) {
	if a.closer == nil {
		return
	}
	cerr := errors.Wrap(a.closer.Close(), "failed to close log file")
	a.closer = nil
	appendErr(err, cerr)
}

// open opens the repository. The caller must release it with closeRepo.
func (a *app) open(cmd *cobra.Command) (*repo.Repo, error) {
	return repo.Open(cmd.Context(), a.dir, a.logger)
}

// closeRepo closes r and adds a failure to *err.
func closeRepo(r *repo.Repo, err *error) {
	appendErr(err, r.Close())
}

func appendErr(err *error, cerr error) {
	switch {
	case cerr == nil:
	case *err == nil:
		*err = cerr
	default:
		*err = multierror.Append(*err, cerr)
	}
}
