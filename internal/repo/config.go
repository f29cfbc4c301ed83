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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arka816/minigit/diff"
	"github.com/arka816/minigit/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config is the repository configuration stored in .minigit/config.yaml (or config.toml).
type Config struct {
	Log         LogConfig  `yaml:"log" toml:"log"`
	Diff        DiffConfig `yaml:"diff" toml:"diff"`
	Ignore      []string   `yaml:"ignore,omitempty" toml:"ignore,omitempty" validate:"dive,required,excludesall=/"`
	Concurrency int        `yaml:"concurrency" toml:"concurrency" validate:"gte=0"`
}

// LogConfig configures the log file of a repository.
type LogConfig struct {
	Level      string `yaml:"level" toml:"level" validate:"loglevel"`
	File       bool   `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" validate:"gte=0"`
}

// DiffConfig configures the diffs computed for a repository.
type DiffConfig struct {
	Solver          string `yaml:"solver,omitempty" toml:"solver,omitempty" validate:"solver"`
	Context         int    `yaml:"context" toml:"context" validate:"gte=0"`
	CostLimit       int    `yaml:"cost_limit,omitempty" toml:"cost_limit,omitempty" validate:"gte=0"`
	IndentHeuristic bool   `yaml:"indent_heuristic" toml:"indent_heuristic"`
	Cleanup         bool   `yaml:"cleanup" toml:"cleanup"`
}

// DefaultConfig returns the configuration written by [Init].
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			File:       true,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Diff: DiffConfig{
			Context:         3,
			IndentHeuristic: true,
		},
	}
}

// SolverOptions returns the diff options selecting the solver. They are accepted by every diff
// entry point.
func (c DiffConfig) SolverOptions() []diff.Option {
	var opts []diff.Option
	switch strings.ToLower(c.Solver) {
	case "myers":
		opts = append(opts, diff.Myers())
	case "hirschberg":
		opts = append(opts, diff.Hirschberg())
	}
	if c.CostLimit > 0 {
		opts = append(opts, diff.CostLimit(c.CostLimit))
	}
	return opts
}

// LineOptions returns the diff options for line diffs.
func (c DiffConfig) LineOptions() []diff.Option {
	opts := c.SolverOptions()
	if c.IndentHeuristic {
		opts = append(opts, diff.IndentHeuristic())
	}
	return opts
}

// UnifiedOptions returns the diff options for unified diffs.
func (c DiffConfig) UnifiedOptions() []diff.Option {
	return append(c.LineOptions(), diff.Context(c.Context))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return logging.ValidLevel(fl.Field().String())
	})
	_ = v.RegisterValidation("solver", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "myers", "hirschberg":
			return true
		default:
			return false
		}
	})
	return v
}

// Validate checks the configuration and reports every invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	result := &multierror.Error{ErrorFormat: joinErrors}
	for _, fe := range verrs {
		result = multierror.Append(result, errors.Errorf("%s: invalid value %q (%s)", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, result)
}

// LoadConfig reads and validates a configuration file. Files ending in .toml are decoded as TOML,
// everything else as YAML. Missing fields keep their default values.
func LoadConfig(name string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", name)
	}
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, name)
	}
	return cfg, nil
}

// WriteConfig writes cfg as YAML to name.
func WriteConfig(name string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return errors.Wrapf(os.WriteFile(name, data, 0o644), "failed to write config %s", name)
}

func joinErrors(errs []error) string {
	return strings.Join(lo.Map(errs, func(err error, _ int) string { return err.Error() }), "; ")
}
