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

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
	assert.False(t, ValidLevel("loud"))
	assert.True(t, ValidLevel("trace"))
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Config{Level: "warn", Console: &buf, NoColor: true})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("path", "a.txt").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN visible path=a.txt")
}

func TestFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "logs", "minigit.log")
	var buf bytes.Buffer
	logger, closer, err := New(Config{Level: "debug", Console: &buf, NoColor: true, File: name, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug().Int("files", 3).Msg("Snapshot created")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Snapshot created", entry["message"])
	assert.Equal(t, float64(3), entry["files"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, buf.String(), "Snapshot created")
}

func TestDisabled(t *testing.T) {
	logger, closer, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestInvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "nope"})
	assert.Error(t, err)
}
