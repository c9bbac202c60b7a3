// Copyright 2025 walteh LLC
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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_entry_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogEntryOperation(context.Background(), EntryOperation{
					Path:         "{{cookiecutter.name}}/main.go",
					Source:       "myapp/main.go",
					Kind:         "file",
					Status:       "created",
					IsCreated:    true,
					Replacements: 3,
				})
			},
			wantLogs: []string{
				"✓ {{cookiecutter.name}}/main.go       file   created    3 replacements",
			},
		},
		{
			name: "log_run_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:      "/src/myapp",
					Destination: "/tmp/out",
					Rules:       2,
				})
			},
			wantLogs: []string{
				"[templatizing /tmp/out]",
				"◆ /src/myapp • 2 rules",
			},
		},
		{
			name: "log_dry_run_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:      "/src/myapp",
					Destination: "/tmp/out",
					Rules:       1,
					DryRun:      true,
				})
				logger.EndRun(context.Background())
				logger.EndRun(context.Background())
			},
			wantLogs: []string{
				"[planning /tmp/out]",
				"◆ /src/myapp • 1 rules",
			},
		},
		{
			name: "log_warning",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("skipping %s, %s", "app.sock", "socket")
			},
			wantLogs: []string{
				"⚠️  skipping app.sock, socket",
			},
		},
		{
			name: "log_raw",
			op: func(t *testing.T, logger *Logger) {
				logger.Raw("raw text\n")
				logger.Raw("\n")
				logger.Raw("more\n")
			},
			wantLogs: []string{
				"raw text",
				"",
				"more",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("templatizing myapp")
			},
			wantLogs: []string{
				"cuttercookie • templatizing myapp",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, nil, zerolog.WarnLevel)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, nil, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback, "missing logger should fall back to a discarding one")
	assert.NotPanics(t, func() {
		fallback.Warning("nobody hears this")
	})
}

func TestLoggerUsesGivenZerolog(t *testing.T) {
	events := &bytes.Buffer{}
	zlog := zerolog.New(events)

	logger := New(io.Discard, &zlog, zerolog.WarnLevel)
	logger.Header("below the level")
	logger.Warning("kept")

	out := events.String()
	assert.NotContains(t, out, "below the level")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"message":"kept"`)
}

func TestEntryOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   EntryOperation
		want string
	}{
		{
			name: "created_file",
			op: EntryOperation{
				Path:         "{{cookiecutter.name}}/main.go",
				Kind:         "file",
				Status:       "created",
				IsCreated:    true,
				Replacements: 3,
			},
			want: "    ✓ {{cookiecutter.name}}/main.go       file   created    3 replacements",
		},
		{
			name: "skipped_file",
			op: EntryOperation{
				Path:      "cuttercookie.json",
				Kind:      "file",
				Status:    "skipped",
				IsSkipped: true,
			},
			want: "    - cuttercookie.json                   file   skipped   ",
		},
		{
			name: "planned_dir",
			op: EntryOperation{
				Path:      "{{cookiecutter.name}}",
				Kind:      "dir",
				Status:    "planned",
				IsPlanned: true,
			},
			want: "    • {{cookiecutter.name}}               dir    planned   ",
		},
		{
			name: "failed_file",
			op: EntryOperation{
				Path:   "broken.txt",
				Kind:   "file",
				Status: "failed",
			},
			want: "    ✗ broken.txt                          file   failed    ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Discard()
			assert.Equal(t, tt.want, logger.formatEntryOperation(tt.op))
		})
	}
}
