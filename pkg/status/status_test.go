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

package status

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cuttercookie/pkg/errkind"
)

func newTestManager(t *testing.T, opts ...Option) (*Manager, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "out")
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return New(root, &logger, opts...), root
}

func TestManagerWrites(t *testing.T) {
	tests := []struct {
		name        string
		op          func(ctx context.Context, m *Manager) error
		check       func(t *testing.T, root string)
		wantErr     bool
		errContains string
	}{
		{
			name: "create_root_then_dir",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				return m.CreateDir(ctx, "a")
			},
			check: func(t *testing.T, root string) {
				assert.DirExists(t, filepath.Join(root, "a"))
			},
		},
		{
			name: "create_dir_is_not_recursive",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				return m.CreateDir(ctx, "a/b")
			},
			wantErr:     true,
			errContains: "creating directory",
		},
		{
			name: "create_existing_dir_fails",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				if err := m.CreateDir(ctx, "a"); err != nil {
					return err
				}
				return m.CreateDir(ctx, "a")
			},
			wantErr:     true,
			errContains: "creating directory",
		},
		{
			name: "create_root_twice_fails",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				return m.CreateRoot(ctx)
			},
			wantErr:     true,
			errContains: "creating output root",
		},
		{
			name: "write_file_keeps_mode",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				return m.WriteFile(ctx, "run.sh", []byte("#!/bin/sh\n"), 0o750)
			},
			check: func(t *testing.T, root string) {
				p := filepath.Join(root, "run.sh")
				got, err := os.ReadFile(p)
				require.NoError(t, err)
				assert.Equal(t, "#!/bin/sh\n", string(got))

				info, err := os.Stat(p)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o750)&^currentUmask(), info.Mode().Perm())
			},
		},
		{
			name: "write_file_truncates",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				if err := m.WriteFile(ctx, "a.txt", []byte("a much longer body"), 0o644); err != nil {
					return err
				}
				return m.WriteFile(ctx, "a.txt", []byte("short"), 0o644)
			},
			check: func(t *testing.T, root string) {
				got, err := os.ReadFile(filepath.Join(root, "a.txt"))
				require.NoError(t, err)
				assert.Equal(t, "short", string(got))
			},
		},
		{
			name: "write_file_without_parent_fails",
			op: func(ctx context.Context, m *Manager) error {
				if err := m.CreateRoot(ctx); err != nil {
					return err
				}
				return m.WriteFile(ctx, "missing/a.txt", []byte("x"), 0o644)
			},
			wantErr:     true,
			errContains: "creating file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, root := newTestManager(t)
			err := tt.op(context.Background(), m)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errkind.ErrFileSystem)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, root)
			}
		})
	}
}

func TestManagerDryRun(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, WithDryRun(true))

	require.True(t, m.DryRun())
	require.NoError(t, m.CreateRoot(ctx))
	require.NoError(t, m.CreateDir(ctx, "a/b/c"))
	require.NoError(t, m.WriteFile(ctx, "a/b/c/d.txt", []byte("x"), 0o644))

	assert.NoDirExists(t, root)
	assert.True(t, m.Summary().DryRun)
}

func TestManagerTracking(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	m.TrackEntry(ctx, EntryInfo{Path: "{{cookiecutter.name}}", Source: "myapp", IsDir: true, Status: StatusCreated})
	file := NewEntryInfo("{{cookiecutter.name}}/main.go", "myapp/main.go", []byte("package main"), 0o644, 3)
	file.Status = StatusCreated
	m.TrackEntry(ctx, file)
	m.TrackEntry(ctx, EntryInfo{Path: "cuttercookie.json", Source: "cuttercookie.json", Status: StatusSkipped})

	entries := m.ListEntries(ctx)
	require.Len(t, entries, 3)
	assert.Equal(t, "cuttercookie.json", entries[0].Path)
	assert.Equal(t, "{{cookiecutter.name}}", entries[1].Path)

	info := entries[2]
	assert.Equal(t, "{{cookiecutter.name}}/main.go", info.Path)
	assert.Equal(t, "myapp/main.go", info.Source)
	assert.Equal(t, int64(12), info.Size)
	assert.Equal(t, calculateChecksum([]byte("package main")), info.Checksum)

	assert.Equal(t, Summary{Dirs: 1, Files: 1, Skipped: 1, Replacements: 3, Bytes: 12}, m.Summary())
	assert.Equal(t, "✅ Templatized 1 directories and 1 files, 3 replacements, 1 skipped", m.FormatSummary())
}

type plainFormatter struct{ DefaultFileFormatter }

func (plainFormatter) FormatSummary(s Summary) string {
	return fmt.Sprintf("%d files", s.Files)
}

func TestManagerFormatSummaryUsesFormatter(t *testing.T) {
	m := New(t.TempDir(), nil, WithFormatter(plainFormatter{}), WithDryRun(true))
	m.TrackEntry(context.Background(), EntryInfo{Path: "a.txt", Status: StatusPlanned})
	assert.Equal(t, "1 files", m.FormatSummary())

	assert.Equal(t, "✅ Would templatize 0 directories and 0 files, 0 replacements, 0 skipped",
		New(t.TempDir(), nil, WithDryRun(true)).FormatSummary())
}

func TestManagerConcurrentTracking(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.TrackEntry(ctx, EntryInfo{
				Path:         filepath.ToSlash(filepath.Join("dir", string(rune('a'+i%26)), string(rune('0'+i/26)))),
				Status:       StatusCreated,
				Replacements: 1,
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, m.Summary().Files)
	assert.Equal(t, 50, m.Summary().Replacements)
	assert.Len(t, m.ListEntries(ctx), 50)
}
