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
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/cuttercookie/pkg/errkind"
	"gitlab.com/tozd/go/errors"
)

// 📊 EntryStatus represents what happened to one output entry
type EntryStatus int

const (
	StatusUnknown EntryStatus = iota
	StatusCreated             // written to the destination
	StatusPlanned             // would be written, dry run
	StatusSkipped             // mapped path is never materialized
	StatusFailed              // writing failed
)

// String returns a string representation of EntryStatus
func (s EntryStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusPlanned:
		return "planned"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 EntryInfo contains metadata about one output entry
type EntryInfo struct {
	Path         string      // mapped path, relative to the output root
	Source       string      // path relative to the source root
	Status       EntryStatus // what happened
	IsDir        bool        // whether this is a directory
	Mode         fs.FileMode // file permissions
	Size         int64       // bytes written
	Replacements int         // placeholders inserted into the content
	Checksum     string      // content hash of what was written
	Error        error       // any error associated with this entry
}

// 📈 Summary totals a finished run
type Summary struct {
	Dirs         int
	Files        int
	Skipped      int
	Failed       int
	Replacements int
	Bytes        int64 // file content written, or planned in a dry run
	DryRun       bool
}

// 💾 FileManager handles all writes below the output root
type FileManager interface {
	// CreateRoot creates the output root itself
	CreateRoot(ctx context.Context) error

	// CreateDir creates one directory; its parent must already exist
	CreateDir(ctx context.Context, path string) error

	// WriteFile creates or truncates a file and writes content to it
	WriteFile(ctx context.Context, path string, content []byte, mode fs.FileMode) error
}

// 📈 StatusReporter tracks entry status and reports progress
type StatusReporter interface {
	TrackEntry(ctx context.Context, info EntryInfo)
	ListEntries(ctx context.Context) []EntryInfo
	Summary() Summary
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	baseDir   string          // output root for all operations
	dryRun    bool            // report only, never touch the disk
	logger    *zerolog.Logger // logger for status updates
	formatter FileFormatter   // formatter for status messages

	mu      sync.RWMutex
	entries map[string]EntryInfo
	summary Summary
}

// Option configures a Manager
type Option func(*Manager)

// WithDryRun makes every write a no-op that is still tracked
func WithDryRun(dryRun bool) Option {
	return func(m *Manager) {
		m.dryRun = dryRun
	}
}

// WithFormatter replaces the default message formatter
func WithFormatter(f FileFormatter) Option {
	return func(m *Manager) {
		m.formatter = f
	}
}

// 🏭 New creates a new status manager rooted at baseDir
func New(baseDir string, logger *zerolog.Logger, opts ...Option) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	m := &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		entries:   make(map[string]EntryInfo),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.summary.DryRun = m.dryRun
	return m
}

// BaseDir returns the output root
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// DryRun reports whether writes are suppressed
func (m *Manager) DryRun() bool {
	return m.dryRun
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, filepath.FromSlash(path))
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) CreateRoot(ctx context.Context) error {
	if m.dryRun {
		return nil
	}
	if err := os.Mkdir(m.baseDir, 0755); err != nil {
		return errkind.FileSystem(m.baseDir, errors.Errorf("creating output root: %w", err))
	}
	return nil
}

func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if m.dryRun {
		return nil
	}
	absPath := m.getAbsPath(path)
	if err := os.Mkdir(absPath, 0755); err != nil {
		return errkind.FileSystem(absPath, errors.Errorf("creating directory: %w", err))
	}
	return nil
}

func (m *Manager) WriteFile(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	if m.dryRun {
		return nil
	}
	absPath := m.getAbsPath(path)

	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errkind.FileSystem(absPath, errors.Errorf("creating file: %w", err))
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return errkind.FileSystem(absPath, errors.Errorf("writing file: %w", err))
	}
	if err := f.Close(); err != nil {
		return errkind.FileSystem(absPath, errors.Errorf("closing file: %w", err))
	}
	return nil
}

// StatusReporter interface implementation

func (m *Manager) TrackEntry(ctx context.Context, info EntryInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[info.Path] = info

	switch {
	case info.Status == StatusFailed || info.Error != nil:
		m.summary.Failed++
	case info.Status == StatusSkipped:
		m.summary.Skipped++
	case info.IsDir:
		m.summary.Dirs++
	default:
		m.summary.Files++
		m.summary.Replacements += info.Replacements
		m.summary.Bytes += info.Size
	}

	msg := m.formatter.FormatEntry(info)
	if info.Error != nil {
		m.logger.Error().Err(info.Error).Str("path", info.Path).Msg(m.formatter.FormatError(info.Error))
		return
	}
	m.logger.Debug().
		Str("path", info.Path).
		Str("source", info.Source).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg(msg)
}

// ListEntries returns every tracked entry sorted by mapped path
func (m *Manager) ListEntries(ctx context.Context) []EntryInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]EntryInfo, 0, len(m.entries))
	for _, info := range m.entries {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (m *Manager) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary
}

// FormatSummary renders the current totals with the manager's formatter
func (m *Manager) FormatSummary() string {
	return m.formatter.FormatSummary(m.Summary())
}

// NewEntryInfo fills the content derived fields of a file entry
func NewEntryInfo(path, source string, content []byte, mode fs.FileMode, replacements int) EntryInfo {
	return EntryInfo{
		Path:         path,
		Source:       source,
		Mode:         mode,
		Size:         int64(len(content)),
		Replacements: replacements,
		Checksum:     calculateChecksum(content),
	}
}
