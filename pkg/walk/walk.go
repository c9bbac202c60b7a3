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

// Package walk produces the entries of a source tree, depth first.
//
// The sequence is lazy: directories are read only as the consumer advances,
// and breaking out of the range loop stops the walk. Symbolic links are
// followed, so a link cycle walks forever; there is no cycle detection.
package walk

import (
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/cuttercookie/pkg/errkind"
	"gitlab.com/tozd/go/errors"
)

// 📂 Kind tells a directory entry from a file entry
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// 📄 Entry is one file or directory of the source tree
type Entry struct {
	Path    string      // location on disk
	RelPath string      // slash separated, relative to the walk root; "" for the root
	Kind    Kind        // directory or file, after following symlinks
	Mode    fs.FileMode // permission bits of the link target
}

// 🚫 ExclusionSet holds directory names that prune whole subtrees
type ExclusionSet map[string]struct{}

// NewExclusionSet creates an ExclusionSet, dropping empty names
func NewExclusionSet(names ...string) ExclusionSet {
	s := make(ExclusionSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether a single path component is excluded
func (s ExclusionSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Excludes reports whether any component of a slash separated relative path
// is excluded
func (s ExclusionSet) Excludes(rel string) bool {
	if len(s) == 0 || rel == "" {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if s.Contains(part) {
			return true
		}
	}
	return false
}

// 🔧 Options controls which entries a walk yields
type Options struct {
	// Exclude drops every entry with a matching path component
	Exclude ExclusionSet

	// Ignore holds doublestar patterns matched against RelPath
	Ignore []string

	// Irregular, when set, is told about every socket, device or pipe the
	// walk leaves out
	Irregular func(e Entry)
}

// Validate checks the ignore patterns
func (o Options) Validate() error {
	for _, pattern := range o.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errkind.Config("", errors.Errorf("invalid ignore pattern %q", pattern))
		}
	}
	return nil
}

func (o Options) ignored(rel string) bool {
	for _, pattern := range o.Ignore {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

// 🚶 Walk yields root and everything below it. Siblings come in lexical
// order and a directory always comes before its contents. Sockets, devices
// and pipes are left out. The first error is yielded once and ends the
// sequence.
func Walk(root string, opts Options) iter.Seq2[Entry, error] {
	return Subtree(root, "", opts)
}

// Subtree walks the part of root's tree that starts at rel. RelPath values
// stay relative to root.
func Subtree(root, rel string, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		start, err := stat(root, rel)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		visit(start, opts, yield)
	}
}

// Root resolves the entry for root itself, following symlinks
func Root(root string) (Entry, error) {
	return stat(root, "")
}

// Children returns the entries directly below rel, filtered the same way
// Walk filters them
func Children(root, rel string, opts Options) ([]Entry, error) {
	dir, err := stat(root, rel)
	if err != nil {
		return nil, err
	}
	if dir.Kind != KindDir {
		return nil, errkind.FileSystem(dir.Path, errors.New("not a directory"))
	}

	var out []Entry
	for child, err := range children(dir, opts) {
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// visit yields e and, for directories, its descendants. It returns false
// once the walk must stop.
func visit(e Entry, opts Options, yield func(Entry, error) bool) bool {
	if !yield(e, nil) {
		return false
	}
	if e.Kind != KindDir {
		return true
	}
	for child, err := range children(e, opts) {
		if err != nil {
			yield(Entry{}, err)
			return false
		}
		if !visit(child, opts, yield) {
			return false
		}
	}
	return true
}

// children yields the filtered direct children of a directory entry
func children(dir Entry, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		entries, err := os.ReadDir(dir.Path)
		if err != nil {
			yield(Entry{}, errkind.FileSystem(dir.Path, errors.Errorf("reading directory: %w", err)))
			return
		}

		for _, de := range entries {
			name := de.Name()
			if opts.Exclude.Contains(name) {
				continue
			}

			p := filepath.Join(dir.Path, name)
			if !utf8.ValidString(name) {
				yield(Entry{}, errkind.Encoding(p, errors.New("file name is not valid UTF-8")))
				return
			}

			rel := path.Join(dir.RelPath, name)
			if opts.ignored(rel) {
				continue
			}

			child, err := stat(p, "")
			if err != nil {
				yield(Entry{}, err)
				return
			}
			child.RelPath = rel
			if child.Kind != KindDir && !child.Mode.IsRegular() {
				if opts.Irregular != nil {
					opts.Irregular(child)
				}
				continue
			}

			if !yield(child, nil) {
				return
			}
		}
	}
}

// stat resolves root/rel, following symlinks
func stat(root, rel string) (Entry, error) {
	p := root
	if rel != "" {
		p = filepath.Join(root, filepath.FromSlash(rel))
	}

	info, err := os.Stat(p)
	if err != nil {
		return Entry{}, errkind.FileSystem(p, errors.Errorf("reading entry: %w", err))
	}

	kind := KindFile
	if info.IsDir() {
		kind = KindDir
	}

	return Entry{
		Path:    p,
		RelPath: rel,
		Kind:    kind,
		Mode:    info.Mode(),
	}, nil
}
