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

package operation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/walteh/cuttercookie/pkg/config"
	"github.com/walteh/cuttercookie/pkg/errkind"
	"github.com/walteh/cuttercookie/pkg/text"
	"github.com/walteh/cuttercookie/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one runnable unit of work
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for a templatize run
type Options struct {
	// Source is the project directory to turn into a template
	Source string
	// Destination is the directory the template is written into
	Destination string
	// ConfigName is the base name of the mapping file, never copied out
	ConfigName string
	// Replacer rewrites paths and contents
	Replacer text.TextReplacer
	// Exclude prunes entries with a matching path component
	Exclude walk.ExclusionSet
	// Ignore holds doublestar globs matched against source relative paths
	Ignore []string
	// NoRoot writes the source's children straight into Destination
	NoRoot bool
	// DryRun reports what would be written without writing
	DryRun bool
	// Jobs is the number of top-level subtrees processed at once
	Jobs int
}

// normalize fills defaults and resolves the source to an absolute path
func (o *Options) normalize() error {
	if o.Source == "" {
		return errkind.Validation("", errors.New("source directory is required"))
	}
	if o.Replacer == nil {
		return errkind.Config("", errors.New("replacer is required"))
	}
	if o.Destination == "" {
		o.Destination = "."
	}
	if o.ConfigName == "" {
		o.ConfigName = config.DefaultFileName
	}
	if o.Jobs < 1 {
		o.Jobs = 1
	}

	src, err := filepath.Abs(o.Source)
	if err != nil {
		return errkind.Path(o.Source, errors.Errorf("resolving source: %w", err))
	}
	info, err := os.Stat(src)
	if err != nil {
		return errkind.Validation(src, errors.Errorf("reading source: %w", err))
	}
	if !info.IsDir() {
		return errkind.Validation(src, errors.New("source is not a directory"))
	}
	o.Source = src

	dst, err := filepath.Abs(o.Destination)
	if err != nil {
		return errkind.Path(o.Destination, errors.Errorf("resolving destination: %w", err))
	}
	o.Destination = dst

	return nil
}

// walkOptions returns the walker filters for these options
func (o Options) walkOptions() walk.Options {
	return walk.Options{
		Exclude: o.Exclude,
		Ignore:  o.Ignore,
	}
}

// OutputRoot returns where the source root's contents end up
func (o Options) OutputRoot() string {
	if o.NoRoot {
		return o.Destination
	}
	return filepath.Join(o.Destination, filepath.FromSlash(o.Replacer.Replace(filepath.Base(o.Source))))
}
