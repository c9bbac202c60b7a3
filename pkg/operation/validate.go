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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/cuttercookie/pkg/errkind"
	"gitlab.com/tozd/go/errors"
)

// ✅ ValidateDestination checks that dest can receive a template of source.
// A missing dest is created unless dryRun is set. An existing dest must be
// a directory holding nothing but the mapping file, and it must not lie
// inside source.
func ValidateDestination(ctx context.Context, dest, source, configName string, dryRun bool) error {
	logger := zerolog.Ctx(ctx)

	if isWithin(resolve(source), resolve(dest)) {
		return errkind.Validation(dest, errors.Errorf("destination is inside the source directory %s", source))
	}

	info, err := os.Stat(dest)
	switch {
	case os.IsNotExist(err):
		if dryRun {
			logger.Debug().Str("destination", dest).Msg("destination would be created")
			return nil
		}
		if err := os.MkdirAll(dest, 0755); err != nil {
			return errkind.Validation(dest, errors.Errorf("creating destination: %w", err))
		}
		logger.Debug().Str("destination", dest).Msg("created destination")
		return nil
	case err != nil:
		return errkind.FileSystem(dest, errors.Errorf("reading destination: %w", err))
	case !info.IsDir():
		return errkind.Validation(dest, errors.New("destination is not a directory"))
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return errkind.FileSystem(dest, errors.Errorf("reading destination: %w", err))
	}
	for _, e := range entries {
		if e.Name() == configName {
			continue
		}
		return errkind.Validation(dest, errors.Errorf("destination is not empty: found %q", e.Name()))
	}

	return nil
}

// resolve makes p absolute and follows symlinks as far as they exist
func resolve(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	// dest may not exist yet, resolve its nearest existing parent
	parent, base := filepath.Split(abs)
	parent = filepath.Clean(parent)
	if parent == abs {
		return abs
	}
	return filepath.Join(resolve(parent), base)
}

// isWithin reports whether child is parent or lies below it
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
