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
	"github.com/walteh/cuttercookie/pkg/log"
	"github.com/walteh/cuttercookie/pkg/status"
	"github.com/walteh/cuttercookie/pkg/text"
	"github.com/walteh/cuttercookie/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔁 Processor turns one source entry into its output counterpart
type Processor struct {
	source   string
	replacer text.TextReplacer
	skip     SkipSet
	files    status.FileManager
	reporter status.StatusReporter
	dryRun   bool
}

// 🏭 NewProcessor creates a processor writing through mgr
func NewProcessor(source string, replacer text.TextReplacer, skip SkipSet, mgr *status.Manager) *Processor {
	return &Processor{
		source:   filepath.Clean(source),
		replacer: replacer,
		skip:     skip,
		files:    mgr,
		reporter: mgr,
		dryRun:   mgr.DryRun(),
	}
}

// 🏃 Process materializes e below the output root. Entries whose mapped
// path is in the skip set have no effect.
func (p *Processor) Process(ctx context.Context, e walk.Entry) error {
	rel, err := p.relative(e.Path)
	if err != nil {
		return err
	}
	mapped := p.replacer.Replace(rel)

	if p.skip.Contains(mapped) {
		if mapped != "" {
			p.track(ctx, status.EntryInfo{Path: mapped, Source: rel, IsDir: e.Kind == walk.KindDir, Status: status.StatusSkipped})
		}
		return nil
	}

	switch e.Kind {
	case walk.KindDir:
		info := status.EntryInfo{Path: mapped, Source: rel, IsDir: true, Mode: e.Mode}
		if err := p.files.CreateDir(ctx, mapped); err != nil {
			info.Status, info.Error = status.StatusFailed, err
			p.track(ctx, info)
			return err
		}
		info.Status = p.doneStatus()
		p.track(ctx, info)
		return nil
	case walk.KindFile:
		return p.processFile(ctx, e, rel, mapped)
	default:
		return errkind.FileSystem(e.Path, errors.Errorf("unsupported entry kind %s", e.Kind))
	}
}

func (p *Processor) processFile(ctx context.Context, e walk.Entry, rel, mapped string) error {
	fail := func(err error) error {
		p.track(ctx, status.EntryInfo{Path: mapped, Source: rel, Status: status.StatusFailed, Error: err})
		return err
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return fail(errkind.FileSystem(e.Path, errors.Errorf("reading file: %w", err)))
	}
	defer f.Close()

	// ReplaceText rejects content that is not UTF-8
	result, err := p.replacer.ReplaceText(ctx, f)
	if err != nil {
		return fail(errors.Errorf("replacing %s: %w", rel, err))
	}

	if err := p.files.WriteFile(ctx, mapped, result.ModifiedContent, e.Mode); err != nil {
		return fail(err)
	}

	info := status.NewEntryInfo(mapped, rel, result.ModifiedContent, e.Mode, result.ReplacementCount)
	info.Status = p.doneStatus()
	p.track(ctx, info)
	return nil
}

// relative returns the slash separated path of abs below the source root
func (p *Processor) relative(abs string) (string, error) {
	rel, err := filepath.Rel(p.source, abs)
	if err != nil {
		return "", errkind.Path(abs, errors.Errorf("relating entry to source root: %w", err))
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errkind.Path(abs, errors.Errorf("entry is outside the source root %s", p.source))
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

func (p *Processor) doneStatus() status.EntryStatus {
	if p.dryRun {
		return status.StatusPlanned
	}
	return status.StatusCreated
}

// track records the entry and prints its row
func (p *Processor) track(ctx context.Context, info status.EntryInfo) {
	p.reporter.TrackEntry(ctx, info)

	kind := walk.KindFile
	if info.IsDir {
		kind = walk.KindDir
	}
	log.FromContext(ctx).LogEntryOperation(ctx, log.EntryOperation{
		Path:         info.Path,
		Source:       info.Source,
		Kind:         kind.String(),
		Status:       info.Status.String(),
		IsCreated:    info.Status == status.StatusCreated,
		IsPlanned:    info.Status == status.StatusPlanned,
		IsSkipped:    info.Status == status.StatusSkipped,
		Replacements: info.Replacements,
	})

	if info.Error != nil {
		zerolog.Ctx(ctx).Debug().Err(info.Error).Str("source", info.Source).Msg("entry failed")
	}
}
