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
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/walteh/cuttercookie/pkg/log"
	"github.com/walteh/cuttercookie/pkg/status"
	"github.com/walteh/cuttercookie/pkg/text"
	"github.com/walteh/cuttercookie/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🍪 TemplatizeOperation turns a source directory into a cookiecutter
// template below the destination
type TemplatizeOperation struct {
	opts    Options
	skip    SkipSet
	summary status.Summary
	entries []status.EntryInfo
}

// 🏭 NewTemplatizeOperation checks opts and prepares a run
func NewTemplatizeOperation(opts Options) (*TemplatizeOperation, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	if err := opts.walkOptions().Validate(); err != nil {
		return nil, err
	}
	return &TemplatizeOperation{
		opts: opts,
		skip: DefaultSkipSet(opts.ConfigName, opts.Replacer),
	}, nil
}

// Options returns the normalized options
func (op *TemplatizeOperation) Options() Options {
	return op.opts
}

// OutputRoot returns the directory the source root maps to
func (op *TemplatizeOperation) OutputRoot() string {
	return op.opts.OutputRoot()
}

// Summary returns the totals of the last Execute
func (op *TemplatizeOperation) Summary() status.Summary {
	return op.summary
}

// Entries returns every entry tracked by the last Execute
func (op *TemplatizeOperation) Entries() []status.EntryInfo {
	return op.entries
}

// 🏃 Execute validates the destination, creates the output root and
// processes every entry of the source. The first error aborts the run and
// leaves whatever was already written in place.
func (op *TemplatizeOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	if err := ValidateDestination(ctx, op.opts.Destination, op.opts.Source, op.opts.ConfigName, op.opts.DryRun); err != nil {
		return err
	}

	outputRoot := op.OutputRoot()
	mgr := status.New(outputRoot, logger, status.WithDryRun(op.opts.DryRun))
	defer func() {
		op.summary = mgr.Summary()
		op.entries = mgr.ListEntries(ctx)
	}()

	console.StartRun(ctx, log.RunOperation{
		Source:      op.opts.Source,
		Destination: outputRoot,
		Rules:       ruleCount(op.opts.Replacer),
		DryRun:      op.opts.DryRun,
	})
	defer console.EndRun(ctx)

	if !op.opts.NoRoot {
		if err := mgr.CreateRoot(ctx); err != nil {
			return err
		}
	}

	logger.Debug().
		Str("source", op.opts.Source).
		Str("output_root", outputRoot).
		Int("jobs", op.opts.Jobs).
		Bool("dry_run", op.opts.DryRun).
		Msg("templatizing")

	proc := NewProcessor(op.opts.Source, op.opts.Replacer, op.skip, mgr)
	wopts := op.opts.walkOptions()
	wopts.Irregular = func(e walk.Entry) {
		console.Warningf("skipping %s, a %s has no text to template", e.RelPath, irregularKind(e.Mode))
	}

	runner := runnerFrom(ctx, logger, op.opts.Jobs)
	if err := runner.Walk(ctx, op.opts.Source, wopts, proc.Process); err != nil {
		return errors.Errorf("templatizing %s: %w", op.opts.Source, err)
	}

	s := mgr.Summary()
	logger.Info().
		Int("dirs", s.Dirs).
		Int("files", s.Files).
		Int("skipped", s.Skipped).
		Int("replacements", s.Replacements).
		Msg(mgr.FormatSummary())

	return nil
}

func irregularKind(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeNamedPipe != 0:
		return "named pipe"
	case mode&fs.ModeDevice != 0:
		return "device"
	default:
		return "special file"
	}
}

func ruleCount(r text.TextReplacer) int {
	if rr, ok := r.(interface{ Rules() text.RuleSet }); ok {
		return len(rr.Rules())
	}
	return 0
}
