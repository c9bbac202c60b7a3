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
	"iter"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/cuttercookie/pkg/walk"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// EntryFunc handles one walked entry
type EntryFunc func(ctx context.Context, e walk.Entry) error

// 🏃 OperationRunner executes operations and drives walks
type OperationRunner struct {
	logger *zerolog.Logger
	jobs   int
}

// 🏗️ NewRunner creates a new runner. jobs above one processes top-level
// subtrees concurrently.
func NewRunner(logger *zerolog.Logger, jobs int) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if jobs < 1 {
		jobs = 1
	}
	return &OperationRunner{
		logger: logger,
		jobs:   jobs,
	}
}

type runnerKey struct{}

// runnerFrom returns the runner executing the current operation, or a new
// one with the given jobs when the operation runs on its own
func runnerFrom(ctx context.Context, logger *zerolog.Logger, jobs int) *OperationRunner {
	if r, ok := ctx.Value(runnerKey{}).(*OperationRunner); ok {
		return r
	}
	return NewRunner(logger, jobs)
}

// 🏃 Run executes an operation. Walks made by the operation go through r.
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	start := time.Now()
	ctx = context.WithValue(ctx, runnerKey{}, r)
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	r.logger.Debug().Dur("took", time.Since(start)).Msg("operation complete")
	return nil
}

// 🚶 Walk feeds every entry below root to fn. The first error stops the
// walk and is returned.
func (r *OperationRunner) Walk(ctx context.Context, root string, opts walk.Options, fn EntryFunc) error {
	if r.jobs > 1 {
		return r.walkPartitioned(ctx, root, opts, fn)
	}
	return r.walkSync(ctx, walk.Walk(root, opts), fn)
}

// 🔄 walkSync consumes one sequence in order
func (r *OperationRunner) walkSync(ctx context.Context, entries iter.Seq2[walk.Entry, error], fn EntryFunc) error {
	for e, err := range entries {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return errors.Errorf("walk cancelled: %w", err)
		}
		if err := fn(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ walkPartitioned handles the root and its direct children in order, then
// walks every top-level directory in its own goroutine. Parents still come
// before their children inside each partition.
func (r *OperationRunner) walkPartitioned(ctx context.Context, root string, opts walk.Options, fn EntryFunc) error {
	top, err := walk.Root(root)
	if err != nil {
		return err
	}
	if err := fn(ctx, top); err != nil {
		return err
	}
	if top.Kind != walk.KindDir {
		return nil
	}

	children, err := walk.Children(root, "", opts)
	if err != nil {
		return err
	}

	var dirs []walk.Entry
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("walk cancelled: %w", err)
		}
		if err := fn(ctx, child); err != nil {
			return err
		}
		if child.Kind == walk.KindDir {
			dirs = append(dirs, child)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for _, dir := range dirs {
		g.Go(func() error {
			r.logger.Debug().Str("partition", dir.RelPath).Msg("walking partition")
			first := true
			return r.walkSync(gctx, func(yield func(walk.Entry, error) bool) {
				for e, err := range walk.Subtree(root, dir.RelPath, opts) {
					// the partition root was handled with its siblings
					if first && err == nil {
						first = false
						continue
					}
					if !yield(e, err) {
						return
					}
				}
			}, fn)
		})
	}

	return g.Wait()
}
