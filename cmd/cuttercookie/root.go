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

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/cuttercookie/pkg/config"
	"github.com/walteh/cuttercookie/pkg/log"
	"github.com/walteh/cuttercookie/pkg/operation"
	"github.com/walteh/cuttercookie/pkg/status"
	"github.com/walteh/cuttercookie/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🎮 Handler holds the parsed flags of one invocation
type Handler struct {
	excludedItems []string
	noRoot        bool
	output        string
	configFile    string
	ignore        []string
	dryRun        bool
	jobs          int
	debug         bool

	console io.Writer
	logger  *zerolog.Logger
}

// newRootCmd creates the root command bound to h
func newRootCmd(h *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cuttercookie [flags] <path>",
		Short: "Turn a project directory into a cookiecutter template",
		Long: `cuttercookie walks a project directory and replaces every value listed in
its mapping file with a {{cookiecutter.<name>}} placeholder, in file names
and file contents alike, writing the result as a new template tree.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if h.console == nil {
				h.console = cmd.OutOrStdout()
			}
			ctx := h.ctx(cmd.Context())

			op, err := h.Run(ctx, args[0])
			if err != nil {
				return err
			}

			log.FromContext(ctx).Raw(status.FormatSummaryTable(op.Summary()))
			NewUserLogger(ctx).LogValidation(true, "Process ran with success", nil)
			return nil
		},
	}

	addRootFlags(cmd, h)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds the templatize flags to the root command
func addRootFlags(cmd *cobra.Command, h *Handler) {
	cmd.Flags().StringSliceVarP(&h.excludedItems, "excluded-items", "e", nil, "comma separated directory names to leave out")
	cmd.Flags().BoolVarP(&h.noRoot, "no-root", "n", false, "write the project's contents straight into the output directory")
	cmd.Flags().StringVarP(&h.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&h.configFile, "config", "c", "", "mapping file path (default <path>/"+config.DefaultFileName+")")
	cmd.Flags().StringArrayVarP(&h.ignore, "ignore", "i", nil, "glob of source paths to leave out, e.g. '**/*.png' (repeatable)")
	cmd.Flags().BoolVar(&h.dryRun, "dry-run", false, "report what would be written without writing")
	cmd.Flags().IntVarP(&h.jobs, "jobs", "j", 1, "number of top-level directories processed at once")
	cmd.PersistentFlags().BoolVarP(&h.debug, "debug", "d", false, "enable debug logging")
}

// ctx returns parent carrying the zerolog logger and the console logger
func (h *Handler) ctx(parent context.Context) context.Context {
	if h.logger == nil {
		h.logger = setupLogging(h.debug)
	}
	if h.console == nil {
		h.console = os.Stdout
	}

	// console rows already cover what info level would repeat
	level := zerolog.WarnLevel
	if h.debug {
		level = zerolog.DebugLevel
	}
	ctx := h.logger.WithContext(parent)
	return log.NewContext(ctx, log.New(h.console, h.logger, level))
}

// mappingPath returns the mapping file to load for source
func (h *Handler) mappingPath(source string) string {
	if h.configFile != "" {
		return h.configFile
	}
	return filepath.Join(source, config.DefaultFileName)
}

// 🏃 Run loads the mapping and templatizes source
func (h *Handler) Run(ctx context.Context, source string) (*operation.TemplatizeOperation, error) {
	logger := zerolog.Ctx(ctx)
	path := h.mappingPath(source)

	mapping, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading mapping: %w", err)
	}

	replacer, err := mapping.Replacer()
	if err != nil {
		return nil, errors.Errorf("building replacer: %w", err)
	}

	logger.Debug().
		Str("mapping", mapping.Location()).
		Int("rules", mapping.Len()).
		Strs("excluded", h.excludedItems).
		Msg("loaded mapping")

	op, err := operation.NewTemplatizeOperation(operation.Options{
		Source:      source,
		Destination: h.output,
		ConfigName:  filepath.Base(path),
		Replacer:    replacer,
		Exclude:     walk.NewExclusionSet(h.excludedItems...),
		Ignore:      h.ignore,
		NoRoot:      h.noRoot,
		DryRun:      h.dryRun,
		Jobs:        h.jobs,
	})
	if err != nil {
		return nil, errors.Errorf("preparing run: %w", err)
	}

	log.FromContext(ctx).Header("templatizing " + filepath.Base(op.Options().Source))

	runner := operation.NewRunner(logger, op.Options().Jobs)
	if err := runner.Run(ctx, op); err != nil {
		return op, err
	}

	return op, nil
}

// setupLogging configures zerolog based on the debug flag
func setupLogging(debug bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &logger
}
