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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	typeWidth   = 6  // Width for entry kind
	statusWidth = 10 // Width for status text
)

// 🎯 EntryOperation represents one templatized entry for logging
type EntryOperation struct {
	Path         string // mapped path, relative to the output root
	Source       string // path relative to the source root
	Kind         string // dir or file
	Status       string // operation status
	IsCreated    bool   // whether the entry was written
	IsPlanned    bool   // whether the entry would be written (dry run)
	IsSkipped    bool   // whether the entry was skipped
	Replacements int    // number of replacements made
}

// 📦 RunOperation represents a whole templatize run for logging
type RunOperation struct {
	Source      string // source directory
	Destination string // output root
	Rules       int    // number of substitution rules
	DryRun      bool   // whether writes are suppressed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	entries    []EntryOperation
}

// 🏭 New creates a logger printing rows to console and structured events
// to zlog at level or above. A nil zlog drops the structured events.
func New(console io.Writer, zlog *zerolog.Logger, level zerolog.Level) *Logger {
	if zlog == nil {
		nop := zerolog.Nop()
		zlog = &nop
	}
	return &Logger{
		zlog:    zlog.Level(level),
		console: console,
	}
}

// 🔇 Discard returns a logger that prints nothing
func Discard() *Logger {
	return &Logger{
		zlog:    zerolog.Nop(),
		console: io.Discard,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding logger
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntryOperation formats an entry operation for display
func (l *Logger) formatEntryOperation(op EntryOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgHiBlack
	case op.IsCreated:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsPlanned:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '✗'
		symbolColor = color.FgRed
	}

	var kindColor color.Attribute
	switch op.Kind {
	case "dir":
		kindColor = color.FgBlue
	default:
		kindColor = color.FgYellow
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", typeWidth, op.Kind)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))

	if op.Replacements > 0 {
		line += color.New(color.FgMagenta).Sprintf(" %d replacements", op.Replacements)
	}
	return line
}

// 📝 LogEntryOperation logs an entry operation
func (l *Logger) LogEntryOperation(ctx context.Context, op EntryOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, op)

	fmt.Fprintln(l.console, l.formatEntryOperation(op))

	l.zlog.Debug().
		Str("path", op.Path).
		Str("source", op.Source).
		Str("kind", op.Kind).
		Str("status", op.Status).
		Bool("is_created", op.IsCreated).
		Bool("is_planned", op.IsPlanned).
		Bool("is_skipped", op.IsSkipped).
		Int("replacements", op.Replacements).
		Msg("entry operation")
}

// 📝 StartRun starts a new templatize run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.entries = nil

	verb := "templatizing"
	if op.DryRun {
		verb = "planning"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb,
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d rules", op.Rules))

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Int("rules", op.Rules).
		Bool("dry_run", op.DryRun).
		Msg("starting templatize run")
}

// 📝 EndRun ends the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	replacements := 0
	for _, e := range l.entries {
		replacements += e.Replacements
	}

	l.zlog.Info().
		Str("source", l.currentRun.Source).
		Int("entries", len(l.entries)).
		Int("replacements", replacements).
		Msg("templatize run complete")

	l.currentRun = nil
	l.entries = nil
}

// 📝 Raw prints pre-formatted text as is
func (l *Logger) Raw(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("cuttercookie")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning prints a warning row
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s⚠️  %s\n", fmt.Sprintf("%*s", fileIndent, ""), color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Warningf prints a formatted warning row
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
