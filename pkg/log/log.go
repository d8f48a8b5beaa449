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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/abjure/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const dividerWidth = 49

// 📦 BuildOperation describes one source/target pair being built
type BuildOperation struct {
	Name   string // Build name from config, empty for ad hoc builds
	Source string
	Target string
	DryRun bool
}

// 🎯 Logger handles structured logging with console output.
// It implements status.Reporter.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	errs    io.Writer // Error output, console when nil
	verbose bool
	mu      sync.Mutex

	// set on buffered children, see Buffered
	parent *Logger
	buf    *bytes.Buffer
}

var _ status.Reporter = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// WithZerolog replaces the structured logger events are mirrored to
func (l *Logger) WithZerolog(zlog zerolog.Logger) *Logger {
	l.zlog = zlog
	return l
}

// WithErrorWriter sends Error output to w instead of the console
func (l *Logger) WithErrorWriter(w io.Writer) *Logger {
	l.errs = w
	return l
}

// SetVerbose turns per-file console lines on or off
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// 📦 Buffered returns a child logger that holds its console output until Flush
func (l *Logger) Buffered() *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := &bytes.Buffer{}
	return &Logger{
		zlog:    l.zlog,
		console: buf,
		errs:    l.errs,
		verbose: l.verbose,
		parent:  l,
		buf:     buf,
	}
}

// Flush writes everything a buffered logger collected to its parent in one
// piece. It does nothing for a logger made by New.
func (l *Logger) Flush() error {
	if l.parent == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.parent.mu.Lock()
	defer l.parent.mu.Unlock()
	if _, err := l.buf.WriteTo(l.parent.console); err != nil {
		return errors.Errorf("flushing console output: %w", err)
	}
	return nil
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, nil if there is none
func FromContext(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Report prints a line per action when verbose and always logs to zerolog
func (l *Logger) Report(ctx context.Context, ev status.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.verbose && ev.Action != status.ActionUnchanged {
		fmt.Fprintln(l.console, status.FormatLine(ev))
	}

	lvl := zerolog.InfoLevel
	if ev.Action == status.ActionUnchanged {
		lvl = zerolog.DebugLevel
	}
	l.zlog.WithLevel(lvl).
		Str("path", ev.Path).
		Str("action", ev.Action.String()).
		Bool("is_dir", ev.IsDir).
		Str("reason", ev.Reason).
		Msg("file operation")
}

// 📝 StartBuild prints the build banner line
func (l *Logger) StartBuild(ctx context.Context, op BuildOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, divider())
	if op.Name != "" {
		fmt.Fprintf(l.console, "Building %s...\n", color.New(color.Bold).Sprint(op.Name))
	} else {
		fmt.Fprintln(l.console, "Building project...")
	}
	fmt.Fprintf(l.console, "%s %s %s\n",
		color.New(color.FgHiYellow).Sprint(op.Source),
		color.New(color.FgHiRed).Sprint("=>"),
		color.New(color.FgHiYellow).Sprint(op.Target))
	if op.DryRun {
		fmt.Fprintln(l.console, color.New(color.Faint).Sprint("(dry run, nothing will be written)"))
	}

	l.zlog.Info().
		Str("name", op.Name).
		Str("source", op.Source).
		Str("target", op.Target).
		Bool("dry_run", op.DryRun).
		Msg("starting build")
}

// 📝 Summary prints the totals of a build
func (l *Logger) Summary(ctx context.Context, c status.Counts) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, divider())
	for _, line := range status.SummaryLines(c) {
		fmt.Fprintln(l.console, line)
	}

	l.zlog.Info().
		Int("rewritten", c.Rewritten).
		Int("copied", c.Copied).
		Int("deleted", c.Deleted).
		Msg("build complete")
}

// 📝 Elapsed prints how long the whole invocation took
func (l *Logger) Elapsed(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, divider())
	fmt.Fprintf(l.console, "Finished in %s!\n", color.HiCyanString("%dms", d.Milliseconds()))
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("abjure")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.console
	if l.errs != nil {
		w = l.errs
	}
	fmt.Fprintf(w, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func divider() string {
	return strings.Repeat("=", dividerWidth)
}
