// Copyright 2025 letter-box-updates authors
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

	"github.com/aaurigemmafbr/letter-box-updates/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	outcomeWidth = 10 // Width for outcome text
)

// 📦 BatchInfo describes the batch being run, for the console header
type BatchInfo struct {
	Operation  string // Batch name (wording/signature)
	Repository string // Repository identity (owner/name@branch)
	Folder     string // Folder the candidates come from
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *BatchInfo
	tracked int
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatResult formats a per-file outcome for display
func (l *Logger) formatResult(res status.Result) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch res.Outcome {
	case status.OutcomeCreated:
		symbol = '✓'
		symbolColor = color.FgGreen
	case status.OutcomeUpdated:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case status.OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case status.OutcomeSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, res.File),
		fmt.Sprintf("%-*s", outcomeWidth, res.Outcome.String()))
	if res.Detail != "" {
		line += " " + color.New(color.Faint).Sprint(res.Detail)
	}
	return line
}

// 📝 LogResult logs one file's outcome
func (l *Logger) LogResult(ctx context.Context, res status.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tracked++

	// Format and print
	fmt.Fprintln(l.console, l.formatResult(res))

	// Log to zerolog
	evt := l.zlog.Info()
	if res.Outcome == status.OutcomeFailed {
		evt = l.zlog.Error().Err(res.Err)
	}
	evt.
		Str("file", res.File).
		Str("path", res.Path).
		Str("outcome", res.Outcome.String()).
		Str("detail", res.Detail).
		Msg("file outcome")
}

// 📝 StartBatch starts a new batch
func (l *Logger) StartBatch(ctx context.Context, info BatchInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &info
	l.tracked = 0

	// Print batch header
	fmt.Fprintf(l.console, "[%s update]\n",
		color.New(color.FgCyan).Sprint(info.Operation))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(info.Repository),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(info.Folder))

	// Log to zerolog
	l.zlog.Info().
		Str("operation", info.Operation).
		Str("repository", info.Repository).
		Str("folder", info.Folder).
		Msg("starting batch")
}

// 📝 EndBatch ends the current batch
func (l *Logger) EndBatch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("operation", l.current.Operation).
		Int("files", l.tracked).
		Msg("batch complete")

	l.current = nil
	l.tracked = 0
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("letterbox")
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
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
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

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
