// Package logging builds the process logger: a terminal handler, an optional
// JSON log file and an optional systemd journal sink, fanned out together.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options configures Setup.
type Options struct {
	Level   slog.Level
	Writer  io.Writer // terminal sink; nil means os.Stderr
	File    string    // optional JSON log file, appended to
	Journal bool      // also log to the systemd journal when available
}

// Logger is a configured logger plus the resources it holds.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar

	closers []io.Closer
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

// Setup creates the logger described by opts.
func Setup(opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	level.Set(opts.Level)

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	terminal := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	handlers := []slog.Handler{terminal}
	l := &Logger{Level: level}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.closers = append(l.closers, f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level:        level,
			ReplaceGroup: toJournalKey,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			// The journal is best effort; say so on the terminal and carry on.
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "journal unavailable", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journal)
		}
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...))
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	level := new(slog.LevelVar)
	return &Logger{Logger: slog.New(slog.DiscardHandler), Level: level}
}

// toJournalKey maps an attribute key to a valid journal field name.
func toJournalKey(key string) string {
	key = strings.ToUpper(key)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, key)
}
