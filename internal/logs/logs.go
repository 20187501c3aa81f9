// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logs creates the [slog.Logger] used by restquery programs.
// Output to a terminal is slog's text format.
// Anything else gets one JSON object per line,
// with times in RFC 3339 form, suitable for log collectors.
package logs

import (
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"
)

// New returns a logger writing messages at or above level to f.
func New(f *os.File, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(level, f, term.IsTerminal(int(f.Fd()))))
}

// newHandler is for testing.
func newHandler(level slog.Leveler, w io.Writer, text bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}
	if text {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// If testTime is non-zero, replaceAttr will use it as the time.
var testTime time.Time

// replaceAttr formats top-level times as RFC 3339 in UTC.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 && a.Value.Kind() == slog.KindTime {
		tm := a.Value.Time()
		if !testTime.IsZero() {
			tm = testTime
		}
		a.Value = slog.StringValue(tm.UTC().Format(time.RFC3339))
	}
	return a
}
