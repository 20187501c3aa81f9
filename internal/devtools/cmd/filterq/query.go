// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/restquery/restquery/internal/filter"
	"github.com/restquery/restquery/internal/httpfilter"
	"github.com/restquery/restquery/internal/keyfilter"
	"github.com/restquery/restquery/internal/sqlfilter"
	ometric "go.opentelemetry.io/otel/metric"
)

// run parses each expression and prints it in the configured format.
func run(w io.Writer, cfg *config, exprs []string) error {
	for _, expr := range exprs {
		c, err := filter.Parse(expr)
		if err != nil {
			return err
		}
		if err := printQuery(w, cfg, c); err != nil {
			return err
		}
	}
	return nil
}

// printQuery writes c to w in the format cfg.Format.
func printQuery(w io.Writer, cfg *config, c *filter.Criteria) error {
	var buf bytes.Buffer
	switch cfg.Format {
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	case "canonical":
		fmt.Fprintln(&buf, c)
	case "sql":
		b := sqlfilter.Builder{JSONColumn: cfg.JSONColumn}
		c.Iterate(&b)
		clause, args := b.Positional(1)
		fmt.Fprintln(&buf, clause)
		for i, a := range args {
			fmt.Fprintf(&buf, "\t$%d = %q\n", i+1, a)
		}
	case "named":
		b := sqlfilter.Builder{JSONColumn: cfg.JSONColumn}
		c.Iterate(&b)
		clause, args := b.Named()
		fmt.Fprintln(&buf, clause)
		for _, name := range slices.Sorted(maps.Keys(args)) {
			fmt.Fprintf(&buf, "\t@%s = %q\n", name, args[name])
		}
	case "keys":
		for _, s := range keyfilter.Spans(cfg.IndexKind, c) {
			fmt.Fprintf(&buf, "%s::%s\t[%x, %x)\n", s.Field, s.Value, s.Start, s.End)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// whereResult is the JSON reply to GET /where.
type whereResult struct {
	Where string `json:"where"`
	Args  []any  `json:"args"`
}

// filterResult is the JSON reply to GET /filter.
type filterResult struct {
	Filter   string            `json:"filter"`
	Criteria map[string]string `json:"criteria"`
}

// newServer returns the HTTP handler for filterq -serve.
func newServer(lg *slog.Logger, meter ometric.Meter, cfg *config) (http.Handler, error) {
	m, err := httpfilter.New(lg, meter, cfg.Param)
	if err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	r.Use(m.Wrap)
	r.Get("/where", func(w http.ResponseWriter, r *http.Request) {
		b := sqlfilter.Builder{JSONColumn: cfg.JSONColumn}
		httpfilter.FromContext(r.Context()).Iterate(&b)
		clause, args := b.Positional(1)
		reply(lg, w, whereResult{Where: clause, Args: args})
	})
	r.Get("/filter", func(w http.ResponseWriter, r *http.Request) {
		c := httpfilter.FromContext(r.Context())
		reply(lg, w, filterResult{Filter: c.String(), Criteria: maps.Collect(c.All())})
	})
	return r, nil
}

// reply writes v as the JSON response body.
func reply(lg *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		lg.Error("filterq reply", "err", err)
	}
}
