// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httpfilter parses the filter query parameter of incoming
// HTTP requests and makes the result available to handlers.
package httpfilter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/restquery/restquery/internal/filter"
	ometric "go.opentelemetry.io/otel/metric"
)

// A Middleware parses filter criteria for the handlers it wraps.
type Middleware struct {
	slog     *slog.Logger
	param    string
	parsed   ometric.Int64Counter
	rejected ometric.Int64Counter
}

// New returns a Middleware reading the query parameter param,
// or [filter.QueryParam] if param is empty.
// Counts of parsed and rejected filters are recorded with meter.
func New(lg *slog.Logger, meter ometric.Meter, param string) (*Middleware, error) {
	if param == "" {
		param = filter.QueryParam
	}
	m := &Middleware{slog: lg, param: param}
	var err error
	m.parsed, err = meter.Int64Counter("restquery/filters-parsed",
		ometric.WithDescription("number of requests with a valid filter parameter"))
	if err != nil {
		return nil, err
	}
	m.rejected, err = meter.Int64Counter("restquery/filters-rejected",
		ometric.WithDescription("number of requests rejected for a malformed filter parameter"))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Wrap returns a handler that parses the filter parameter of each request
// and calls next with the criteria stored in the request context.
// Requests with a malformed parameter get a 400 response and
// do not reach next.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		c, err := filter.ParseQuery(r.URL.Query(), m.param)
		if err != nil {
			m.rejected.Add(ctx, 1)
			m.slog.Info("httpfilter rejected request", "path", r.URL.Path, "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if c.HasFilters() {
			m.parsed.Add(ctx, 1)
			m.slog.Debug("httpfilter parsed", "path", r.URL.Path, "filter", c.String(), "criteria", c.Len())
		}
		next.ServeHTTP(w, r.WithContext(NewContext(ctx, c)))
	})
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext(ctx context.Context, c *filter.Criteria) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the criteria stored in ctx by [NewContext],
// or nil if there are none. A nil *filter.Criteria has no filters,
// so the result can be used without checking.
func FromContext(ctx context.Context) *filter.Criteria {
	c, _ := ctx.Value(contextKey{}).(*filter.Criteria)
	return c
}
