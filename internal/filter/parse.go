// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	QueryParam     = "filter" // default query parameter name
	Separator      = "|"      // separates criteria
	ValueSeparator = "::"     // separates a field name from its value
)

// ErrEmptyField is reported by [Parse] for a criterion with no field name.
var ErrEmptyField = errors.New("empty field name")

// Parse parses a filter expression of the form
//
//	field1::value1|field2::value2|...
//
// Spaces around field names and values are trimmed and empty
// criteria are ignored, so "" and " | " both parse to no criteria.
// A criterion without "::" matches the field against the empty string.
// If a field appears more than once, the last value wins.
func Parse(expr string) (_ *Criteria, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("filter.Parse(%q): %w", expr, err)
		}
	}()

	c := New()
	if err := c.parse(expr); err != nil {
		return nil, err
	}
	return c, nil
}

// parse adds the criteria in expr to c.
func (c *Criteria) parse(expr string) error {
	for i, seg := range strings.Split(expr, Separator) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		field, value, _ := strings.Cut(seg, ValueSeparator)
		field = strings.TrimSpace(field)
		if field == "" {
			return fmt.Errorf("segment %d: %w", i+1, ErrEmptyField)
		}
		c.Add(field, strings.TrimSpace(value))
	}
	return nil
}

// ParseQuery parses every value of the query parameter param in q
// and merges the results, later values replacing earlier ones.
// If param is empty, ParseQuery uses [QueryParam].
// A missing parameter yields a Criteria with no criteria.
func ParseQuery(q url.Values, param string) (*Criteria, error) {
	if param == "" {
		param = QueryParam
	}
	c := New()
	for _, expr := range q[param] {
		if err := c.parse(expr); err != nil {
			return nil, fmt.Errorf("filter.ParseQuery: %s=%q: %w", param, expr, err)
		}
	}
	return c, nil
}

// FromRequest parses the [QueryParam] parameter of r's URL.
func FromRequest(r *http.Request) (*Criteria, error) {
	return ParseQuery(r.URL.Query(), QueryParam)
}
