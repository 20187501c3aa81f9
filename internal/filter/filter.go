// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"iter"
	"maps"
	"strings"

	"rsc.io/omap"
)

// A Component is a single criterion: match records whose Field equals Value.
type Component struct {
	Field string
	Value string
}

// A Visitor consumes criteria, typically by adding a predicate
// to a query under construction.
type Visitor interface {
	FilterOn(Component)
}

// VisitorFunc adapts an ordinary function to the [Visitor] interface.
type VisitorFunc func(Component)

// FilterOn calls f(c).
func (f VisitorFunc) FilterOn(c Component) { f(c) }

// Criteria is a set of equality criteria keyed by field name.
// The zero value holds no criteria and is ready to use.
// A nil *Criteria also reports no criteria.
//
// Criteria is not safe for concurrent mutation.
type Criteria struct {
	filters map[string]string // allocated on first Add
}

// New returns an empty Criteria.
func New() *Criteria {
	return new(Criteria)
}

// Of returns a Criteria holding a copy of m.
// Later changes to m do not affect the result.
func Of(m map[string]string) *Criteria {
	return &Criteria{filters: maps.Clone(m)}
}

// Add sets the value to match for the named field,
// replacing any earlier value for that field.
// It returns c so that calls can be chained:
//
//	c := filter.New().Add("name", "todd").Add("description", "amazing")
func (c *Criteria) Add(name, value string) *Criteria {
	if c.filters == nil {
		c.filters = make(map[string]string)
	}
	c.filters[name] = value
	return c
}

// HasFilters reports whether c holds at least one criterion.
func (c *Criteria) HasFilters() bool {
	return c != nil && len(c.filters) > 0
}

// Len returns the number of criteria in c.
func (c *Criteria) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

// Get returns the value to match for the named field.
func (c *Criteria) Get(name string) (value string, ok bool) {
	if c == nil {
		return "", false
	}
	value, ok = c.filters[name]
	return value, ok
}

// Iterate calls v.FilterOn once for each criterion in c, in no particular order.
// If v is nil (a nil interface or a nil [VisitorFunc]) or c has no criteria,
// Iterate does nothing. A non-nil interface holding a nil pointer is
// not nil: its FilterOn method is called as usual.
func (c *Criteria) Iterate(v Visitor) {
	if v == nil || !c.HasFilters() {
		return
	}
	if f, ok := v.(VisitorFunc); ok && f == nil {
		return
	}
	for field, value := range c.filters {
		v.FilterOn(Component{Field: field, Value: value})
	}
}

// All returns an iterator over the field, value pairs in c,
// in no particular order.
func (c *Criteria) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if !c.HasFilters() {
			return
		}
		for field, value := range c.filters {
			if !yield(field, value) {
				return
			}
		}
	}
}

// Sorted returns an iterator over the field, value pairs in c,
// in increasing order of field name.
func (c *Criteria) Sorted() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		var m omap.Map[string, string]
		for field, value := range c.All() {
			m.Set(field, value)
		}
		for field, value := range m.All() {
			if !yield(field, value) {
				return
			}
		}
	}
}

// String returns the canonical filter expression for c,
// with fields in sorted order. It returns "" if c has no criteria.
// Values containing [Separator] or [ValueSeparator] do not
// survive a round trip through [Parse].
func (c *Criteria) String() string {
	var b strings.Builder
	for field, value := range c.Sorted() {
		if b.Len() > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(field)
		b.WriteString(ValueSeparator)
		b.WriteString(value)
	}
	return b.String()
}
