// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keyfilter turns filter criteria into key ranges over a
// secondary index kept in an ordered key-value store such as Pebble.
//
// An index entry for a record with the given field value is stored
// under the [ordered code] key
//
//	(kind, field, value, id...)
//
// so all records matching one criterion share the key prefix
// (kind, field, value) and form one contiguous [Span].
// Records matching every criterion are the intersection of the spans,
// which is left to the caller.
//
// [ordered code]: https://pkg.go.dev/rsc.io/ordered
package keyfilter

import (
	"github.com/cockroachdb/pebble"
	"github.com/restquery/restquery/internal/filter"
	"rsc.io/omap"
	"rsc.io/ordered"
)

// IndexKey returns the index key recording that the record
// identified by id has the given value for field.
func IndexKey(kind, field, value string, id ...any) []byte {
	return ordered.Encode(append([]any{kind, field, value}, id...)...)
}

// A Span is the half-open key range [Start, End) holding
// the index entries for one criterion.
type Span struct {
	Field string
	Value string
	Start []byte
	End   []byte
}

// IterOptions returns Pebble iterator options bounded to s.
func (s Span) IterOptions() *pebble.IterOptions {
	return &pebble.IterOptions{
		LowerBound: s.Start,
		UpperBound: s.End,
	}
}

// ID decodes the record id stored after the (kind, field, value)
// prefix of an index key in s into the pointers in id.
func (s Span) ID(key []byte, id ...any) error {
	return ordered.Decode(key, append([]any{nil, nil, nil}, id...)...)
}

// A Builder is a [filter.Visitor] that collects one span per criterion
// in the index named Kind.
type Builder struct {
	Kind string

	terms omap.Map[string, string]
}

var _ filter.Visitor = (*Builder)(nil)

// FilterOn records c. A later component for the same field replaces it.
func (b *Builder) FilterOn(c filter.Component) {
	b.terms.Set(c.Field, c.Value)
}

// Spans returns the spans for the recorded criteria, in field order.
func (b *Builder) Spans() []Span {
	var spans []Span
	for field, value := range b.terms.All() {
		spans = append(spans, Span{
			Field: field,
			Value: value,
			Start: ordered.Encode(b.Kind, field, value),
			End:   ordered.Encode(b.Kind, field, value, ordered.Inf),
		})
	}
	return spans
}

// Spans returns the spans in the index kind for the criteria in c.
func Spans(kind string, c *filter.Criteria) []Span {
	b := Builder{Kind: kind}
	c.Iterate(&b)
	return b.Spans()
}
