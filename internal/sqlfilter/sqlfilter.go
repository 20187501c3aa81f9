// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlfilter turns filter criteria into the predicate of a
// PostgreSQL WHERE clause, with arguments ready for pgx.
//
// Each criterion becomes an equality test and the tests are joined
// with AND, in field-name order. For example,
//
//	clause, args := sqlfilter.Where(filter.New().Add("name", "todd").Add("t.size", "2"))
//
// sets clause to
//
//	"name" = $1 AND "t"."size" = $2
//
// and args to []any{"todd", "2"}.
package sqlfilter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/restquery/restquery/internal/filter"
	"rsc.io/omap"
)

// A Builder is a [filter.Visitor] that collects criteria for a WHERE clause.
// The zero Builder compares fields as table columns.
type Builder struct {
	// JSONColumn, if non-empty, names a jsonb column that holds the
	// filtered fields as keys, as in properties ->> 'name' = 'todd'.
	JSONColumn string

	terms omap.Map[string, string]
}

var _ filter.Visitor = (*Builder)(nil)

// FilterOn records c. A later component for the same field replaces it.
func (b *Builder) FilterOn(c filter.Component) {
	b.terms.Set(c.Field, c.Value)
}

// Where returns the predicate for c using positional parameters $1, $2, ...
// It returns "", nil if c has no criteria.
func Where(c *filter.Criteria) (string, []any) {
	var b Builder
	c.Iterate(&b)
	return b.Positional(1)
}

// Positional returns the predicate using positional parameters
// numbered from first, along with the matching arguments.
// Callers that have already bound n parameters pass n+1.
func (b *Builder) Positional(first int) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", first+len(args)-1)
	}
	for field, value := range b.terms.All() {
		if b.JSONColumn != "" {
			conds = append(conds, fmt.Sprintf("%s ->> %s = %s", column(b.JSONColumn), next(field), next(value)))
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = %s", column(field), next(value)))
	}
	return strings.Join(conds, " AND "), args
}

// Named returns the predicate using pgx named arguments.
// A field that is a plain identifier is bound as @field;
// other fields are bound as @arg1, @arg2, and so on.
// For JSON criteria the key itself is also bound, as @field_key or @argN_key.
// A name already bound for an earlier criterion is never reused:
// the later binding gets the next free @argN instead.
func (b *Builder) Named() (string, pgx.NamedArgs) {
	var conds []string
	args := pgx.NamedArgs{}
	n := 0
	bind := func(name string, v any) string {
		for !identRE.MatchString(name) || args[name] != nil {
			n++
			name = fmt.Sprintf("arg%d", n)
		}
		args[name] = v
		return name
	}
	for field, value := range b.terms.All() {
		name := bind(field, value)
		if b.JSONColumn != "" {
			key := bind(name+"_key", field)
			conds = append(conds, fmt.Sprintf("%s ->> @%s = @%s", column(b.JSONColumn), key, name))
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = @%s", column(field), name))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " AND "), args
}

// identRE matches names pgx accepts after @ in a named argument.
var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// column returns the quoted SQL reference for a field name.
// Dots separate a table (or schema) from the column.
func column(field string) string {
	return pgx.Identifier(strings.Split(field, ".")).Sanitize()
}
