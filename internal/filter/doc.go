// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filter implements the "filter" query parameter of a REST
// request: a list of field/value equality criteria such as
//
//	?filter=name::todd|description::amazing
//
// Criteria are separated by a vertical bar and each field name is
// separated from its value by two colons.
//
// A [Criteria] holds the parsed criteria. Query builders consume them
// through [Criteria.Iterate], which hands each criterion to a [Visitor]
// as a [Component], or through the [Criteria.All] and [Criteria.Sorted]
// iterators.
package filter
