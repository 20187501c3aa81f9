// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"errors"
	"maps"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// parseTests holds the contents of testdata/parse.yaml.
type parseTests struct {
	Tests []parseTest `yaml:"tests"`
}

type parseTest struct {
	Description string            `yaml:"description"`
	Expr        string            `yaml:"expr"`
	Want        map[string]string `yaml:"want"`
	Error       string            `yaml:"error"`
}

func TestParse(t *testing.T) {
	var tests parseTests
	unmarshalYAML(t, "parse.yaml", &tests)
	if len(tests.Tests) == 0 {
		t.Fatal("no tests in testdata/parse.yaml")
	}
	for _, tc := range tests.Tests {
		t.Run(tc.Description, func(t *testing.T) {
			c, err := Parse(tc.Expr)
			if tc.Error != "" {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error containing %q", tc.Expr, tc.Error)
				}
				if !strings.Contains(err.Error(), tc.Error) {
					t.Fatalf("Parse(%q) error %q, want error containing %q", tc.Expr, err, tc.Error)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.Expr, err)
			}
			if got := maps.Collect(c.All()); !maps.Equal(got, tc.Want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.Expr, got, tc.Want)
			}
			if got, want := c.HasFilters(), len(tc.Want) > 0; got != want {
				t.Errorf("Parse(%q).HasFilters() = %v, want %v", tc.Expr, got, want)
			}
		})
	}
}

func TestParseErrEmptyField(t *testing.T) {
	_, err := Parse("name::todd|::x")
	if !errors.Is(err, ErrEmptyField) {
		t.Fatalf("Parse error = %v, want ErrEmptyField", err)
	}
	want := `filter.Parse("name::todd|::x"): segment 2: empty field name`
	if err.Error() != want {
		t.Errorf("Parse error:\nhave %s\nwant %s", err, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, expr := range []string{
		"",
		"name::todd",
		"description::amazing|name::todd",
		"a::|b::2|c::x y",
	} {
		c, err := Parse(expr)
		if err != nil {
			t.Fatal(err)
		}
		if s := c.String(); s != expr {
			t.Errorf("Parse(%q).String() = %q", expr, s)
		}
	}
}

func TestParseQuery(t *testing.T) {
	for _, tc := range []struct {
		query   string
		param   string
		want    map[string]string
		wantErr string // if non-empty, error should contain this
	}{
		{
			query: "",
			want:  map[string]string{},
		},
		{
			query: "filter=name::todd",
			want:  map[string]string{"name": "todd"},
		},
		{
			query: "filter=name%3A%3Atodd%7Cdescription%3A%3Aamazing",
			want:  map[string]string{"name": "todd", "description": "amazing"},
		},
		{
			query: "filter=name::todd&filter=name::bob|size::2",
			want:  map[string]string{"name": "bob", "size": "2"},
		},
		{
			query: "where=name::todd&filter=size::2",
			param: "where",
			want:  map[string]string{"name": "todd"},
		},
		{
			query:   "filter=::todd",
			wantErr: "filter=\"::todd\": segment 1: empty field name",
		},
	} {
		q, err := url.ParseQuery(tc.query)
		if err != nil {
			t.Fatal(err)
		}
		c, err := ParseQuery(q, tc.param)
		if tc.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("ParseQuery(%q) error = %v, want error containing %q", tc.query, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuery(%q): %v", tc.query, err)
			continue
		}
		if got := maps.Collect(c.All()); !maps.Equal(got, tc.want) {
			t.Errorf("ParseQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/todos?filter=name::todd|description::amazing&limit=5", nil)
	c, err := FromRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	if s, want := c.String(), "description::amazing|name::todd"; s != want {
		t.Errorf("FromRequest = %q, want %q", s, want)
	}
}

// unmarshalYAML reads YAML encoded data from a testdata file into v.
func unmarshalYAML(t *testing.T, filename string, v any) {
	f, err := os.Open(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		t.Fatal(err)
	}
}
