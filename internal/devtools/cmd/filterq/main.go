// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Filterq shows the queries built from filter expressions.

Usage:

	filterq [-config file] [-format f] [-json column] [-kind k] expr...
	filterq [-config file] [-param name] -serve addr

Each expr is a filter expression such as

	name::todd|description::amazing

and is printed in the form selected by -format:

	canonical  the expression with fields sorted (the default)
	sql        a WHERE predicate with $n parameters, then the arguments
	named      a WHERE predicate with pgx @name parameters, then the arguments
	keys       one ordered-code index span per criterion

The -json flag makes the sql and named forms compare keys of a jsonb
column instead of table columns. The -kind flag names the index for keys.

With -serve, filterq instead runs an HTTP server on addr.
GET /where?filter=expr replies with the sql form as JSON, and
GET /filter?filter=expr replies with the parsed criteria.
The -param flag changes the query parameter name, and -v
logs each parsed filter.

The -config flag reads defaults from a YAML file:

	param: filter
	format: sql
	jsonColumn: properties
	indexKind: todo

Flags given on the command line override the file.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/restquery/restquery/internal/filter"
	"github.com/restquery/restquery/internal/logs"
	"go.opentelemetry.io/otel"
)

var (
	configFile = flag.String("config", "", "read defaults from YAML `file`")
	format     = flag.String("format", "canonical", "output `form`: canonical, sql, named, or keys")
	jsonColumn = flag.String("json", "", "filter on keys of jsonb `column`")
	indexKind  = flag.String("kind", "index", "index `kind` for keys output")
	param      = flag.String("param", filter.QueryParam, "query parameter `name` for -serve")
	serveAddr  = flag.String("serve", "", "serve HTTP on `addr`")
	verbose    = flag.Bool("v", false, "log debug messages")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: filterq [flags] expr...\n       filterq [flags] -serve addr\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("filterq: ")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "json":
			cfg.JSONColumn = *jsonColumn
		case "kind":
			cfg.IndexKind = *indexKind
		case "param":
			cfg.Param = *param
		}
	})
	if err := cfg.check(); err != nil {
		log.Fatal(err)
	}

	if *serveAddr != "" {
		if flag.NArg() != 0 {
			usage()
		}
		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		if err := serve(logs.New(os.Stderr, level), cfg, *serveAddr); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() == 0 {
		usage()
	}
	if err := run(os.Stdout, cfg, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func serve(lg *slog.Logger, cfg *config, addr string) error {
	h, err := newServer(lg, otel.Meter("filterq"), cfg)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:     addr,
		Handler:  h,
		ErrorLog: slog.NewLogLogger(lg.Handler(), slog.LevelError),
	}
	lg.Info("filterq serving", "addr", addr, "param", cfg.Param)
	return srv.ListenAndServe()
}
