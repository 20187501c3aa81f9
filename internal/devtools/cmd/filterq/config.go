// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/restquery/restquery/internal/filter"
	"gopkg.in/yaml.v3"
)

// A config holds the settings shared by the command line and the server.
type config struct {
	Param      string `yaml:"param"`
	Format     string `yaml:"format"`
	JSONColumn string `yaml:"jsonColumn"`
	IndexKind  string `yaml:"indexKind"`
}

func defaultConfig() *config {
	return &config{
		Param:     filter.QueryParam,
		Format:    "canonical",
		IndexKind: "index",
	}
}

// loadConfig returns the default config overlaid with the YAML in file.
// An empty file name means no file.
func loadConfig(file string) (_ *config, err error) {
	cfg := defaultConfig()
	if file == "" {
		return cfg, nil
	}
	defer func() {
		if err != nil {
			err = fmt.Errorf("loading config %s: %w", file, err)
		}
	}()

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// check reports whether cfg can be used.
func (cfg *config) check() error {
	switch cfg.Format {
	case "canonical", "sql", "named", "keys":
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	if cfg.Param == "" {
		return errors.New("empty query parameter name")
	}
	return nil
}
