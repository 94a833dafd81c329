// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the molview app:
// the viewer options plus the window and loading settings, read from
// a TOML or YAML file, .env files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cogentcore.org/molview/base/errors"
	"cogentcore.org/molview/options"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
)

// Config is the main config struct that contains all of the
// configuration options for the molview app.
type Config struct {

	// the structure to show, a local path or URL
	Source string `toml:"source" yaml:"source"`

	// how the source is parsed
	Parse options.Parse `toml:"parse" yaml:"parse"`

	// how the molecule is drawn
	Render options.Render `toml:"render" yaml:"render"`

	// the viewer window
	Window Window `toml:"window" yaml:"window"`

	// reload a local source whenever it is written
	Watch bool `toml:"watch" yaml:"watch"`

	// show the axes helper
	Axes bool `toml:"axes" yaml:"axes"`

	// the time limit for loading a source, as a Go duration
	Timeout string `toml:"timeout" yaml:"timeout"`
}

type Window struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

// DefaultFiles are the config file names searched for on [IncludePaths]
// when no file is given.
var DefaultFiles = []string{"molview.toml", "molview.yaml", "molview.yml"}

// IncludePaths are the directories searched for [DefaultFiles], in order.
var IncludePaths = []string{".", "configs", "~/.config/molview"}

// Default returns the default config.
func Default() *Config {
	c := &Config{
		Window:  Window{Width: 1024, Height: 768, Title: "molview"},
		Timeout: "30s",
	}
	errors.Log(copier.CopyWithOption(c, options.Defaults(), copier.Option{CaseSensitive: true, DeepCopy: true}))
	return c
}

// Find returns the first of [DefaultFiles] that exists on [IncludePaths],
// or "" if there is none.
func Find() string {
	for _, dir := range IncludePaths {
		dir, err := homedir.Expand(dir)
		if err != nil {
			continue
		}
		for _, name := range DefaultFiles {
			fn := filepath.Join(dir, name)
			if _, err := os.Stat(fn); err == nil {
				return fn
			}
		}
	}
	return ""
}

// Load returns the default config overlaid with the given file, or
// with the file found by [Find] if filename is "". Fields the file
// does not set keep their defaults.
func Load(filename string) (*Config, error) {
	c := Default()
	if filename == "" {
		filename = Find()
		if filename == "" {
			return c, nil
		}
	}
	fn, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	if err := Open(c, fn); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	return c, nil
}

// Options returns the viewer options of the config,
// or an error describing every invalid field.
func (c *Config) Options() (options.Options, error) {
	var o options.Options
	if err := copier.CopyWithOption(&o, c, copier.Option{CaseSensitive: true, DeepCopy: true}); err != nil {
		return o, err
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

// LoadTimeout returns the parsed load timeout; empty means no limit.
func (c *Config) LoadTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid timeout: %w", err)
	}
	return d, nil
}
