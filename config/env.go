// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"cogentcore.org/molview/base/errors"
	"github.com/joho/godotenv"
)

// Environment variables that override the config.
const (
	EnvSource         = "MOLVIEW_SOURCE"
	EnvRepresentation = "MOLVIEW_REPRESENTATION"
	EnvMaterial       = "MOLVIEW_MATERIAL"
	EnvBackground     = "MOLVIEW_BACKGROUND"
	EnvWatch          = "MOLVIEW_WATCH"
)

// LoadEnv loads the given .env files into the environment, or ".env"
// if none are given. Missing files are ignored, and variables that are
// already set are never overridden.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, fn := range filenames {
		err := godotenv.Load(fn)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: loading %s: %w", fn, err)
		}
	}
	return nil
}

// ApplyEnv overrides the config with the MOLVIEW_ environment variables
// that are set.
func (c *Config) ApplyEnv() error {
	var errs []error
	if v, ok := os.LookupEnv(EnvSource); ok {
		c.Source = v
	}
	if v, ok := os.LookupEnv(EnvRepresentation); ok {
		errs = append(errs, c.Render.Representation.UnmarshalText([]byte(v)))
	}
	if v, ok := os.LookupEnv(EnvMaterial); ok {
		errs = append(errs, c.Render.Material.UnmarshalText([]byte(v)))
	}
	if v, ok := os.LookupEnv(EnvBackground); ok {
		c.Render.Background = v
	}
	if v, ok := os.LookupEnv(EnvWatch); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvWatch, err))
		}
		c.Watch = b
	}
	return errors.Join(errs...)
}
