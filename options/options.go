// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package options contains the user-facing configuration snapshot of the
// viewer and the pure derivations from it that the scene object caches
// are keyed on.
package options

import (
	"fmt"
	"image/color"

	"cogentcore.org/molview/base/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// Options is a complete configuration snapshot. It is a plain value:
// copying it copies everything.
type Options struct {

	// Source is a local path or remote URL of the structure to show.
	Source string `toml:"source" yaml:"source"`

	// Parse controls how the source is turned into a molecule.
	Parse Parse `toml:"parse" yaml:"parse"`

	// Render controls how the molecule is drawn.
	Render Render `toml:"render" yaml:"render"`
}

// Parse are the options passed to the structure reader.
type Parse struct {

	// AltLoc is the policy for atoms with alternate locations.
	AltLoc AltLocs `toml:"alt_loc" yaml:"alt_loc"`

	// Model is the 1-based model to read from multi-model files.
	Model int `toml:"model" yaml:"model"`

	// Bonds is where bonds come from.
	Bonds BondPolicies `toml:"bonds" yaml:"bonds"`
}

// Render are the drawing options.
type Render struct {
	Representation Representations `toml:"representation" yaml:"representation"`

	// Material is the shading model for surfaces that honor it.
	// Atoms are always drawn flat white.
	Material MaterialKinds `toml:"material" yaml:"material"`

	// Background is the background color as #rrggbb.
	Background string `toml:"background" yaml:"background"`

	Overlays Overlays `toml:"overlays" yaml:"overlays"`

	Spheres SpheresParams `toml:"spheres" yaml:"spheres"`

	Backbone BackboneStyle `toml:"backbone" yaml:"backbone"`

	Ribbon RibbonParams `toml:"ribbon" yaml:"ribbon"`
}

// Overlays are the primitive kinds that can be toggled on their own.
type Overlays struct {
	Atoms    bool `toml:"atoms" yaml:"atoms"`
	Bonds    bool `toml:"bonds" yaml:"bonds"`
	Backbone bool `toml:"backbone" yaml:"backbone"`
}

// SpheresParams are the parameters of the spheres representation.
type SpheresParams struct {

	// Detail is the sphere tessellation level, 0-5.
	Detail int `toml:"detail" yaml:"detail"`

	// RadiusScale multiplies the van der Waals radius of each atom.
	RadiusScale float32 `toml:"radius_scale" yaml:"radius_scale"`
}

// BackboneStyle are the parameters of the backbone trace overlay.
type BackboneStyle struct {

	// Width is the line width in pixels.
	Width float32 `toml:"width" yaml:"width"`
}

// RibbonParams are the parameters of the ribbon representations.
type RibbonParams struct {

	// Thickness is the tube diameter, and the ribbon thickness, in Å.
	Thickness float32 `toml:"thickness" yaml:"thickness"`

	// Width is the flat ribbon width in helices and sheets, in Å.
	Width float32 `toml:"width" yaml:"width"`

	// Segments is the number of spline samples per residue.
	Segments int `toml:"segments" yaml:"segments"`
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		Parse: Parse{
			AltLoc: AltLocOccupancy,
			Model:  1,
			Bonds:  BondsHeuristicIfMissing,
		},
		Render: Render{
			Representation: Spheres,
			Material:       Standard,
			Background:     "#101418",
			Overlays:       Overlays{Atoms: true, Bonds: true, Backbone: true},
			Spheres:        SpheresParams{Detail: 2, RadiusScale: 0.3},
			Backbone:       BackboneStyle{Width: 2},
			Ribbon:         RibbonParams{Thickness: 0.4, Width: 1.6, Segments: 6},
		},
	}
}

// Validate returns an error describing every invalid field.
func (o *Options) Validate() error {
	var errs []error
	if o.Parse.Model < 1 {
		errs = append(errs, fmt.Errorf("model must be a positive integer, got %d", o.Parse.Model))
	}
	r := &o.Render
	if r.Spheres.Detail < 0 || r.Spheres.Detail > 5 {
		errs = append(errs, fmt.Errorf("sphere detail must be in 0-5, got %d", r.Spheres.Detail))
	}
	if r.Spheres.RadiusScale <= 0 {
		errs = append(errs, fmt.Errorf("radius scale must be positive, got %g", r.Spheres.RadiusScale))
	}
	if r.Ribbon.Thickness <= 0 {
		errs = append(errs, fmt.Errorf("ribbon thickness must be positive, got %g", r.Ribbon.Thickness))
	}
	if r.Ribbon.Width < r.Ribbon.Thickness {
		errs = append(errs, fmt.Errorf("ribbon width %g is less than its thickness %g", r.Ribbon.Width, r.Ribbon.Thickness))
	}
	if r.Ribbon.Segments < 1 || r.Ribbon.Segments > 32 {
		errs = append(errs, fmt.Errorf("ribbon segments must be in 1-32, got %d", r.Ribbon.Segments))
	}
	if _, err := ParseColor(r.Background); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BackgroundColor returns the parsed background color,
// falling back to black when it is invalid.
func (r *Render) BackgroundColor() color.RGBA {
	c, err := ParseColor(r.Background)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}

// ParseColor parses a #rrggbb or #rgb hex color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(expandShortHex(hex))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("options: invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

func expandShortHex(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}
