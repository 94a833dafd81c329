// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

// AtomParams are the atom cloud build parameters.
// The zero value is the explicit disabled state.
type AtomParams struct {
	Enabled     bool
	Detail      int
	RadiusScale float32
}

// BackboneParams are the backbone trace build parameters.
// The zero value is the explicit disabled state.
type BackboneParams struct {
	Enabled bool
	Width   float32
}

// SceneBuild is the subset of [Render] the overlay primitives are built from.
// It is comparable, and equal values must produce equal primitives.
type SceneBuild struct {
	Atoms    AtomParams
	Bonds    bool
	Backbone BackboneParams
}

// RibbonBuild is the subset of [Render] ribbons are built from.
// The zero value is the explicit disabled state.
type RibbonBuild struct {
	Enabled   bool
	Mode      Representations
	Material  MaterialKinds
	Thickness float32
	Width     float32
	Segments  int
}

// SceneBuild derives the overlay build options. Atoms and the backbone
// are only requested in the spheres representation; bonds are an overlay
// of every representation.
func (r *Render) SceneBuild() SceneBuild {
	sb := SceneBuild{Bonds: r.Overlays.Bonds}
	if r.Representation != Spheres {
		return sb
	}
	if r.Overlays.Atoms {
		sb.Atoms = AtomParams{Enabled: true, Detail: r.Spheres.Detail, RadiusScale: r.Spheres.RadiusScale}
	}
	if r.Overlays.Backbone {
		sb.Backbone = BackboneParams{Enabled: true, Width: r.Backbone.Width}
	}
	return sb
}

// RibbonBuild derives the ribbon build options, which are only enabled
// in the ribbon representations. The flat width only matters for flat
// ribbons, so it is left zero for tubes.
func (r *Render) RibbonBuild() RibbonBuild {
	if !r.Representation.IsRibbon() {
		return RibbonBuild{}
	}
	rb := RibbonBuild{
		Enabled:   true,
		Mode:      r.Representation,
		Material:  r.Material,
		Thickness: r.Ribbon.Thickness,
		Segments:  r.Ribbon.Segments,
	}
	if r.Representation == RibbonFlat {
		rb.Width = r.Ribbon.Width
	}
	return rb
}
