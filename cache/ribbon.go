// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"log/slog"

	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
)

// RibbonBuilder builds ribbon composites, returning nil when the
// molecule has no trace.
type RibbonBuilder interface {
	Ribbon(mol *molecule.Molecule, rb options.RibbonBuild) *xyz.Solid
}

type ribbonKey struct {
	mol *molecule.Molecule
	rb  options.RibbonBuild
}

// Ribbon holds the ribbon of the last [Ribbon.Build]. It is separate from
// [Cache] because ribbons are keyed on the representation rather than on
// the overlay flags.
type Ribbon struct {
	Builder RibbonBuilder

	last  ribbonKey
	built bool
	solid *xyz.Solid
}

// NewRibbon returns a new ribbon cache building with b.
func NewRibbon(b RibbonBuilder) *Ribbon {
	return &Ribbon{Builder: b}
}

// Build returns the ribbon for mol and rb, or nil if ribbons are
// disabled or absent. The previous ribbon, with all of its parts, is
// disposed when the inputs change.
func (r *Ribbon) Build(mol *molecule.Molecule, rb options.RibbonBuild) *xyz.Solid {
	k := ribbonKey{mol: mol, rb: rb}
	if r.built && r.last == k {
		return r.solid
	}
	r.Close()
	r.last, r.built = k, true
	if mol == nil || !rb.Enabled {
		return nil
	}
	r.solid = r.Builder.Ribbon(mol, rb)
	slog.Debug("cache: built ribbon", "molecule", mol.ID, "mode", rb.Mode, "absent", r.solid == nil)
	return r.solid
}

// Close disposes the held ribbon. The cache can be used again.
func (r *Ribbon) Close() {
	if r.solid != nil {
		r.solid.Dispose()
		r.solid = nil
	}
	r.built = false
}
