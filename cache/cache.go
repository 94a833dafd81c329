// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache memoizes the renderable primitives of a molecule and owns
// their resources: a primitive is rebuilt only when the inputs it was built
// from change, and is disposed exactly once, when it is replaced, removed,
// or the cache is closed.
package cache

import (
	"fmt"
	"image/color"
	"log/slog"

	"cogentcore.org/molview/base/plan"
	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
)

// Builder builds the overlay primitives. Each method returns nil when
// there is nothing to show, which is not an error.
type Builder interface {
	Atoms(mol *molecule.Molecule, p options.AtomParams) *xyz.Solid
	Bonds(mol *molecule.Molecule) *xyz.Solid
	Backbone(mol *molecule.Molecule, p options.BackboneParams) *xyz.Solid
}

// White is the uniform color of atom primitives.
var White = color.RGBA{0xff, 0xff, 0xff, 0xff}

// Set is the current set of overlay primitives; absent kinds are nil.
// The solids remain owned by the [Cache] that returned them.
type Set struct {
	Atoms    *xyz.Solid
	Bonds    *xyz.Solid
	Backbone *xyz.Solid
}

// Solids returns the non-nil primitives in atoms, bonds, backbone order.
func (s Set) Solids() []*xyz.Solid {
	var all []*xyz.Solid
	for _, sld := range []*xyz.Solid{s.Atoms, s.Bonds, s.Backbone} {
		if sld != nil {
			all = append(all, sld)
		}
	}
	return all
}

// Len returns the number of non-nil primitives.
func (s Set) Len() int {
	return len(s.Solids())
}

// entry is one memoized primitive; solid is nil when the builder
// had nothing to show for the key.
type entry struct {
	name  string
	kind  xyz.Kinds
	solid *xyz.Solid
}

type key struct {
	mol *molecule.Molecule
	sb  options.SceneBuild
}

// Cache holds the overlay primitives of the last [Cache.Build].
// It must only be used from the frame goroutine.
type Cache struct {
	Builder Builder

	entries []*entry
	last    key
	built   bool
	set     Set
}

// New returns a new cache building with b.
func New(b Builder) *Cache {
	return &Cache{Builder: b}
}

// target is a wanted primitive, named by everything it is built from.
type target struct {
	name  string
	kind  xyz.Kinds
	build func() *xyz.Solid
}

// Build returns the primitives for mol and sb, rebuilding only the kinds
// whose inputs changed since the last call. Primitives that are no longer
// wanted are disposed before any new ones are built. A nil molecule
// yields an empty set.
func (c *Cache) Build(mol *molecule.Molecule, sb options.SceneBuild) Set {
	k := key{mol: mol, sb: sb}
	if c.built && c.last == k {
		return c.set
	}
	var targets []target
	if mol != nil {
		if sb.Atoms.Enabled {
			targets = append(targets, target{fmt.Sprintf("atoms:%d:%v", mol.ID, sb.Atoms), xyz.AtomCloud, func() *xyz.Solid {
				return flatten(c.Builder.Atoms(mol, sb.Atoms), White)
			}})
		}
		if sb.Bonds {
			targets = append(targets, target{fmt.Sprintf("bonds:%d", mol.ID), xyz.BondSegments, func() *xyz.Solid {
				return c.Builder.Bonds(mol)
			}})
		}
		if sb.Backbone.Enabled {
			targets = append(targets, target{fmt.Sprintf("backbone:%d:%v", mol.ID, sb.Backbone), xyz.BackboneTrace, func() *xyz.Solid {
				return c.Builder.Backbone(mol, sb.Backbone)
			}})
		}
	}
	c.entries, _ = plan.Update(c.entries, len(targets),
		func(i int) string { return targets[i].name },
		func(e *entry) string { return e.name },
		func(name string, i int) *entry {
			e := &entry{name: name, kind: targets[i].kind, solid: targets[i].build()}
			slog.Debug("cache: built", "primitive", name, "absent", e.solid == nil)
			return e
		},
		disposeEntry)
	c.last, c.built = k, true
	c.set = Set{}
	for _, e := range c.entries {
		switch e.kind {
		case xyz.AtomCloud:
			c.set.Atoms = e.solid
		case xyz.BondSegments:
			c.set.Bonds = e.solid
		case xyz.BackboneTrace:
			c.set.Backbone = e.solid
		}
	}
	return c.set
}

// Close disposes every held primitive. The cache can be used again.
func (c *Cache) Close() {
	for i := len(c.entries) - 1; i >= 0; i-- {
		disposeEntry(c.entries[i])
	}
	c.entries = nil
	c.set = Set{}
	c.built = false
}

func disposeEntry(e *entry) {
	if e.solid == nil {
		return
	}
	slog.Debug("cache: disposed", "primitive", e.name)
	e.solid.Dispose()
}

// flatten gives every material in sld the same unlit color c,
// suppressing per-vertex and per-instance colors.
func flatten(sld *xyz.Solid, c color.RGBA) *xyz.Solid {
	if sld == nil {
		return nil
	}
	sld.WalkDown(func(s *xyz.Solid) bool {
		if s.Material != nil {
			s.Material.SetFlat(c)
		}
		return true
	})
	return sld
}
