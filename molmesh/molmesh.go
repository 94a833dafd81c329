// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package molmesh builds the renderable solids of a molecule: an instanced
// atom cloud, split-colored bond segments, a backbone trace and ribbons.
// Every builder returns nil, rather than an error, when the molecule has
// nothing to show for that kind.
package molmesh

import (
	"fmt"
	"image/color"

	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
	"github.com/go-gl/mathgl/mgl32"
)

// Builder makes solids whose resources are allocated from Pool.
type Builder struct {

	// Pool accounts for the built meshes and materials;
	// nil uses [xyz.DefaultPool].
	Pool *xyz.Pool
}

// chainColors are the backbone colors cycled through by chain.
var chainColors = []color.RGBA{
	{0x4e, 0x9a, 0xf1, 0xff},
	{0xf1, 0x9a, 0x4e, 0xff},
	{0x6c, 0xd0, 0x7a, 0xff},
	{0xd0, 0x6c, 0xc4, 0xff},
	{0xe8, 0xd8, 0x5a, 0xff},
	{0x5a, 0xd8, 0xe8, 0xff},
}

// SphereSegments returns the number of sphere segments for a detail level.
func SphereSegments(detail int) int {
	return 6 + 4*max(detail, 0)
}

// Atoms returns a sphere instanced at every atom, scaled by its van der
// Waals radius times p.RadiusScale and colored by element.
func (b *Builder) Atoms(mol *molecule.Molecule, p options.AtomParams) *xyz.Solid {
	if mol == nil || len(mol.Atoms) == 0 || !p.Enabled {
		return nil
	}
	ms := xyz.NewMesh(b.Pool, "atoms", xyz.Triangles)
	segs := SphereSegments(p.Detail)
	AddSphere(ms, segs, segs)
	ms.Instances = make([]xyz.Instance, len(mol.Atoms))
	for i := range mol.Atoms {
		el := mol.Element(i)
		ms.Instances[i] = xyz.Instance{Pos: mol.Atoms[i].Pos, Radius: el.VdW * p.RadiusScale, Color: el.Color}
	}
	mt := xyz.NewMaterial(b.Pool, options.Standard)
	mt.VertexColors = true
	return xyz.NewSolid("atoms", xyz.AtomCloud).SetMesh(ms, mt)
}

// Bonds returns a line segment per bond, split at the midpoint so that
// each half has the color of its atom.
func (b *Builder) Bonds(mol *molecule.Molecule) *xyz.Solid {
	if mol == nil || len(mol.Bonds) == 0 {
		return nil
	}
	ms := xyz.NewMesh(b.Pool, "bonds", xyz.Lines)
	for _, bd := range mol.Bonds {
		pa, pb := mol.Atoms[bd.A].Pos, mol.Atoms[bd.B].Pos
		mid := pa.Add(pb).Mul(0.5)
		ca, cb := mol.Element(bd.A).Color, mol.Element(bd.B).Color
		for _, half := range [2]struct {
			from, to mgl32.Vec3
			c        color.RGBA
		}{{pa, mid, ca}, {mid, pb, cb}} {
			i := ms.AddVertex(half.from, mgl32.Vec3{})
			j := ms.AddVertex(half.to, mgl32.Vec3{})
			ms.AddColor(half.c)
			ms.AddColor(half.c)
			ms.Index = append(ms.Index, i, j)
		}
	}
	mt := xyz.NewMaterial(b.Pool, options.Basic)
	mt.VertexColors = true
	return xyz.NewSolid("bonds", xyz.BondSegments).SetMesh(ms, mt)
}

// Backbone returns lines connecting consecutive trace atoms of each
// chain, colored by chain.
func (b *Builder) Backbone(mol *molecule.Molecule, p options.BackboneParams) *xyz.Solid {
	if mol == nil || !p.Enabled {
		return nil
	}
	runs := mol.TraceAtoms()
	if len(runs) == 0 {
		return nil
	}
	chainIndex := map[string]int{}
	for i, ch := range mol.Chains {
		if _, ok := chainIndex[ch.ID]; !ok {
			chainIndex[ch.ID] = i
		}
	}
	ms := xyz.NewMesh(b.Pool, "backbone", xyz.Lines)
	for _, run := range runs {
		c := chainColors[chainIndex[mol.Atoms[run[0]].Chain]%len(chainColors)]
		prev := uint32(0)
		for k, ai := range run {
			idx := ms.AddVertex(mol.Atoms[ai].Pos, mgl32.Vec3{})
			ms.AddColor(c)
			if k > 0 {
				ms.Index = append(ms.Index, prev, idx)
			}
			prev = idx
		}
	}
	mt := xyz.NewMaterial(b.Pool, options.Basic)
	mt.VertexColors = true
	mt.LineWidth = p.Width
	return xyz.NewSolid("backbone", xyz.BackboneTrace).SetMesh(ms, mt)
}

// Axes returns a helper with red, green and blue lines of the given
// length along the x, y and z axes.
func (b *Builder) Axes(length float32) *xyz.Solid {
	ms := xyz.NewMesh(b.Pool, "axes", xyz.Lines)
	for i, c := range []color.RGBA{{0xff, 0x40, 0x40, 0xff}, {0x40, 0xff, 0x40, 0xff}, {0x40, 0x80, 0xff, 0xff}} {
		var end mgl32.Vec3
		end[i] = length
		o := ms.AddVertex(mgl32.Vec3{}, mgl32.Vec3{})
		e := ms.AddVertex(end, mgl32.Vec3{})
		ms.AddColor(c)
		ms.AddColor(c)
		ms.Index = append(ms.Index, o, e)
	}
	mt := xyz.NewMaterial(b.Pool, options.Basic)
	mt.VertexColors = true
	return xyz.NewSolid(fmt.Sprintf("axes-%g", length), xyz.Helper).SetMesh(ms, mt)
}
