// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/molmesh"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counting wraps the real builders and counts their calls.
type counting struct {
	molmesh.Builder
	atoms, bonds, backbone, ribbon int
}

func (b *counting) Atoms(mol *molecule.Molecule, p options.AtomParams) *xyz.Solid {
	b.atoms++
	return b.Builder.Atoms(mol, p)
}

func (b *counting) Bonds(mol *molecule.Molecule) *xyz.Solid {
	b.bonds++
	return b.Builder.Bonds(mol)
}

func (b *counting) Backbone(mol *molecule.Molecule, p options.BackboneParams) *xyz.Solid {
	b.backbone++
	return b.Builder.Backbone(mol, p)
}

func (b *counting) Ribbon(mol *molecule.Molecule, rb options.RibbonBuild) *xyz.Solid {
	b.ribbon++
	return b.Builder.Ribbon(mol, rb)
}

func newCounting() (*counting, *xyz.Pool) {
	pool := &xyz.Pool{}
	return &counting{Builder: molmesh.Builder{Pool: pool}}, pool
}

func loadMolecule(t *testing.T, name string) *molecule.Molecule {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "molecule", "testdata", name))
	require.NoError(t, err)
	mol, err := molecule.ParsePDB(name, data, options.Defaults().Parse)
	require.NoError(t, err)
	return mol
}

func spheresBuild() options.SceneBuild {
	r := options.Defaults().Render
	return r.SceneBuild()
}

func TestBuildAll(t *testing.T) {
	b, pool := newCounting()
	c := New(b)
	mol := loadMolecule(t, "tri.pdb")

	set := c.Build(mol, spheresBuild())
	require.NotNil(t, set.Atoms)
	require.NotNil(t, set.Bonds)
	require.NotNil(t, set.Backbone)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []*xyz.Solid{set.Atoms, set.Bonds, set.Backbone}, set.Solids())

	mt := set.Atoms.Material
	assert.Equal(t, options.Basic, mt.Kind, "atoms are always flat")
	assert.Equal(t, White, mt.Color)
	assert.False(t, mt.VertexColors)
	assert.True(t, set.Bonds.Material.VertexColors, "only atoms are flattened")

	c.Close()
	assert.Equal(t, 0, pool.Live())
	assert.Equal(t, 0, pool.DoubleReleases())
}

func TestBuildIdempotent(t *testing.T) {
	b, pool := newCounting()
	c := New(b)
	mol := loadMolecule(t, "tri.pdb")
	first := c.Build(mol, spheresBuild())
	allocs := pool.Allocated()
	second := c.Build(mol, spheresBuild())
	assert.Equal(t, first, second)
	assert.Equal(t, allocs, pool.Allocated())
	assert.Equal(t, 0, pool.Released())
	assert.Equal(t, 1, b.atoms)
	assert.Equal(t, 1, b.bonds)
	assert.Equal(t, 1, b.backbone)
}

func TestBuildKeepsUnchangedKinds(t *testing.T) {
	b, pool := newCounting()
	c := New(b)
	mol := loadMolecule(t, "tri.pdb")
	sb := spheresBuild()
	first := c.Build(mol, sb)

	sb.Atoms.RadiusScale = 0.5
	second := c.Build(mol, sb)
	assert.NotSame(t, first.Atoms, second.Atoms)
	assert.True(t, first.Atoms.IsDisposed())
	assert.Same(t, first.Bonds, second.Bonds)
	assert.Same(t, first.Backbone, second.Backbone)
	assert.False(t, first.Bonds.IsDisposed())
	assert.False(t, first.Backbone.IsDisposed())
	assert.Equal(t, 2, b.atoms)
	assert.Equal(t, 1, b.bonds)
	assert.Equal(t, 1, b.backbone)

	sb.Bonds = false
	third := c.Build(mol, sb)
	assert.Nil(t, third.Bonds)
	assert.True(t, first.Bonds.IsDisposed())
	assert.Same(t, second.Atoms, third.Atoms)

	c.Close()
	assert.Equal(t, 0, pool.Live())
	assert.Equal(t, 0, pool.DoubleReleases())
}

func TestBuildNewMolecule(t *testing.T) {
	b, pool := newCounting()
	c := New(b)
	first := c.Build(loadMolecule(t, "tri.pdb"), spheresBuild())
	second := c.Build(loadMolecule(t, "tri.pdb"), spheresBuild())
	for _, sld := range first.Solids() {
		assert.True(t, sld.IsDisposed(), "%v of the old molecule", sld.Kind)
	}
	assert.Equal(t, 3, second.Len())
	assert.Equal(t, 2, b.atoms)
	c.Close()
	assert.Equal(t, 0, pool.Live())
}

func TestBuildNil(t *testing.T) {
	b, pool := newCounting()
	c := New(b)
	assert.Equal(t, Set{}, c.Build(nil, spheresBuild()))
	assert.Equal(t, 0, b.atoms)

	first := c.Build(loadMolecule(t, "tri.pdb"), spheresBuild())
	assert.Equal(t, Set{}, c.Build(nil, spheresBuild()))
	for _, sld := range first.Solids() {
		assert.True(t, sld.IsDisposed())
	}
	assert.Equal(t, 0, pool.Live())
	c.Close()
	assert.Equal(t, 0, pool.DoubleReleases())
}

func TestBuildAbsentIsMemoized(t *testing.T) {
	b, _ := newCounting()
	c := New(b)
	po := options.Defaults().Parse
	po.Bonds = options.BondsConect
	data, err := os.ReadFile(filepath.Join("..", "molecule", "testdata", "tri.pdb"))
	require.NoError(t, err)
	mol, err := molecule.ParsePDB("tri.pdb", data, po)
	require.NoError(t, err)

	sb := spheresBuild()
	set := c.Build(mol, sb)
	assert.Nil(t, set.Bonds)
	assert.Equal(t, 2, set.Len())
	sb.Atoms.Detail = 3
	set = c.Build(mol, sb)
	assert.Nil(t, set.Bonds)
	assert.Equal(t, 1, b.bonds, "an absent primitive is not rebuilt while its key holds")
	c.Close()
}

func TestRibbon(t *testing.T) {
	b, pool := newCounting()
	r := NewRibbon(b)
	mol := loadMolecule(t, "tri.pdb")
	rend := options.Defaults().Render

	assert.Nil(t, r.Build(mol, rend.RibbonBuild()), "disabled in spheres")
	assert.Equal(t, 0, b.ribbon)

	rend.Representation = options.RibbonTube
	tube := r.Build(mol, rend.RibbonBuild())
	require.NotNil(t, tube)
	assert.Same(t, tube, r.Build(mol, rend.RibbonBuild()))
	assert.Equal(t, 1, b.ribbon)

	rend.Ribbon.Width = 3
	assert.Same(t, tube, r.Build(mol, rend.RibbonBuild()), "tubes ignore the flat width")

	rend.Representation = options.RibbonFlat
	flat := r.Build(mol, rend.RibbonBuild())
	require.NotNil(t, flat)
	assert.True(t, tube.IsDisposed())
	for _, kid := range tube.Kids {
		assert.True(t, kid.Mesh.IsDisposed())
		assert.True(t, kid.Material.IsDisposed())
	}

	rend.Material = options.Basic
	basic := r.Build(mol, rend.RibbonBuild())
	assert.NotSame(t, flat, basic)
	assert.True(t, flat.IsDisposed())

	assert.Nil(t, r.Build(nil, rend.RibbonBuild()))
	assert.True(t, basic.IsDisposed())
	assert.Equal(t, 0, pool.Live())
	r.Close()
	assert.Equal(t, 0, pool.DoubleReleases())
}
