// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/molview/cache"
	"cogentcore.org/molview/camfit"
	"cogentcore.org/molview/loader"
	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader loads sources from testdata files when finish is called,
// so that tests decide on which frame a load completes.
type fakeLoader struct {
	t         *testing.T
	files     map[string]string
	source    string
	po        options.Parse
	requested bool
	pending   bool
	state     loader.State
	loads     int
	closed    bool
}

func newFakeLoader(t *testing.T) *fakeLoader {
	return &fakeLoader{t: t, files: map[string]string{
		"model-A": "tri.pdb",
		"model-B": "models.pdb",
	}}
}

func (f *fakeLoader) Load(source string, po options.Parse) {
	if f.requested && source == f.source && po == f.po {
		return
	}
	f.requested = true
	f.source, f.po = source, po
	if source == "" {
		f.pending = false
		f.state = loader.State{}
		return
	}
	f.loads++
	f.pending = true
	f.state = loader.State{Loading: true}
}

// finish completes the pending load.
func (f *fakeLoader) finish() {
	f.t.Helper()
	require.True(f.t, f.pending, "no load pending")
	f.pending = false
	name, ok := f.files[f.source]
	if !ok {
		f.state = loader.State{Error: (&loader.NotFoundError{Path: f.source}).Error()}
		return
	}
	data, err := os.ReadFile(filepath.Join("..", "molecule", "testdata", name))
	require.NoError(f.t, err)
	mol, err := molecule.ParsePDB(f.source, data, f.po)
	require.NoError(f.t, err)
	f.state = loader.State{Scene: mol}
}

func (f *fakeLoader) Poll() bool          { return false }
func (f *fakeLoader) State() loader.State { return f.state }
func (f *fakeLoader) Close() error        { f.closed = true; return nil }

func newViewer(t *testing.T, source string) (*Viewer, *fakeLoader, *xyz.Pool) {
	fl := newFakeLoader(t)
	pool := &xyz.Pool{}
	opts := options.Defaults()
	opts.Source = source
	v := New(opts, fl, pool)
	return v, fl, pool
}

func steps(v *Viewer, n int) {
	for range n {
		v.Step()
	}
}

// loaded mounts v and steps it until its pending load has been shown
// and fitted.
func loaded(t *testing.T, v *Viewer, fl *fakeLoader) {
	t.Helper()
	v.Mount()
	v.Update()
	steps(v, 1)
	fl.finish()
	steps(v, camfit.ReloadDelay+1)
}

func kids(v *Viewer) []*xyz.Solid {
	return v.Scene.Content.Kids
}

func TestInitialLoad(t *testing.T) {
	v, fl, _ := newViewer(t, "  model-A ")
	defer v.Close()
	assert.Equal(t, "model-A", v.Options.Source)

	v.Mount()
	v.Update()
	f := v.Frame()
	assert.True(t, f.Loading)
	assert.Empty(t, f.Solids)

	steps(v, 1)
	assert.Equal(t, camfit.Fitted, v.fit.InitialState())
	assert.Equal(t, 0, v.fit.Fits(), "nothing to fit while loading")

	fl.finish()
	steps(v, 1)
	require.Len(t, kids(v), 3)
	assert.Equal(t, camfit.PendingReload, v.fit.ReloadState())
	before := v.Scene.Camera

	steps(v, camfit.ReloadDelay)
	assert.Equal(t, 1, v.fit.Fits())
	assert.Equal(t, "model-A", v.fit.FittedSource())
	assert.NotEqual(t, before, v.Scene.Camera)

	steps(v, 5)
	assert.Equal(t, 1, v.fit.Fits(), "one fit per load")

	f = v.Frame()
	assert.False(t, f.Loading)
	assert.Empty(t, f.Error)
	assert.Equal(t, "TRIALANINE WITH A ZINC ION", f.Title)
	assert.Len(t, f.Solids, 3)
}

func TestSwitchToRibbon(t *testing.T) {
	v, fl, pool := newViewer(t, "model-A")
	defer v.Close()
	loaded(t, v, fl)
	old := kids(v)
	require.Len(t, old, 3)
	atoms, bonds, backbone := old[0], old[1], old[2]
	fits := v.fit.Fits()

	r := v.Options.Render
	r.Representation = options.RibbonTube
	v.SetRender(r)
	steps(v, 5)

	now := kids(v)
	require.Len(t, now, 2)
	assert.Equal(t, xyz.RibbonMesh, now[0].Kind)
	assert.Same(t, bonds, now[1], "bonds are kept across representations")
	assert.True(t, atoms.IsDisposed())
	assert.True(t, backbone.IsDisposed())
	assert.False(t, bonds.IsDisposed())
	assert.Equal(t, fits, v.fit.Fits(), "representation changes never refit")
	assert.Equal(t, 1, fl.loads)

	r.Representation = options.Spheres
	v.SetRender(r)
	v.Update()
	assert.True(t, now[0].IsDisposed())
	assert.Len(t, kids(v), 3)

	require.NoError(t, v.Close())
	assert.Equal(t, 0, pool.Live())
	assert.Equal(t, 0, pool.DoubleReleases())
}

func TestNewSource(t *testing.T) {
	v, fl, pool := newViewer(t, "model-A")
	defer v.Close()
	loaded(t, v, fl)
	old := kids(v)
	fits := v.fit.Fits()

	v.SetSource("model-B")
	v.Update()
	assert.True(t, v.Frame().Loading)
	assert.Empty(t, kids(v), "the previous molecule is cleared while loading")
	for _, sld := range old {
		assert.True(t, sld.IsDisposed())
	}
	steps(v, 3)
	assert.Equal(t, fits, v.fit.Fits())

	fl.finish()
	steps(v, camfit.ReloadDelay+1)
	assert.Equal(t, fits+1, v.fit.Fits())
	assert.Equal(t, "model-B", v.fit.FittedSource())
	require.Len(t, kids(v), 2, "model-B has no bonds")

	live := 0
	for _, sld := range kids(v) {
		live += 2 * len(sld.Meshes())
	}
	assert.Equal(t, live, pool.Live(), "only the shown primitives hold resources")
}

func TestLoadError(t *testing.T) {
	v, fl, pool := newViewer(t, "model-A")
	defer v.Close()
	loaded(t, v, fl)
	fits := v.fit.Fits()

	v.SetSource("missing.pdb")
	v.Update()
	fl.finish()
	steps(v, 5)
	f := v.Frame()
	assert.Equal(t, "missing.pdb not found", f.Error)
	assert.False(t, f.Loading)
	assert.Empty(t, f.Solids)
	assert.Equal(t, 0, pool.Live())
	assert.Equal(t, fits, v.fit.Fits())
}

func TestOptionChangesDoNotRefit(t *testing.T) {
	v, fl, _ := newViewer(t, "model-A")
	defer v.Close()
	loaded(t, v, fl)
	fits := v.fit.Fits()

	r := v.Options.Render
	r.Material = options.Lambert
	r.Background = "#fff"
	r.Overlays.Backbone = false
	r.Spheres.Detail = 4
	v.SetRender(r)
	steps(v, 5)
	assert.Len(t, kids(v), 2)
	assert.Equal(t, fits, v.fit.Fits())
	assert.Equal(t, uint8(255), v.Frame().Background.R)

	p := v.Options.Parse
	p.Bonds = options.BondsConect
	v.SetParse(p)
	v.Update()
	fl.finish()
	steps(v, 5)
	assert.Equal(t, 2, fl.loads, "parse options reload the source")
	assert.Equal(t, fits, v.fit.Fits(), "reloading the same source does not refit")
}

func TestMountThenStep(t *testing.T) {
	v, _, _ := newViewer(t, "")
	defer v.Close()
	v.Axes = true
	v.Mount()
	assert.Equal(t, camfit.Idle, v.fit.InitialState(), "nothing is requested before the first update")

	steps(v, 1)
	assert.Equal(t, 1, v.Scene.Helpers.Len())
	assert.Equal(t, camfit.PendingInitialFit, v.fit.InitialState())

	steps(v, 2)
	assert.Equal(t, camfit.Fitted, v.fit.InitialState())
	assert.Equal(t, 1, v.fit.Fits(), "the initial fit sees the committed frame")
	assert.Equal(t, 0, v.fit.Failures())
}

func TestFitNow(t *testing.T) {
	v, fl, _ := newViewer(t, "model-A")
	defer v.Close()
	v.Mount()
	v.Update()
	assert.ErrorIs(t, v.FitNow(), xyz.ErrEmptyBounds)
	steps(v, 1)
	fl.finish()
	v.Update()
	require.NoError(t, v.FitNow())
}

func TestAxes(t *testing.T) {
	v, _, pool := newViewer(t, "")
	v.Axes = true
	v.Update()
	require.Equal(t, 1, v.Scene.Helpers.Len())
	axes := v.Scene.Helpers.Kids[0]
	v.Update()
	assert.Same(t, axes, v.Scene.Helpers.Kids[0])
	assert.Len(t, v.Frame().Solids, 1)

	v.Axes = false
	v.Update()
	assert.Equal(t, 0, v.Scene.Helpers.Len())
	assert.True(t, axes.IsDisposed())
	require.NoError(t, v.Close())
	assert.Equal(t, 0, pool.Live())
}

func TestClose(t *testing.T) {
	v, fl, pool := newViewer(t, "model-A")
	v.Axes = true
	loaded(t, v, fl)
	assert.Positive(t, pool.Live())
	require.NoError(t, v.Close())
	assert.True(t, fl.closed)
	assert.Equal(t, 0, pool.Live())
	assert.False(t, v.fit.Pending())
	assert.Equal(t, 0, v.Scene.ContentLen())
}

func TestCompose(t *testing.T) {
	a := xyz.NewSolid("atoms", xyz.AtomCloud)
	b := xyz.NewSolid("bonds", xyz.BondSegments)
	bb := xyz.NewSolid("backbone", xyz.BackboneTrace)
	rb := xyz.NewSolid("ribbon", xyz.RibbonMesh)
	set := cache.Set{Atoms: a, Bonds: b, Backbone: bb}

	assert.Equal(t, []*xyz.Solid{a, b, bb}, Compose(options.Spheres, set, nil))
	assert.Equal(t, []*xyz.Solid{rb, b}, Compose(options.RibbonTube, set, rb))
	assert.Equal(t, []*xyz.Solid{b}, Compose(options.RibbonFlat, set, nil))
	assert.Equal(t, []*xyz.Solid{a}, Compose(options.Spheres, cache.Set{Atoms: a}, rb))
	assert.Empty(t, Compose(options.Spheres, cache.Set{}, nil))
}
