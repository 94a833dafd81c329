// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camfit

import (
	"testing"

	"cogentcore.org/molview/base/errors"
	"cogentcore.org/molview/frame"
	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/xyz"
	"github.com/stretchr/testify/assert"
)

// fakeTarget records the calls made to it.
type fakeTarget struct {
	content int
	fitErr  error
	panics  bool
	updates []xyz.Scopes
	fits    []xyz.Scopes
}

func (ft *fakeTarget) ContentLen() int { return ft.content }

func (ft *fakeTarget) UpdateBounds(scope xyz.Scopes) { ft.updates = append(ft.updates, scope) }

func (ft *fakeTarget) Fit(scope xyz.Scopes) error {
	if ft.panics {
		panic("degenerate bounds")
	}
	ft.fits = append(ft.fits, scope)
	return ft.fitErr
}

func setup() (*Controller, *frame.Scheduler, *fakeTarget) {
	fr := &frame.Scheduler{}
	ft := &fakeTarget{}
	return New(fr, ft), fr, ft
}

func TestInitialFit(t *testing.T) {
	c, fr, ft := setup()
	c.Mount()
	c.Mount()
	assert.Equal(t, PendingInitialFit, c.InitialState())
	assert.Empty(t, ft.fits, "deferred to the next frame")
	fr.Tick()
	assert.Equal(t, []xyz.Scopes{xyz.ScopeScene}, ft.updates, "bounds are refreshed before fitting")
	assert.Equal(t, []xyz.Scopes{xyz.ScopeScene}, ft.fits)
	assert.Equal(t, Fitted, c.InitialState())
	assert.Equal(t, 1, c.Fits())
	fr.Tick()
	assert.Len(t, ft.fits, 1, "one shot")
	assert.Empty(t, c.FittedSource(), "the initial fit is not a source fit")
}

func TestInitialFitErrorIgnored(t *testing.T) {
	c, fr, ft := setup()
	ft.fitErr = xyz.ErrEmptyBounds
	c.Mount()
	fr.Tick()
	fr.Tick()
	assert.Equal(t, Fitted, c.InitialState())
	assert.Equal(t, 1, c.Failures())
	assert.Len(t, ft.fits, 1, "not retried")
}

func TestReloadFit(t *testing.T) {
	c, fr, ft := setup()
	mol := &molecule.Molecule{}
	c.Observe(Deps{Source: "a.pdb", Loading: true})
	assert.Equal(t, Settled, c.ReloadState())
	assert.False(t, c.Pending(), "never while loading")

	c.Observe(Deps{Scene: mol, Source: "a.pdb"})
	assert.Equal(t, PendingReload, c.ReloadState())
	ft.content = 3
	fr.Tick()
	assert.Empty(t, ft.fits)
	fr.Tick()
	assert.Equal(t, []xyz.Scopes{xyz.ScopeContent}, ft.fits)
	assert.Equal(t, []xyz.Scopes{xyz.ScopeContent}, ft.updates)
	assert.Equal(t, Refitted, c.ReloadState())
	assert.Equal(t, "a.pdb", c.FittedSource())

	c.Observe(Deps{Scene: mol, Source: "a.pdb"})
	assert.Equal(t, Settled, c.ReloadState())
	for range 5 {
		fr.Tick()
	}
	assert.Len(t, ft.fits, 1)
}

func TestReloadPollsForContent(t *testing.T) {
	c, fr, ft := setup()
	c.Observe(Deps{Scene: &molecule.Molecule{}, Source: "a.pdb"})
	for range 6 {
		fr.Tick()
	}
	assert.Empty(t, ft.fits, "never fits empty content")
	assert.True(t, c.Pending())
	ft.content = 1
	fr.Tick()
	assert.Len(t, ft.fits, 1)
	assert.False(t, c.Pending())
}

func TestSameSourceNewSceneNoRefit(t *testing.T) {
	c, fr, ft := setup()
	ft.content = 1
	c.Observe(Deps{Scene: &molecule.Molecule{}, Source: "a.pdb"})
	fr.Tick()
	fr.Tick()
	assert.Len(t, ft.fits, 1)

	// a file reload gives a new scene for the same source
	c.Observe(Deps{Scene: &molecule.Molecule{}, Source: "a.pdb"})
	assert.False(t, c.Pending())
	fr.Tick()
	fr.Tick()
	assert.Len(t, ft.fits, 1)
}

func TestSupersededReloadCancelled(t *testing.T) {
	c, fr, ft := setup()
	ft.content = 1
	a, b := &molecule.Molecule{}, &molecule.Molecule{}
	c.Observe(Deps{Scene: a, Source: "a.pdb"})
	fr.Tick()
	c.Observe(Deps{Source: "b.pdb", Loading: true})
	assert.False(t, c.Pending())
	fr.Tick()
	fr.Tick()
	assert.Empty(t, ft.fits, "the stale fit never fires")

	c.Observe(Deps{Scene: b, Source: "b.pdb"})
	fr.Tick()
	fr.Tick()
	assert.Len(t, ft.fits, 1)
	assert.Equal(t, "b.pdb", c.FittedSource())
}

func TestReloadFitFailure(t *testing.T) {
	c, fr, ft := setup()
	ft.content = 1
	ft.fitErr = errors.New("boom")
	mol := &molecule.Molecule{}
	c.Observe(Deps{Scene: mol, Source: "a.pdb"})
	fr.Tick()
	fr.Tick()
	assert.Equal(t, Settled, c.ReloadState())
	assert.Empty(t, c.FittedSource())
	assert.Equal(t, 1, c.Failures())

	ft.fitErr = nil
	ft.panics = true
	c.Observe(Deps{Scene: &molecule.Molecule{}, Source: "a.pdb"})
	fr.Tick()
	assert.NotPanics(t, func() { fr.Tick() })
	assert.Equal(t, 2, c.Failures())
	assert.Equal(t, 0, c.Fits())
}

func TestUnmount(t *testing.T) {
	c, fr, ft := setup()
	ft.content = 1
	c.Mount()
	c.Observe(Deps{Scene: &molecule.Molecule{}, Source: "a.pdb"})
	c.Unmount()
	assert.False(t, c.Pending())
	assert.Equal(t, 0, fr.Len())
	fr.Tick()
	fr.Tick()
	assert.Empty(t, ft.fits)
	assert.Equal(t, Idle, c.InitialState())

	mol := &molecule.Molecule{}
	c.Observe(Deps{Scene: mol, Source: "a.pdb"})
	fr.Tick()
	fr.Tick()
	assert.Len(t, ft.fits, 1)
	c.Unmount()
	assert.Empty(t, c.FittedSource(), "a new session fits again")
}

func TestFitNow(t *testing.T) {
	c, _, ft := setup()
	assert.ErrorIs(t, c.FitNow(), xyz.ErrEmptyBounds)
	ft.content = 1
	assert.NoError(t, c.FitNow())
	assert.Equal(t, []xyz.Scopes{xyz.ScopeContent}, ft.fits)
}
