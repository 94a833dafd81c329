// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValid(t *testing.T) {
	o := Defaults()
	assert.NoError(t, o.Validate())
}

func TestValidate(t *testing.T) {
	o := Defaults()
	o.Parse.Model = 0
	o.Render.Spheres.Detail = 9
	o.Render.Background = "blue-ish"
	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
	assert.Contains(t, err.Error(), "detail")
	assert.Contains(t, err.Error(), "blue-ish")
}

func TestSceneBuildGating(t *testing.T) {
	r := Defaults().Render
	sb := r.SceneBuild()
	assert.True(t, sb.Atoms.Enabled)
	assert.True(t, sb.Bonds)
	assert.True(t, sb.Backbone.Enabled)
	assert.Equal(t, r.Spheres.Detail, sb.Atoms.Detail)

	r.Representation = RibbonTube
	sb = r.SceneBuild()
	assert.Equal(t, AtomParams{}, sb.Atoms)
	assert.Equal(t, BackboneParams{}, sb.Backbone)
	assert.True(t, sb.Bonds, "bonds are an overlay of every representation")
}

func TestSceneBuildOffIsNormalized(t *testing.T) {
	r := Defaults().Render
	r.Overlays.Atoms = false
	a := r.SceneBuild()
	r.Spheres.Detail = 4
	r.Spheres.RadiusScale = 1
	b := r.SceneBuild()
	assert.Equal(t, a, b, "parameters of a disabled primitive must not change the key")
}

func TestRibbonBuild(t *testing.T) {
	r := Defaults().Render
	assert.Equal(t, RibbonBuild{}, r.RibbonBuild())

	r.Representation = RibbonTube
	tube := r.RibbonBuild()
	assert.True(t, tube.Enabled)
	assert.Equal(t, RibbonTube, tube.Mode)
	assert.Zero(t, tube.Width)

	r.Overlays.Atoms = false
	assert.Equal(t, tube, r.RibbonBuild(), "overlay flags do not gate ribbons")

	r.Representation = RibbonFlat
	assert.Equal(t, r.Ribbon.Width, r.RibbonBuild().Width)
}

func TestEnumText(t *testing.T) {
	var rep Representations
	require.NoError(t, rep.UnmarshalText([]byte("Ribbon-Flat")))
	assert.Equal(t, RibbonFlat, rep)
	assert.Error(t, rep.UnmarshalText([]byte("cartoon")))

	var bp BondPolicies
	require.NoError(t, bp.UnmarshalText([]byte("conect+heuristic")))
	assert.Equal(t, BondsConectHeuristic, bp)
	assert.Equal(t, "heuristic-if-missing", BondsHeuristicIfMissing.String())
	assert.Equal(t, "7", Representations(7).String())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)

	r := Render{Background: "nope"}
	assert.Equal(t, color.RGBA{A: 255}, r.BackgroundColor())
}
