// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molecule

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTraceAtoms(t *testing.T) {
	mol := readTestPDB(t, "tri.pdb", parseOpts())
	assert.Equal(t, [][]int{{1, 5, 9}}, mol.TraceAtoms())

	gap := &Molecule{
		Atoms: []Atom{
			{Name: "CA", Element: "C", Pos: mgl32.Vec3{0, 0, 0}},
			{Name: "CA", Element: "C", Pos: mgl32.Vec3{3.8, 0, 0}},
			{Name: "CA", Element: "C", Pos: mgl32.Vec3{20, 0, 0}},
		},
		Residues: []Residue{{Trace: 0}, {Trace: 1}, {Trace: 2}},
		Chains:   []Chain{{ID: "A", Residues: []int{0, 1, 2}}},
	}
	assert.Equal(t, [][]int{{0, 1}}, gap.TraceAtoms(), "chain breaks split runs and singletons are dropped")
}

func TestElements(t *testing.T) {
	el, ok := ElementBySymbol("fe")
	assert.True(t, ok)
	assert.Equal(t, "Fe", el.Symbol)

	el, ok = ElementBySymbol("Xx")
	assert.False(t, ok)
	assert.Equal(t, Unknown, el)

	assert.Equal(t, "C", elementFromName(" CA ", false))
	assert.Equal(t, "Ca", elementFromName("CA  ", true))
	assert.Equal(t, "H", elementFromName("1HB ", false))
	assert.Equal(t, "X", elementFromName("    ", false))
}

func TestInferBondsEmpty(t *testing.T) {
	assert.Nil(t, inferBonds(nil, nil))
	assert.Nil(t, inferBonds([]Atom{{Element: "C"}}, nil))
	overlap := []Atom{{Element: "C", AltLoc: ' '}, {Element: "C", AltLoc: ' ', Pos: mgl32.Vec3{0.1, 0, 0}}}
	assert.Empty(t, inferBonds(overlap, map[[2]int]bool{}))
}
