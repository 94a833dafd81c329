// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molecule

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/molview/options"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestPDB(t *testing.T, name string, po options.Parse) *Molecule {
	t.Helper()
	fn := filepath.Join("testdata", name)
	f, err := os.Open(fn)
	require.NoError(t, err)
	defer f.Close()
	mol, err := ReadPDB(fn, f, po)
	require.NoError(t, err)
	return mol
}

func parseOpts() options.Parse {
	return options.Defaults().Parse
}

func TestReadPDB(t *testing.T) {
	mol := readTestPDB(t, "tri.pdb", parseOpts())
	assert.Equal(t, "TRIALANINE WITH A ZINC ION", mol.Title)
	assert.Equal(t, 1, mol.NumModels)
	require.Len(t, mol.Atoms, 13)
	assert.Len(t, mol.Residues, 4)
	require.Len(t, mol.Chains, 2)
	assert.Equal(t, "A", mol.Chains[0].ID)
	assert.Equal(t, "B", mol.Chains[1].ID)

	ca := mol.Atoms[1]
	assert.Equal(t, "CA", ca.Name)
	assert.Equal(t, "C", ca.Element)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, ca.Pos)
	assert.Equal(t, "C", mol.Atoms[5].Element, "inferred from the atom name")
	assert.Equal(t, "N", mol.Atoms[4].Element)

	zn := mol.Atoms[12]
	assert.True(t, zn.Het)
	assert.Equal(t, "Zn", zn.Element)
	assert.Equal(t, 3, zn.Residue)

	sum := mol.Summary()
	assert.Equal(t, 1, sum.HetAtoms)
	assert.Equal(t, 3, sum.HelixResidues)
	assert.Equal(t, 0, sum.SheetResidues)
	assert.Equal(t, Coil, mol.Residues[3].SS)
}

func TestHeuristicBonds(t *testing.T) {
	mol := readTestPDB(t, "tri.pdb", parseOpts())
	// three N-CA, CA-C, C=O per residue plus two peptide bonds
	require.Len(t, mol.Bonds, 11)
	for _, b := range mol.Bonds {
		assert.True(t, b.Inferred)
		assert.Less(t, b.A, b.B)
		assert.NotEqual(t, 12, b.B, "the ion is isolated")
	}
	assert.Contains(t, mol.Bonds, Bond{A: 2, B: 4, Inferred: true}, "peptide bond")
	assert.NotContains(t, mol.Bonds, Bond{A: 1, B: 3, Inferred: true})
}

func TestBondPolicies(t *testing.T) {
	po := parseOpts()
	po.Bonds = options.BondsConect
	mol := readTestPDB(t, "conect.pdb", po)
	assert.Equal(t, []Bond{{A: 0, B: 1}}, mol.Bonds, "duplicate CONECT records collapse")

	po.Bonds = options.BondsHeuristicIfMissing
	mol = readTestPDB(t, "conect.pdb", po)
	assert.Equal(t, []Bond{{A: 0, B: 1}}, mol.Bonds)

	po.Bonds = options.BondsConectHeuristic
	mol = readTestPDB(t, "conect.pdb", po)
	assert.Equal(t, []Bond{{A: 0, B: 1}, {A: 1, B: 2, Inferred: true}}, mol.Bonds)
	assert.Equal(t, 1, mol.Summary().InferredBonds)

	po.Bonds = options.BondsConect
	mol = readTestPDB(t, "tri.pdb", po)
	assert.Empty(t, mol.Bonds)
}

func TestModels(t *testing.T) {
	po := parseOpts()
	mol := readTestPDB(t, "models.pdb", po)
	assert.Equal(t, 2, mol.NumModels)
	assert.Equal(t, float32(0), mol.Atoms[0].Pos.X())

	po.Model = 2
	mol = readTestPDB(t, "models.pdb", po)
	assert.Equal(t, 2, mol.Model)
	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, float32(10), mol.Atoms[0].Pos.X())

	po.Model = 3
	data, err := os.ReadFile(filepath.Join("testdata", "models.pdb"))
	require.NoError(t, err)
	_, err = ParsePDB("models.pdb", data, po)
	assert.ErrorContains(t, err, "model 3 not found")

	po.Model = 0
	_, err = ParsePDB("models.pdb", data, po)
	assert.Error(t, err)
}

func TestAltLocs(t *testing.T) {
	po := parseOpts()
	mol := readTestPDB(t, "altloc.pdb", po)
	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, byte('B'), mol.Atoms[1].AltLoc, "highest occupancy wins")
	assert.Len(t, mol.Bonds, 1)

	po.AltLoc = options.AltLocAll
	mol = readTestPDB(t, "altloc.pdb", po)
	require.Len(t, mol.Atoms, 3)
	assert.Equal(t, 1, mol.Residues[0].Trace)
	assert.Equal(t, []Bond{{A: 0, B: 1, Inferred: true}, {A: 0, B: 2, Inferred: true}}, mol.Bonds,
		"no bonds between different conformers")
}

func TestParseErrors(t *testing.T) {
	_, err := ParsePDB("empty", []byte("HEADER    NOTHING\nEND\n"), parseOpts())
	assert.ErrorIs(t, err, ErrNoAtoms)

	bad := "ATOM      1  CA  ALA A   1       x.000   0.000   0.000  1.00 10.00           C\n"
	_, err = ParsePDB("bad", []byte(bad), parseOpts())
	assert.ErrorContains(t, err, "line 1")
}

func TestIdentity(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "tri.pdb"))
	require.NoError(t, err)
	a, err := ParsePDB("tri", data, parseOpts())
	require.NoError(t, err)
	b, err := ParsePDB("tri", data, parseOpts())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "every parse is a new molecule")
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}
