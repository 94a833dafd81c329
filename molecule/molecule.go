// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package molecule provides the immutable in-memory representation of a
// molecular structure and a reader for the PDB format.
package molecule

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// SecondaryStructures are the backbone conformations of a residue.
type SecondaryStructures int32

const (
	Coil SecondaryStructures = iota
	Helix
	Sheet
)

func (ss SecondaryStructures) String() string {
	switch ss {
	case Helix:
		return "helix"
	case Sheet:
		return "sheet"
	default:
		return "coil"
	}
}

// Atom is one atom record.
type Atom struct {
	Serial     int
	Name       string
	AltLoc     byte
	ResName    string
	Chain      string
	ResSeq     int
	ICode      byte
	Pos        mgl32.Vec3
	Occupancy  float32
	TempFactor float32
	Element    string
	Het        bool

	// Residue is the index of the residue in [Molecule.Residues].
	Residue int
}

// Bond connects atoms A < B by index.
type Bond struct {
	A, B int

	// Inferred is whether the bond was inferred from distances
	// rather than read from a CONECT record.
	Inferred bool
}

// Residue is a run of atoms with the same chain, sequence number
// and insertion code.
type Residue struct {
	Name  string
	Chain string
	Seq   int
	ICode byte
	Het   bool

	// Atoms are indexes into [Molecule.Atoms].
	Atoms []int

	// Trace is the index of the CA (or nucleic P) atom, or -1.
	Trace int

	SS SecondaryStructures
}

// Chain is a run of residues with the same chain identifier.
type Chain struct {
	ID string

	// Residues are indexes into [Molecule.Residues].
	Residues []int
}

// Molecule is a parsed structure. It is never modified after it is
// returned by a reader: a new load always produces a new Molecule.
type Molecule struct {

	// ID is unique among all molecules read by this process.
	ID uint64

	// Source is where the molecule was read from.
	Source string

	// Fingerprint is a hash of the bytes the molecule was read from.
	Fingerprint uint64

	// Title is the TITLE or HEADER text.
	Title string

	// Model is the model that was read.
	Model int

	// NumModels is the number of models in the file; 1 if there were
	// no MODEL records.
	NumModels int

	Atoms    []Atom
	Bonds    []Bond
	Residues []Residue
	Chains   []Chain
}

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// Element returns the element of atom i.
func (m *Molecule) Element(i int) Element {
	el, _ := ElementBySymbol(m.Atoms[i].Element)
	return el
}

// TraceAtoms returns, for each chain, the runs of consecutive trace
// atoms (CA or P) that are close enough to be connected.
func (m *Molecule) TraceAtoms() [][]int {
	var runs [][]int
	for _, ch := range m.Chains {
		var run []int
		prev := -1
		for _, ri := range ch.Residues {
			ti := m.Residues[ri].Trace
			if ti < 0 {
				continue
			}
			if prev >= 0 && m.Atoms[ti].Pos.Sub(m.Atoms[prev].Pos).Len() > traceGap(m.Atoms[ti].Name) {
				if len(run) > 1 {
					runs = append(runs, run)
				}
				run = nil
			}
			run = append(run, ti)
			prev = ti
		}
		if len(run) > 1 {
			runs = append(runs, run)
		}
	}
	return runs
}

// traceGap is the largest distance between consecutive trace atoms
// that are still considered connected.
func traceGap(name string) float32 {
	if name == "P" {
		return 7.5
	}
	return 4.2
}

// Summary counts the contents of a molecule.
type Summary struct {
	Chains, Residues, Atoms, HetAtoms, Bonds, InferredBonds, HelixResidues, SheetResidues int
}

// Summary returns the counts of the molecule contents.
func (m *Molecule) Summary() Summary {
	s := Summary{Chains: len(m.Chains), Residues: len(m.Residues), Atoms: len(m.Atoms), Bonds: len(m.Bonds)}
	for i := range m.Atoms {
		if m.Atoms[i].Het {
			s.HetAtoms++
		}
	}
	for _, b := range m.Bonds {
		if b.Inferred {
			s.InferredBonds++
		}
	}
	for i := range m.Residues {
		switch m.Residues[i].SS {
		case Helix:
			s.HelixResidues++
		case Sheet:
			s.SheetResidues++
		}
	}
	return s
}
