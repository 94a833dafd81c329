// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molecule

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/molview/base/errors"
	"cogentcore.org/molview/options"
	"github.com/twmb/murmur3"
)

// ErrNoAtoms is returned for input without any atom records.
var ErrNoAtoms = errors.New("molecule: no atom records")

// ReadPDB reads a structure in PDB format from r.
func ReadPDB(source string, r io.Reader, po options.Parse) (*Molecule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("molecule: reading %s: %w", source, err)
	}
	return ParsePDB(source, data, po)
}

// ssRange is a HELIX or SHEET record.
type ssRange struct {
	ss       SecondaryStructures
	chain    string
	from, to int
}

// ParsePDB parses a structure in PDB format. Only the atoms of model
// po.Model are kept; alternate locations and bonds follow po.AltLoc
// and po.Bonds.
func ParsePDB(source string, data []byte, po options.Parse) (*Molecule, error) {
	if po.Model < 1 {
		return nil, fmt.Errorf("molecule: model must be a positive integer, got %d", po.Model)
	}
	mol := &Molecule{Source: source, Model: po.Model}
	var atoms []Atom
	var conect [][2]int
	var ranges []ssRange

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 256), 1<<20)
	current := 1
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		switch strings.TrimSpace(field(line, 0, 6)) {
		case "HEADER":
			if mol.Title == "" {
				mol.Title = strings.TrimSpace(field(line, 10, 50))
			}
		case "TITLE":
			t := strings.TrimSpace(field(line, 10, 80))
			if strings.TrimSpace(field(line, 8, 10)) == "" || mol.Title == "" {
				mol.Title = t
			} else {
				mol.Title += " " + t
			}
		case "MODEL":
			mol.NumModels++
			current = mol.NumModels
			if n, err := strconv.Atoi(strings.TrimSpace(field(line, 10, 14))); err == nil {
				current = n
			}
		case "ATOM", "HETATM":
			if current != po.Model {
				continue
			}
			at, err := parseAtom(line, line[0] == 'H')
			if err != nil {
				return nil, fmt.Errorf("molecule: %s line %d: %w", source, lineNo, err)
			}
			atoms = append(atoms, at)
		case "CONECT":
			from, err := strconv.Atoi(strings.TrimSpace(field(line, 6, 11)))
			if err != nil {
				continue
			}
			for c := 11; c < 31; c += 5 {
				to, err := strconv.Atoi(strings.TrimSpace(field(line, c, c+5)))
				if err == nil {
					conect = append(conect, [2]int{from, to})
				}
			}
		case "HELIX":
			ranges = appendRange(ranges, Helix, field(line, 19, 20), field(line, 21, 25), field(line, 33, 37))
		case "SHEET":
			ranges = appendRange(ranges, Sheet, field(line, 21, 22), field(line, 22, 26), field(line, 33, 37))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("molecule: reading %s: %w", source, err)
	}
	if mol.NumModels == 0 {
		mol.NumModels = 1
	}
	if len(atoms) == 0 {
		if po.Model > mol.NumModels {
			return nil, fmt.Errorf("molecule: model %d not found in %s (%d models)", po.Model, source, mol.NumModels)
		}
		return nil, ErrNoAtoms
	}
	if po.AltLoc == options.AltLocOccupancy {
		atoms = selectAltLocs(atoms)
	}
	mol.Atoms = atoms
	mol.buildResidues()
	mol.assignSecondary(ranges)
	mol.buildBonds(conect, po.Bonds)
	mol.ID = nextID()
	mol.Fingerprint = murmur3.Sum64(data)
	return mol, nil
}

func parseAtom(line string, het bool) (Atom, error) {
	at := Atom{Het: het, Occupancy: 1, Serial: -1}
	if n, err := strconv.Atoi(strings.TrimSpace(field(line, 6, 11))); err == nil {
		at.Serial = n
	}
	rawName := field(line, 12, 16)
	at.Name = strings.TrimSpace(rawName)
	at.AltLoc = charAt(line, 16)
	at.ResName = strings.TrimSpace(field(line, 17, 20))
	at.Chain = strings.TrimSpace(field(line, 21, 22))
	if n, err := strconv.Atoi(strings.TrimSpace(field(line, 22, 26))); err == nil {
		at.ResSeq = n
	}
	at.ICode = charAt(line, 26)
	for i, c := range [3]int{30, 38, 46} {
		v, err := strconv.ParseFloat(strings.TrimSpace(field(line, c, c+8)), 32)
		if err != nil {
			return at, fmt.Errorf("bad %c coordinate: %w", "xyz"[i], err)
		}
		at.Pos[i] = float32(v)
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(field(line, 54, 60)), 32); err == nil {
		at.Occupancy = float32(v)
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(field(line, 60, 66)), 32); err == nil {
		at.TempFactor = float32(v)
	}
	sym := strings.TrimSpace(field(line, 76, 78))
	if sym == "" {
		sym = elementFromName(rawName, het)
	}
	if el, ok := ElementBySymbol(sym); ok {
		sym = el.Symbol
	}
	at.Element = sym
	return at, nil
}

// selectAltLocs keeps only the highest occupancy alternate location of
// each atom, the first one on ties.
func selectAltLocs(atoms []Atom) []Atom {
	type key struct {
		chain string
		seq   int
		icode byte
		name  string
	}
	best := map[key]int{}
	for i := range atoms {
		a := &atoms[i]
		if a.AltLoc == ' ' {
			continue
		}
		k := key{a.Chain, a.ResSeq, a.ICode, a.Name}
		if j, ok := best[k]; !ok || a.Occupancy > atoms[j].Occupancy {
			best[k] = i
		}
	}
	if len(best) == 0 {
		return atoms
	}
	out := atoms[:0:0]
	for i := range atoms {
		a := &atoms[i]
		if a.AltLoc != ' ' && best[key{a.Chain, a.ResSeq, a.ICode, a.Name}] != i {
			continue
		}
		out = append(out, *a)
	}
	return out
}

func (m *Molecule) buildResidues() {
	for i := range m.Atoms {
		a := &m.Atoms[i]
		nr := len(m.Residues)
		if nr == 0 || !m.Residues[nr-1].holds(a) {
			m.Residues = append(m.Residues, Residue{Name: a.ResName, Chain: a.Chain, Seq: a.ResSeq, ICode: a.ICode, Het: a.Het, Trace: -1})
			nc := len(m.Chains)
			if nc == 0 || m.Chains[nc-1].ID != a.Chain {
				m.Chains = append(m.Chains, Chain{ID: a.Chain})
				nc++
			}
			m.Chains[nc-1].Residues = append(m.Chains[nc-1].Residues, nr)
			nr++
		}
		res := &m.Residues[nr-1]
		res.Atoms = append(res.Atoms, i)
		a.Residue = nr - 1
		if res.Trace < 0 && isTrace(a) {
			res.Trace = i
		}
	}
}

func (r *Residue) holds(a *Atom) bool {
	return r.Chain == a.Chain && r.Seq == a.ResSeq && r.ICode == a.ICode && r.Name == a.ResName
}

func isTrace(a *Atom) bool {
	return (a.Name == "CA" && a.Element == "C") || (a.Name == "P" && a.Element == "P")
}

func appendRange(ranges []ssRange, ss SecondaryStructures, chain, from, to string) []ssRange {
	f, err1 := strconv.Atoi(strings.TrimSpace(from))
	t, err2 := strconv.Atoi(strings.TrimSpace(to))
	if err1 != nil || err2 != nil {
		return ranges
	}
	return append(ranges, ssRange{ss: ss, chain: strings.TrimSpace(chain), from: f, to: t})
}

func (m *Molecule) assignSecondary(ranges []ssRange) {
	for _, rg := range ranges {
		for i := range m.Residues {
			r := &m.Residues[i]
			if r.Chain == rg.chain && r.Seq >= rg.from && r.Seq <= rg.to {
				r.SS = rg.ss
			}
		}
	}
}

func (m *Molecule) buildBonds(conect [][2]int, policy options.BondPolicies) {
	serials := make(map[int]int, len(m.Atoms))
	for i := range m.Atoms {
		if s := m.Atoms[i].Serial; s >= 0 {
			if _, dup := serials[s]; !dup {
				serials[s] = i
			}
		}
	}
	have := map[[2]int]bool{}
	for _, c := range conect {
		a, okA := serials[c[0]]
		b, okB := serials[c[1]]
		if !okA || !okB || a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if have[[2]int{a, b}] {
			continue
		}
		have[[2]int{a, b}] = true
		m.Bonds = append(m.Bonds, Bond{A: a, B: b})
	}
	switch policy {
	case options.BondsConect:
	case options.BondsHeuristicIfMissing:
		if len(m.Bonds) == 0 {
			m.Bonds = append(m.Bonds, inferBonds(m.Atoms, have)...)
		}
	case options.BondsConectHeuristic:
		m.Bonds = append(m.Bonds, inferBonds(m.Atoms, have)...)
	}
}

// field returns line[from:to], clipped to the line length.
func field(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	return line[from:min(to, len(line))]
}

func charAt(line string, i int) byte {
	if i >= len(line) {
		return ' '
	}
	return line[i]
}
