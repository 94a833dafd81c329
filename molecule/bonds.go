// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molecule

import (
	"slices"

	"github.com/chewxy/math32"
)

const (
	// BondTolerance is added to the sum of the covalent radii
	// to get the largest inferred bond length.
	BondTolerance = 0.45

	// MinBondLength is the smallest inferred bond length; anything
	// closer is taken to be overlapping coordinates.
	MinBondLength = 0.4
)

type cell [3]int32

// inferBonds returns the bonds implied by interatomic distances that are
// not already in have, sorted by atom index. It hashes atoms into cubic
// cells at least as large as the longest possible bond, so that only the
// 27 neighboring cells need to be searched for each atom.
func inferBonds(atoms []Atom, have map[[2]int]bool) []Bond {
	if len(atoms) < 2 {
		return nil
	}
	cov := make([]float32, len(atoms))
	var maxCov float32
	for i := range atoms {
		el, _ := ElementBySymbol(atoms[i].Element)
		cov[i] = el.Covalent
		maxCov = max(maxCov, el.Covalent)
	}
	size := 2*maxCov + BondTolerance
	cellOf := func(i int) cell {
		p := atoms[i].Pos
		return cell{int32(math32.Floor(p[0] / size)), int32(math32.Floor(p[1] / size)), int32(math32.Floor(p[2] / size))}
	}
	grid := make(map[cell][]int, len(atoms))
	for i := range atoms {
		c := cellOf(i)
		grid[c] = append(grid[c], i)
	}

	var bonds []Bond
	for i := range atoms {
		ci := cellOf(i)
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dz := int32(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{ci[0] + dx, ci[1] + dy, ci[2] + dz}] {
						if j <= i || have[[2]int{i, j}] || !sameConformer(&atoms[i], &atoms[j]) {
							continue
						}
						d := atoms[i].Pos.Sub(atoms[j].Pos).Len()
						if d >= MinBondLength && d <= cov[i]+cov[j]+BondTolerance {
							bonds = append(bonds, Bond{A: i, B: j, Inferred: true})
						}
					}
				}
			}
		}
	}
	slices.SortFunc(bonds, func(a, b Bond) int {
		if a.A != b.A {
			return a.A - b.A
		}
		return a.B - b.B
	})
	return bonds
}

// sameConformer returns false for atoms in different alternate locations.
func sameConformer(a, b *Atom) bool {
	return a.AltLoc == ' ' || b.AltLoc == ' ' || a.AltLoc == b.AltLoc
}
