// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molecule

import (
	"image/color"
	"strings"
)

// Element holds the per-element constants used for bonding and drawing.
type Element struct {
	Symbol string

	// Covalent is the covalent radius in Å.
	Covalent float32

	// VdW is the van der Waals radius in Å.
	VdW float32

	// Color is the CPK color.
	Color color.RGBA
}

// Unknown is used for elements that are not in the table.
var Unknown = Element{Symbol: "X", Covalent: 0.77, VdW: 1.7, Color: color.RGBA{0xff, 0x14, 0x93, 0xff}}

var elements = map[string]Element{
	"H":  {"H", 0.31, 1.20, color.RGBA{0xff, 0xff, 0xff, 0xff}},
	"C":  {"C", 0.76, 1.70, color.RGBA{0x90, 0x90, 0x90, 0xff}},
	"N":  {"N", 0.71, 1.55, color.RGBA{0x30, 0x50, 0xf8, 0xff}},
	"O":  {"O", 0.66, 1.52, color.RGBA{0xff, 0x0d, 0x0d, 0xff}},
	"F":  {"F", 0.57, 1.47, color.RGBA{0x90, 0xe0, 0x50, 0xff}},
	"NA": {"Na", 1.66, 2.27, color.RGBA{0xab, 0x5c, 0xf2, 0xff}},
	"MG": {"Mg", 1.41, 1.73, color.RGBA{0x8a, 0xff, 0x00, 0xff}},
	"P":  {"P", 1.07, 1.80, color.RGBA{0xff, 0x80, 0x00, 0xff}},
	"S":  {"S", 1.05, 1.80, color.RGBA{0xff, 0xff, 0x30, 0xff}},
	"CL": {"Cl", 1.02, 1.75, color.RGBA{0x1f, 0xf0, 0x1f, 0xff}},
	"K":  {"K", 2.03, 2.75, color.RGBA{0x8f, 0x40, 0xd4, 0xff}},
	"CA": {"Ca", 1.76, 2.31, color.RGBA{0x3d, 0xff, 0x00, 0xff}},
	"MN": {"Mn", 1.39, 2.05, color.RGBA{0x9c, 0x7a, 0xc7, 0xff}},
	"FE": {"Fe", 1.32, 2.04, color.RGBA{0xe0, 0x66, 0x33, 0xff}},
	"CO": {"Co", 1.26, 2.00, color.RGBA{0xf0, 0x90, 0xa0, 0xff}},
	"NI": {"Ni", 1.24, 1.97, color.RGBA{0x50, 0xd0, 0x50, 0xff}},
	"CU": {"Cu", 1.32, 1.96, color.RGBA{0xc8, 0x80, 0x33, 0xff}},
	"ZN": {"Zn", 1.22, 2.01, color.RGBA{0x7d, 0x80, 0xb0, 0xff}},
	"SE": {"Se", 1.20, 1.90, color.RGBA{0xff, 0xa1, 0x00, 0xff}},
	"BR": {"Br", 1.20, 1.85, color.RGBA{0xa6, 0x29, 0x29, 0xff}},
	"I":  {"I", 1.39, 1.98, color.RGBA{0x94, 0x00, 0x94, 0xff}},
}

// ElementBySymbol returns the element for a case-insensitive symbol,
// and whether it is known.
func ElementBySymbol(sym string) (Element, bool) {
	el, ok := elements[strings.ToUpper(strings.TrimSpace(sym))]
	if !ok {
		return Unknown, false
	}
	return el, true
}

// elementFromName infers the element symbol from a PDB atom name field
// (columns 13-16). Two letter elements are left-justified in the field,
// single letter ones start in the second column.
func elementFromName(field string, het bool) string {
	if len(field) >= 2 && het && field[0] != ' ' && !isDigit(field[0]) {
		if el, ok := elements[strings.ToUpper(field[:2])]; ok {
			return el.Symbol
		}
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == ' ' || isDigit(c) {
			continue
		}
		if el, ok := elements[strings.ToUpper(string(c))]; ok {
			return el.Symbol
		}
		return strings.ToUpper(string(c))
	}
	return Unknown.Symbol
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
