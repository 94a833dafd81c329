// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"strings"
)

// Representations are the ways a molecule can be drawn.
type Representations int32

const (
	// Spheres draws atoms as spheres, with bond and backbone overlays.
	Spheres Representations = iota

	// RibbonTube draws the backbone as a round tube.
	RibbonTube

	// RibbonFlat draws the backbone as a flat ribbon that widens
	// in helices and sheets.
	RibbonFlat
)

var representationNames = []string{"spheres", "ribbon-tube", "ribbon-flat"}

func (r Representations) String() string { return enumString(representationNames, r) }

// IsRibbon returns whether r is one of the ribbon representations.
func (r Representations) IsRibbon() bool {
	return r == RibbonTube || r == RibbonFlat
}

func (r Representations) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Representations) UnmarshalText(text []byte) error {
	return enumParse(representationNames, "representation", text, r)
}

// RepresentationsValues returns all of the representations.
func RepresentationsValues() []Representations {
	return []Representations{Spheres, RibbonTube, RibbonFlat}
}

// MaterialKinds are the shading models a material can use.
type MaterialKinds int32

const (
	// Basic is unlit flat color.
	Basic MaterialKinds = iota

	// Lambert is diffuse lighting.
	Lambert

	// Standard is diffuse plus specular lighting.
	Standard
)

var materialNames = []string{"basic", "lambert", "standard"}

func (m MaterialKinds) String() string { return enumString(materialNames, m) }

func (m MaterialKinds) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MaterialKinds) UnmarshalText(text []byte) error {
	return enumParse(materialNames, "material", text, m)
}

// MaterialKindsValues returns all of the material kinds.
func MaterialKindsValues() []MaterialKinds {
	return []MaterialKinds{Basic, Lambert, Standard}
}

// AltLocs are the policies for atoms with alternate locations.
type AltLocs int32

const (
	// AltLocOccupancy keeps only the highest occupancy location of each atom.
	AltLocOccupancy AltLocs = iota

	// AltLocAll keeps every alternate location.
	AltLocAll
)

var altLocNames = []string{"occupancy", "all"}

func (a AltLocs) String() string { return enumString(altLocNames, a) }

func (a AltLocs) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AltLocs) UnmarshalText(text []byte) error {
	return enumParse(altLocNames, "alt-loc policy", text, a)
}

// BondPolicies determine where bonds come from.
type BondPolicies int32

const (
	// BondsConect uses only explicit CONECT records.
	BondsConect BondPolicies = iota

	// BondsHeuristicIfMissing infers bonds from distances
	// only when the file has no CONECT records.
	BondsHeuristicIfMissing

	// BondsConectHeuristic uses CONECT records and adds inferred bonds.
	BondsConectHeuristic
)

var bondPolicyNames = []string{"conect", "heuristic-if-missing", "conect+heuristic"}

func (b BondPolicies) String() string { return enumString(bondPolicyNames, b) }

func (b BondPolicies) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BondPolicies) UnmarshalText(text []byte) error {
	return enumParse(bondPolicyNames, "bond policy", text, b)
}

func enumString[T ~int32](names []string, v T) string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("%d", int32(v))
	}
	return names[v]
}

func enumParse[T ~int32](names []string, what string, text []byte, v *T) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, nm := range names {
		if nm == s {
			*v = T(i)
			return nil
		}
	}
	return fmt.Errorf("options: invalid %s %q (valid: %s)", what, s, strings.Join(names, ", "))
}
