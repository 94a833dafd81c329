// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/molview/base/plan"
)

// Group collects solids in a scene without owning them: removing a solid
// from a group never disposes it.
type Group struct {

	// Name is the name of the group.
	Name string

	// Kids are the solids in the group, in drawing order.
	Kids []*Solid

	// BBox is the aggregate bounding box computed by [Group.UpdateMeshBBox].
	BBox Box3
}

// NewGroup returns a new empty group.
func NewGroup(name string) *Group {
	gp := &Group{Name: name}
	gp.BBox.SetEmpty()
	return gp
}

// Len returns the number of solids in the group.
func (gp *Group) Len() int {
	return len(gp.Kids)
}

// SetKids updates the group to contain exactly the given solids, in order,
// making minimal edits. It returns whether anything changed.
func (gp *Group) SetKids(solids []*Solid) bool {
	var mods bool
	gp.Kids, mods = plan.Update(gp.Kids, len(solids),
		func(i int) string { return solids[i].PlanName() },
		func(s *Solid) string { return s.PlanName() },
		func(name string, i int) *Solid { return solids[i] },
		nil)
	return mods
}

// UpdateMeshBBox updates the Mesh-based BBox info for all solids.
// groups aggregate over elements
func (gp *Group) UpdateMeshBBox() {
	gp.BBox.SetEmpty()
	for _, kid := range gp.Kids {
		kid.UpdateMeshBBox()
		gp.BBox.ExpandByBox(kid.BBox)
	}
}
