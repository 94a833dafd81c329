// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"sync/atomic"
)

// Kinds are the kinds of renderable primitives.
type Kinds int32

const (
	AtomCloud Kinds = iota
	BondSegments
	BackboneTrace
	RibbonMesh

	// Helper is a non-molecular helper such as the axes.
	Helper
)

var kindNames = []string{"atoms", "bonds", "backbone", "ribbon", "helper"}

func (k Kinds) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kinds(%d)", int32(k))
	}
	return kindNames[k]
}

var lastSolidID atomic.Uint64

// Solid is a renderable primitive. It either owns a [Mesh] and a
// [Material] directly, or is a composite whose Kids own them, or both.
// A Solid is exclusively owned by whoever built it until [Solid.Dispose];
// a [Group] only holds non-owning references.
type Solid struct {

	// Name is the name of the solid.
	Name string

	// Kind is the kind of primitive.
	Kind Kinds

	// Mesh is the geometry, or nil for a pure composite.
	Mesh *Mesh

	// Material is the surface of Mesh.
	Material *Material

	// Kids are the owned sub-solids of a composite.
	Kids []*Solid

	// BBox is the aggregate bounding box computed by [Solid.UpdateMeshBBox].
	BBox Box3

	id       uint64
	disposed bool
}

// NewSolid returns a new empty solid with a process-unique id.
func NewSolid(name string, kind Kinds) *Solid {
	sld := &Solid{Name: name, Kind: kind, id: lastSolidID.Add(1)}
	sld.BBox.SetEmpty()
	return sld
}

// ID returns the process-unique id of the solid.
func (sld *Solid) ID() uint64 {
	return sld.id
}

// PlanName returns a name unique to this solid instance, so that a
// rebuilt solid of the same kind is never mistaken for the old one.
func (sld *Solid) PlanName() string {
	return fmt.Sprintf("%s-%d", sld.Kind, sld.id)
}

// SetMesh sets the mesh and material.
func (sld *Solid) SetMesh(ms *Mesh, mt *Material) *Solid {
	sld.Mesh = ms
	sld.Material = mt
	return sld
}

// AddKid adds an owned sub-solid.
func (sld *Solid) AddKid(kid *Solid) *Solid {
	sld.Kids = append(sld.Kids, kid)
	return sld
}

// WalkDown calls fun on this solid and then all of its descendants,
// depth first. Returning false from fun skips the children of that solid.
func (sld *Solid) WalkDown(fun func(s *Solid) bool) {
	if !fun(sld) {
		return
	}
	for _, kid := range sld.Kids {
		kid.WalkDown(fun)
	}
}

// Meshes returns every mesh in this solid and its descendants.
func (sld *Solid) Meshes() []*Mesh {
	var ms []*Mesh
	sld.WalkDown(func(s *Solid) bool {
		if s.Mesh != nil {
			ms = append(ms, s.Mesh)
		}
		return true
	})
	return ms
}

// UpdateMeshBBox recomputes the bounding box and sphere of every mesh
// and aggregates them into BBox, for this solid and all descendants.
func (sld *Solid) UpdateMeshBBox() {
	sld.BBox.SetEmpty()
	if sld.Mesh != nil {
		sld.Mesh.ComputeBoundingBox()
		sld.Mesh.ComputeBoundingSphere()
		sld.BBox.ExpandByBox(sld.Mesh.BBox)
	}
	for _, kid := range sld.Kids {
		kid.UpdateMeshBBox()
		sld.BBox.ExpandByBox(kid.BBox)
	}
}

// Dispose releases the resources of all descendants and then of this
// solid itself. It is a no-op on an already disposed solid.
func (sld *Solid) Dispose() {
	if sld.disposed {
		return
	}
	sld.disposed = true
	for _, kid := range sld.Kids {
		kid.Dispose()
	}
	if sld.Mesh != nil {
		sld.Mesh.Dispose()
	}
	if sld.Material != nil {
		sld.Material.Dispose()
	}
}

// IsDisposed returns whether [Solid.Dispose] has been called.
func (sld *Solid) IsDisposed() bool {
	return sld.disposed
}
