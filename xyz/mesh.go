// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Topologies are the primitive types a [Mesh] index list describes.
type Topologies int32

const (
	// Triangles are indexed triangles, three indexes each.
	Triangles Topologies = iota

	// Lines are indexed line segments, two indexes each.
	Lines
)

func (tp Topologies) String() string {
	if tp == Lines {
		return "lines"
	}
	return "triangles"
}

// Instance is one placement of an instanced mesh. The mesh vertices
// are scaled by Radius and translated to Pos.
type Instance struct {
	Pos    mgl32.Vec3
	Radius float32
	Color  color.RGBA
}

// Mesh holds the geometry of a [Solid]: flat vertex, normal and optional
// per-vertex color arrays, an index list, and optionally a list of
// instances that the geometry is replicated at.
// Meshes are allocated from a [Pool] and must be disposed.
type Mesh struct {

	// Name is the name of the mesh.
	Name string

	// Topology is how Index is interpreted.
	Topology Topologies

	// Vertex has three floats per vertex.
	Vertex []float32

	// Normal has three floats per vertex, or is empty for lines.
	Normal []float32

	// Color has four floats (0-1) per vertex, or is empty.
	Color []float32

	// Index indexes Vertex according to Topology.
	Index []uint32

	// Instances, if non-empty, replicates the geometry.
	Instances []Instance

	// BBox is the bounding box computed by [Mesh.ComputeBoundingBox].
	BBox Box3

	// BSphere is the bounding sphere computed by [Mesh.ComputeBoundingSphere].
	BSphere Sphere

	pool     *Pool
	released bool
}

// NewMesh allocates a new mesh from the given pool (nil for [DefaultPool]).
func NewMesh(pool *Pool, name string, top Topologies) *Mesh {
	ms := &Mesh{Name: name, Topology: top, pool: poolOrDefault(pool)}
	ms.pool.alloc()
	ms.BBox.SetEmpty()
	ms.BSphere.Radius = -1
	return ms
}

// NumVertex returns the number of vertices.
func (ms *Mesh) NumVertex() int {
	return len(ms.Vertex) / 3
}

// HasColor returns whether the mesh has per-vertex colors.
func (ms *Mesh) HasColor() bool {
	return len(ms.Color) > 0 && len(ms.Color) == 4*ms.NumVertex()
}

// VertexAt returns vertex i.
func (ms *Mesh) VertexAt(i int) mgl32.Vec3 {
	return mgl32.Vec3{ms.Vertex[3*i], ms.Vertex[3*i+1], ms.Vertex[3*i+2]}
}

// NormalAt returns normal i, or zero if there are no normals.
func (ms *Mesh) NormalAt(i int) mgl32.Vec3 {
	if 3*i+2 >= len(ms.Normal) {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{ms.Normal[3*i], ms.Normal[3*i+1], ms.Normal[3*i+2]}
}

// ColorAt returns the color of vertex i as 0-1 floats.
func (ms *Mesh) ColorAt(i int) mgl32.Vec4 {
	return mgl32.Vec4{ms.Color[4*i], ms.Color[4*i+1], ms.Color[4*i+2], ms.Color[4*i+3]}
}

// AddVertex appends a vertex and its normal, returning its index.
func (ms *Mesh) AddVertex(pos, norm mgl32.Vec3) uint32 {
	idx := uint32(ms.NumVertex())
	ms.Vertex = append(ms.Vertex, pos[0], pos[1], pos[2])
	ms.Normal = append(ms.Normal, norm[0], norm[1], norm[2])
	return idx
}

// AddColor appends one per-vertex color.
func (ms *Mesh) AddColor(c color.RGBA) {
	ms.Color = append(ms.Color, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

// ComputeBoundingBox recomputes [Mesh.BBox] from the current geometry,
// including all instances.
func (ms *Mesh) ComputeBoundingBox() {
	ms.BBox.SetEmpty()
	nv := ms.NumVertex()
	if len(ms.Instances) == 0 {
		for i := range nv {
			ms.BBox.ExpandByPoint(ms.VertexAt(i))
		}
		return
	}
	var local Box3
	local.SetEmpty()
	for i := range nv {
		local.ExpandByPoint(ms.VertexAt(i))
	}
	if local.IsEmpty() {
		return
	}
	for _, in := range ms.Instances {
		ms.BBox.ExpandByPoint(in.Pos.Add(local.Min.Mul(in.Radius)))
		ms.BBox.ExpandByPoint(in.Pos.Add(local.Max.Mul(in.Radius)))
	}
}

// ComputeBoundingSphere recomputes [Mesh.BSphere], centered on the
// bounding box, so [Mesh.ComputeBoundingBox] must be current.
func (ms *Mesh) ComputeBoundingSphere() {
	if ms.BBox.IsEmpty() {
		ms.BSphere = Sphere{Radius: -1}
		return
	}
	ctr := ms.BBox.Center()
	var r2 float32
	grow := func(p mgl32.Vec3, pad float32) {
		d := p.Sub(ctr).Len() + pad
		r2 = max(r2, d)
	}
	nv := ms.NumVertex()
	if len(ms.Instances) == 0 {
		for i := range nv {
			grow(ms.VertexAt(i), 0)
		}
	} else {
		var ext float32
		for i := range nv {
			ext = max(ext, ms.VertexAt(i).Len())
		}
		for _, in := range ms.Instances {
			grow(in.Pos, ext*in.Radius)
		}
	}
	ms.BSphere = Sphere{Center: ctr, Radius: r2}
}

// Dispose releases the mesh geometry.
func (ms *Mesh) Dispose() {
	ms.pool.release("mesh", ms.Name, &ms.released)
	ms.Vertex, ms.Normal, ms.Color, ms.Index, ms.Instances = nil, nil, nil, nil, nil
}

// IsDisposed returns whether [Mesh.Dispose] has been called.
func (ms *Mesh) IsDisposed() bool {
	return ms.released
}
