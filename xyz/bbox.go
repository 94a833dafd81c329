// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box3 represents a 3D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box3 struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// B3Empty returns a new [Box3] with empty minimum and maximum values.
func B3Empty() Box3 {
	bx := Box3{}
	bx.SetEmpty()
	return bx
}

// SetEmpty set this bounding box to empty (min / max +/- Infinity)
func (b *Box3) SetEmpty() {
	inf := math32.Inf(1)
	b.Min = mgl32.Vec3{inf, inf, inf}
	b.Max = mgl32.Vec3{-inf, -inf, -inf}
}

// IsEmpty returns true if this bounding box is empty (max < min on any coord).
func (b Box3) IsEmpty() bool {
	return (b.Max[0] < b.Min[0]) || (b.Max[1] < b.Min[1]) || (b.Max[2] < b.Min[2])
}

// ExpandByPoint may expand this bounding box to include the specified point.
func (b *Box3) ExpandByPoint(p mgl32.Vec3) {
	for i := range 3 {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// ExpandByBox may expand this bounding box to include the specified box.
// Empty boxes are ignored.
func (b *Box3) ExpandByBox(box Box3) {
	if box.IsEmpty() {
		return
	}
	b.ExpandByPoint(box.Min)
	b.ExpandByPoint(box.Max)
}

// ExpandBySphere expands this bounding box to include a sphere.
func (b *Box3) ExpandBySphere(center mgl32.Vec3, radius float32) {
	r := mgl32.Vec3{radius, radius, radius}
	b.ExpandByPoint(center.Sub(r))
	b.ExpandByPoint(center.Add(r))
}

// Center returns the center of the bounding box.
func (b Box3) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size calculates the size of this bounding box: the vector from
// its minimum point to its maximum point.
func (b Box3) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// IsFinite returns whether all of the box coordinates are finite numbers.
func (b Box3) IsFinite() bool {
	for i := range 3 {
		if !finite(b.Min[i]) || !finite(b.Max[i]) {
			return false
		}
	}
	return true
}

// Sphere returns the sphere circumscribing this box.
// An empty box gives a sphere with negative radius.
func (b Box3) Sphere() Sphere {
	if b.IsEmpty() {
		return Sphere{Radius: -1}
	}
	return Sphere{Center: b.Center(), Radius: b.Size().Len() * 0.5}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// IsEmpty returns whether the sphere bounds nothing.
func (s Sphere) IsEmpty() bool {
	return s.Radius < 0
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
