// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molmesh

import (
	"fmt"
	"image/color"

	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RingSegments is the number of vertices around a ribbon cross section.
const RingSegments = 10

var ssColors = map[molecule.SecondaryStructures]color.RGBA{
	molecule.Coil:  {0xd8, 0xd8, 0xd8, 0xff},
	molecule.Helix: {0xe0, 0x50, 0x68, 0xff},
	molecule.Sheet: {0xf0, 0xc8, 0x40, 0xff},
}

// sample is a point on the spline through the trace atoms.
type sample struct {
	pos, tangent mgl32.Vec3
	ss           molecule.SecondaryStructures
}

// Ribbon returns a composite solid with one tube or flat ribbon mesh per
// run of connected trace atoms, following a smooth spline through them.
// Flat ribbons are rb.Width wide in helices and sheets and as wide as they
// are thick in coils. It returns nil if the molecule has no trace.
func (b *Builder) Ribbon(mol *molecule.Molecule, rb options.RibbonBuild) *xyz.Solid {
	if mol == nil || !rb.Enabled {
		return nil
	}
	runs := mol.TraceAtoms()
	if len(runs) == 0 {
		return nil
	}
	root := xyz.NewSolid("ribbon", xyz.RibbonMesh)
	for ri, run := range runs {
		samples := splineSamples(mol, run, max(rb.Segments, 1))
		ms := xyz.NewMesh(b.Pool, fmt.Sprintf("ribbon-%s-%d", mol.Atoms[run[0]].Chain, ri), xyz.Triangles)
		sweep(ms, samples, rb)
		mt := xyz.NewMaterial(b.Pool, rb.Material)
		mt.VertexColors = true
		root.AddKid(xyz.NewSolid(ms.Name, xyz.RibbonMesh).SetMesh(ms, mt))
	}
	return root
}

// splineSamples samples a Catmull-Rom spline through the trace atoms of
// a run, segs samples per residue, converting each span to the equivalent
// cubic Bezier curve.
func splineSamples(mol *molecule.Molecule, run []int, segs int) []sample {
	n := len(run)
	pt := func(i int) mgl32.Vec3 {
		return mol.Atoms[run[min(max(i, 0), n-1)]].Pos
	}
	ssOf := func(i int) molecule.SecondaryStructures {
		return mol.Residues[mol.Atoms[run[i]].Residue].SS
	}
	samples := make([]sample, 0, (n-1)*segs+1)
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := pt(i-1), pt(i), pt(i+1), pt(i+2)
		b0 := p1
		b1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6))
		b2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6))
		b3 := p2
		for k := range segs {
			t := float32(k) / float32(segs)
			ss := ssOf(i)
			if t >= 0.5 {
				ss = ssOf(i + 1)
			}
			samples = append(samples, sample{
				pos:     mgl32.CubicBezierCurve3D(t, b0, b1, b2, b3),
				tangent: bezierTangent(t, b0, b1, b2, b3),
				ss:      ss,
			})
		}
	}
	last := pt(n - 1)
	samples = append(samples, sample{pos: last, tangent: last.Sub(pt(n - 2)), ss: ssOf(n - 1)})
	return samples
}

func bezierTangent(t float32, b0, b1, b2, b3 mgl32.Vec3) mgl32.Vec3 {
	u := 1 - t
	return b1.Sub(b0).Mul(3 * u * u).Add(b2.Sub(b1).Mul(6 * u * t)).Add(b3.Sub(b2).Mul(3 * t * t))
}

// perpendicular returns a unit vector perpendicular to t.
func perpendicular(t mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if math32.Abs(t.Normalize().Dot(axis)) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return t.Cross(axis).Normalize()
}

// sweep adds the surface swept by an elliptical cross section along the
// samples, carrying the section frame along by parallel transport.
func sweep(ms *xyz.Mesh, samples []sample, rb options.RibbonBuild) {
	half := rb.Thickness / 2
	var normal mgl32.Vec3
	var rings [][]uint32
	for si, s := range samples {
		t := s.tangent
		if t.Len() < 1e-6 {
			t = mgl32.Vec3{1, 0, 0}
		}
		t = t.Normalize()
		if si == 0 {
			normal = perpendicular(t)
		} else {
			normal = normal.Sub(t.Mul(normal.Dot(t)))
			if normal.Len() < 1e-6 {
				normal = perpendicular(t)
			}
			normal = normal.Normalize()
		}
		binormal := t.Cross(normal)

		hw, hh := half, half
		if rb.Mode == options.RibbonFlat && s.ss != molecule.Coil {
			hw = max(rb.Width/2, half)
		}
		c := ssColors[s.ss]
		ring := make([]uint32, RingSegments)
		for k := range RingSegments {
			a := 2 * math32.Pi * float32(k) / RingSegments
			cs, sn := math32.Cos(a), math32.Sin(a)
			pos := s.pos.Add(normal.Mul(cs * hw)).Add(binormal.Mul(sn * hh))
			nrm := normal.Mul(cs / hw).Add(binormal.Mul(sn / hh)).Normalize()
			ring[k] = ms.AddVertex(pos, nrm)
			ms.AddColor(c)
		}
		rings = append(rings, ring)
	}
	for i := 0; i+1 < len(rings); i++ {
		r0, r1 := rings[i], rings[i+1]
		for k := range RingSegments {
			k1 := (k + 1) % RingSegments
			ms.Index = append(ms.Index, r0[k], r1[k], r1[k1], r0[k], r1[k1], r0[k1])
		}
	}
}
