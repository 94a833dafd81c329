// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"
	"sort"

	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type itemKinds int32

const (
	circleItem itemKinds = iota
	lineItem
	triangleItem
)

// item is one projected primitive, in screen pixels.
type item struct {
	kind  itemKinds
	depth float32
	pts   [3][2]float32
	r     float32 // circle radius or line width
	color color.RGBA
}

// projector projects the solids of a frame into depth-sorted items.
type projector struct {
	cam    *xyz.Camera
	lights *xyz.Lights
	w, h   float32

	// world space direction towards the headlight
	light mgl32.Vec3
	items []item
}

func newProjector(cam *xyz.Camera, lights *xyz.Lights, w, h int) *projector {
	return &projector{cam: cam, lights: lights, w: float32(w), h: float32(h), light: lights.Head.WorldDir(cam.ViewMatrix)}
}

// project adds the items of every solid and sorts them back to front.
func (pj *projector) project(solids []*xyz.Solid) []item {
	pj.items = pj.items[:0]
	for _, sld := range solids {
		sld.WalkDown(func(s *xyz.Solid) bool {
			if s.Mesh != nil && s.Material != nil && !s.Mesh.IsDisposed() {
				pj.mesh(s.Mesh, s.Material)
			}
			return true
		})
	}
	sort.SliceStable(pj.items, func(i, j int) bool {
		return pj.items[i].depth > pj.items[j].depth
	})
	return pj.items
}

func (pj *projector) mesh(ms *xyz.Mesh, mt *xyz.Material) {
	if len(ms.Instances) > 0 {
		pj.instances(ms, mt)
		return
	}
	switch ms.Topology {
	case xyz.Lines:
		pj.lines(ms, mt)
	default:
		pj.triangles(ms, mt)
	}
}

// instances draws each instance of an instanced mesh as a disc of its
// projected radius.
func (pj *projector) instances(ms *xyz.Mesh, mt *xyz.Material) {
	for _, in := range ms.Instances {
		x, y, d, ok := pj.cam.Project(in.Pos, pj.w, pj.h)
		if !ok {
			continue
		}
		r := pj.cam.ProjectRadius(in.Pos, in.Radius, pj.h)
		if r < 0.5 {
			r = 0.5
		}
		c := mt.Color
		if mt.VertexColors {
			c = in.Color
		}
		it := item{kind: circleItem, depth: d, r: r, color: pj.shade(mt, c, 1)}
		it.pts[0] = [2]float32{x, y}
		pj.items = append(pj.items, it)
	}
}

func (pj *projector) lines(ms *xyz.Mesh, mt *xyz.Material) {
	for i := 0; i+1 < len(ms.Index); i += 2 {
		a, b := int(ms.Index[i]), int(ms.Index[i+1])
		x0, y0, d0, ok0 := pj.cam.Project(ms.VertexAt(a), pj.w, pj.h)
		x1, y1, d1, ok1 := pj.cam.Project(ms.VertexAt(b), pj.w, pj.h)
		if !ok0 || !ok1 {
			continue
		}
		it := item{kind: lineItem, depth: (d0 + d1) / 2, r: max(mt.LineWidth, 1), color: pj.vertexColor(ms, mt, a)}
		it.pts[0] = [2]float32{x0, y0}
		it.pts[1] = [2]float32{x1, y1}
		pj.items = append(pj.items, it)
	}
}

func (pj *projector) triangles(ms *xyz.Mesh, mt *xyz.Material) {
	for i := 0; i+2 < len(ms.Index); i += 3 {
		var it item
		it.kind = triangleItem
		var norm mgl32.Vec3
		ok := true
		for k := range 3 {
			vi := int(ms.Index[i+k])
			x, y, d, vok := pj.cam.Project(ms.VertexAt(vi), pj.w, pj.h)
			if !vok {
				ok = false
				break
			}
			it.pts[k] = [2]float32{x, y}
			it.depth += d / 3
			norm = norm.Add(ms.NormalAt(vi))
		}
		if !ok {
			continue
		}
		cos := float32(1)
		if norm.Len() > 0 {
			cos = math32.Abs(norm.Normalize().Dot(pj.light))
		}
		base := pj.vertexColor(ms, mt, int(ms.Index[i]))
		it.color = pj.shade(mt, base, cos)
		pj.items = append(pj.items, it)
	}
}

func (pj *projector) vertexColor(ms *xyz.Mesh, mt *xyz.Material, i int) color.RGBA {
	if !mt.VertexColors || !ms.HasColor() {
		return mt.Color
	}
	c := ms.ColorAt(i)
	return color.RGBA{uint8(c[0] * 255), uint8(c[1] * 255), uint8(c[2] * 255), uint8(c[3] * 255)}
}

// shade returns the color of a surface of the material with the given
// base color, lit at the given cosine to the headlight.
func (pj *projector) shade(mt *xyz.Material, c color.RGBA, cos float32) color.RGBA {
	var f, specular float32
	switch mt.Kind {
	case options.Basic:
		return c
	case options.Lambert:
		f = pj.lights.Intensity(cos)
	case options.Standard:
		f = pj.lights.Intensity(cos)
		if pj.lights.Head.On {
			specular = math32.Pow(cos, max(mt.Shiny, 1)) * 0.4 * pj.lights.Head.Lumens
		}
	}
	ch := func(v uint8) uint8 {
		return uint8(min(float32(v)*f+255*specular, 255))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}
