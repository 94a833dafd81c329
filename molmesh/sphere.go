// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package molmesh

import (
	"cogentcore.org/molview/xyz"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AddSphere adds a unit sphere centered at the origin to the mesh,
// with the given number of segments around its width and height.
func AddSphere(ms *xyz.Mesh, widthSegs, heightSegs int) {
	widthSegs = max(widthSegs, 3)
	heightSegs = max(heightSegs, 2)
	vtxs := make([][]uint32, 0, heightSegs+1)

	for y := 0; y <= heightSegs; y++ {
		row := make([]uint32, 0, widthSegs+1)
		v := float32(y) / float32(heightSegs)
		for x := 0; x <= widthSegs; x++ {
			u := float32(x) / float32(widthSegs)
			pt := mgl32.Vec3{
				-math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
				math32.Cos(v * math32.Pi),
				math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
			}
			row = append(row, ms.AddVertex(pt, pt.Normalize()))
		}
		vtxs = append(vtxs, row)
	}

	for y := 0; y < heightSegs; y++ {
		for x := 0; x < widthSegs; x++ {
			v1 := vtxs[y][x+1]
			v2 := vtxs[y][x]
			v3 := vtxs[y+1][x]
			v4 := vtxs[y+1][x+1]
			if y != 0 {
				ms.Index = append(ms.Index, v1, v2, v4)
			}
			if y != heightSegs-1 {
				ms.Index = append(ms.Index, v2, v3, v4)
			}
		}
	}
}
