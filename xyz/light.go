// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Lights are the lights of a [Scene]: uniform ambient light plus one
// directional headlight that moves with the camera.
type Lights struct {

	// Ambient is the brightness of the ambient light, in normalized 0-1 units.
	Ambient float32

	// Head is the headlight.
	Head DirLight
}

// DirLight is directional light with no attenuation, like the Sun.
// Pos is in view space: the light comes from Pos towards the origin
// of the camera.
type DirLight struct {

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness of the light in normalized 0-1 units.
	Lumens float32

	// Pos is the position of the light in view space; only its direction matters.
	Pos mgl32.Vec3
}

// Defaults sets the default lights: dim ambient light and a headlight
// over the right shoulder of the camera.
func (ls *Lights) Defaults() {
	ls.Ambient = 0.25
	ls.Head = DirLight{On: true, Lumens: 1, Pos: mgl32.Vec3{0.3, 0.5, 1}}
}

// WorldDir returns the unit direction towards the light in world space,
// for the given camera view matrix.
func (dl *DirLight) WorldDir(viewMat mgl32.Mat4) mgl32.Vec3 {
	if dl.Pos.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	// the 0 w component drops the translation of the inverse view matrix
	return viewMat.Inv().Mul4x1(dl.Pos.Vec4(0)).Vec3().Normalize()
}

// Intensity returns the light reaching a surface whose normal makes the
// given cosine with the light direction, with two sided lighting.
func (ls *Lights) Intensity(cos float32) float32 {
	if cos < 0 {
		cos = -cos
	}
	if !ls.Head.On {
		return ls.Ambient
	}
	return min(ls.Ambient+(1-ls.Ambient)*ls.Head.Lumens*cos, 1)
}
