// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"

	"cogentcore.org/molview/options"
)

// Material describes the material properties of a surface.
// Color is used for both ambient and diffuse color unless VertexColors
// is set, in which case per-vertex or per-instance colors are used instead.
// Materials are allocated from a [Pool] and must be disposed.
type Material struct {

	// Kind is the shading model.
	Kind options.MaterialKinds

	// Color is the main color of the surface.
	Color color.RGBA

	// VertexColors uses the mesh colors instead of Color.
	VertexColors bool

	// Shiny is the specular shininess exponent, used by [options.Standard].
	Shiny float32

	// LineWidth is the width in pixels of line meshes.
	LineWidth float32

	pool     *Pool
	released bool
}

// NewMaterial allocates a new material with default surface parameters
// from the given pool (nil for [DefaultPool]).
func NewMaterial(pool *Pool, kind options.MaterialKinds) *Material {
	mt := &Material{Kind: kind, pool: poolOrDefault(pool)}
	mt.pool.alloc()
	mt.Defaults()
	return mt
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{128, 128, 128, 255}
	mt.Shiny = 30
	mt.LineWidth = 1
}

// SetFlat makes the material unlit with a uniform color,
// ignoring any per-vertex colors.
func (mt *Material) SetFlat(c color.RGBA) *Material {
	mt.Kind = options.Basic
	mt.Color = c
	mt.VertexColors = false
	return mt
}

func (mt *Material) String() string {
	return fmt.Sprintf("%v %v vertex-colors=%v", mt.Kind, mt.Color, mt.VertexColors)
}

// IsTransparent returns true if the color has alpha < 255.
func (mt *Material) IsTransparent() bool {
	return !mt.VertexColors && mt.Color.A < 255
}

// Dispose releases the material.
func (mt *Material) Dispose() {
	mt.pool.release("material", mt.String(), &mt.released)
}

// IsDisposed returns whether [Material.Dispose] has been called.
func (mt *Material) IsDisposed() bool {
	return mt.released
}
