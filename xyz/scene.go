// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is a headless 3D scenegraph: solids with mesh geometry and
// materials, collected in groups, viewed through a camera that can be fit
// to the bounds of the whole scene or of its content group.
package xyz

import (
	"image/color"
)

// Scopes are the parts of a [Scene] that bounds are measured over.
type Scopes int32

const (
	// ScopeScene is everything visible in the scene.
	ScopeScene Scopes = iota

	// ScopeContent is only the content group.
	ScopeContent
)

func (sc Scopes) String() string {
	if sc == ScopeContent {
		return "content"
	}
	return "scene"
}

// FitMargin is the factor applied to the bounding radius when fitting.
const FitMargin = 1.15

// Scene is the overall scenegraph: a content group holding the
// molecular primitives, a helpers group for non-molecular solids,
// a camera, lights and a background color.
type Scene struct {

	// Content holds the displayed molecular primitives.
	Content *Group

	// Helpers holds solids that are visible but not content, like axes.
	Helpers *Group

	// Camera is the camera.
	Camera Camera

	// Lights are the lights.
	Lights Lights

	// Background is the background color.
	Background color.RGBA
}

// NewScene returns a new empty scene with a default camera.
func NewScene() *Scene {
	sc := &Scene{
		Content:    NewGroup("content"),
		Helpers:    NewGroup("helpers"),
		Background: color.RGBA{A: 255},
	}
	sc.Camera.Defaults()
	sc.Lights.Defaults()
	return sc
}

// ContentLen returns the number of solids in the content group.
func (sc *Scene) ContentLen() int {
	return sc.Content.Len()
}

// Solids returns every visible solid, helpers first.
func (sc *Scene) Solids() []*Solid {
	all := make([]*Solid, 0, sc.Helpers.Len()+sc.Content.Len())
	all = append(all, sc.Helpers.Kids...)
	return append(all, sc.Content.Kids...)
}

// UpdateBounds recomputes the mesh bounds in the given scope.
// Geometry bounds are never assumed to be current.
func (sc *Scene) UpdateBounds(scope Scopes) {
	sc.Content.UpdateMeshBBox()
	if scope == ScopeScene {
		sc.Helpers.UpdateMeshBBox()
	}
}

// Bounds returns the bounds of the given scope as of the last
// [Scene.UpdateBounds].
func (sc *Scene) Bounds(scope Scopes) Box3 {
	bb := sc.Content.BBox
	if scope == ScopeScene {
		bb.ExpandByBox(sc.Helpers.BBox)
	}
	return bb
}

// Fit fits the camera to the bounds of the given scope, which must
// have been updated with [Scene.UpdateBounds].
func (sc *Scene) Fit(scope Scopes) error {
	return sc.Camera.FitBox(sc.Bounds(scope), FitMargin)
}
