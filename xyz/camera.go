// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/molview/base/errors"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyBounds is returned when fitting the camera to empty bounds.
var ErrEmptyBounds = errors.New("xyz: cannot fit camera to empty bounds")

// ErrBadBounds is returned when fitting the camera to non-finite bounds.
var ErrBadBounds = errors.New("xyz: cannot fit camera to non-finite bounds")

// Camera defines the properties of the camera
type Camera struct {

	// Pos is the position of the camera.
	Pos mgl32.Vec3

	// Target is where the camera is pointing at. It moves with panning
	// movements and is reset by [Camera.LookAt] and [Camera.FitBox].
	Target mgl32.Vec3

	// UpDir is which way is up. It defaults to positive Y and is reset by
	// [Camera.LookAt].
	UpDir mgl32.Vec3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width/height).
	Aspect float32

	// Near is the near plane distance.
	Near float32

	// Far is the far plane distance.
	Far float32

	// ViewMatrix is the view matrix (inverse of the camera pose).
	ViewMatrix mgl32.Mat4

	// ProjectionMatrix is the perspective projection matrix.
	ProjectionMatrix mgl32.Mat4
}

func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to default location and orientation, looking
// at the origin from 0,0,10, with up Y axis
func (cm *Camera) DefaultPose() {
	cm.Pos = mgl32.Vec3{0, 0, 10}
	cm.LookAtOrigin()
}

// UpdateMatrix updates the view and projection matrices.
func (cm *Camera) UpdateMatrix() {
	cm.ViewMatrix = mgl32.LookAtV(cm.Pos, cm.Target, cm.UpDir)
	cm.ProjectionMatrix = mgl32.Perspective(mgl32.DegToRad(cm.FOV), cm.Aspect, cm.Near, cm.Far)
}

// SetAspect sets the aspect ratio from a viewport size.
func (cm *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	cm.Aspect = float32(width) / float32(height)
	cm.UpdateMatrix()
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir mgl32.Vec3) {
	cm.Target = target
	if upDir.Len() == 0 {
		upDir = mgl32.Vec3{0, 1, 0}
	}
	cm.UpDir = upDir
	cm.UpdateMatrix()
}

// LookAtOrigin points the camera at origin with Y axis pointing Up (i.e., standard)
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// LookAtTarget points the camera at current target using current up direction
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// ViewVector is the vector between the camera position and target
func (cm *Camera) ViewVector() mgl32.Vec3 {
	return cm.Pos.Sub(cm.Target)
}

// Distance is the distance from the camera to its target.
func (cm *Camera) Distance() float32 {
	return cm.ViewVector().Len()
}

// Orbit moves the camera along the given 2D axes in degrees
// (delX = left/right, delY = up/down),
// relative to current position and orientation,
// keeping the same distance from the Target, and rotating the camera and
// the Up direction vector to keep looking at the target.
func (cm *Camera) Orbit(delX, delY float32) {
	ctdir := cm.ViewVector()
	if ctdir.Len() == 0 {
		ctdir = mgl32.Vec3{0, 0, 1}
	}
	dir := ctdir.Normalize()
	up := cm.UpDir
	right := up.Cross(dir)
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()

	// delX rotates around the up vector, delY around the right vector
	dxq := mgl32.QuatRotate(mgl32.DegToRad(delX), up.Normalize())
	dyq := mgl32.QuatRotate(mgl32.DegToRad(delY), right)
	ctdir = dyq.Rotate(dxq.Rotate(ctdir))

	cm.Pos = cm.Target.Add(ctdir)
	cm.UpDir = dyq.Rotate(cm.UpDir) // this is only one that affects up
	cm.LookAtTarget()
}

// Pan moves the camera along the given 2D axes (left/right, up/down),
// relative to current position and orientation (i.e., in the plane of the
// current window view)
// and it moves the target by the same increment, changing the target position.
func (cm *Camera) Pan(delX, delY float32) {
	fwd := cm.Target.Sub(cm.Pos)
	if fwd.Len() == 0 {
		return
	}
	fwd = fwd.Normalize()
	right := fwd.Cross(cm.UpDir)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(fwd)
	td := right.Mul(-delX).Add(up.Mul(-delY))
	cm.Pos = cm.Pos.Add(td)
	cm.Target = cm.Target.Add(td)
	cm.UpdateMatrix()
}

// Zoom moves along axis given pct closer or further from the target
// it always moves the target back also if it distance is < 1
func (cm *Camera) Zoom(zoomPct float32) {
	ctaxis := cm.ViewVector()
	if ctaxis.Len() == 0 {
		ctaxis = mgl32.Vec3{0, 0, 1}
	}
	dist := ctaxis.Len()
	del := ctaxis.Mul(zoomPct)
	cm.Pos = cm.Pos.Add(del)
	if zoomPct < 0 && dist < 1 {
		cm.Target = cm.Target.Add(del)
	}
	cm.UpdateMatrix()
}

// FitBox moves the camera along its current view direction so that the
// given box is fully visible, pointing at its center, with the radius of
// the box's bounding sphere scaled by margin. The camera is left
// unchanged when an error is returned.
func (cm *Camera) FitBox(bb Box3, margin float32) error {
	if bb.IsEmpty() {
		return ErrEmptyBounds
	}
	if !bb.IsFinite() {
		return ErrBadBounds
	}
	sp := bb.Sphere()
	radius := max(sp.Radius, 1) * max(margin, 1)

	dir := cm.ViewVector()
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 0, 1}
	}
	dir = dir.Normalize()

	half := mgl32.DegToRad(cm.FOV) / 2
	if cm.Aspect > 0 && cm.Aspect < 1 {
		half = math32.Atan(math32.Tan(half) * cm.Aspect)
	}
	dist := radius / math32.Sin(half)

	cm.Target = sp.Center
	cm.Pos = sp.Center.Add(dir.Mul(dist))
	cm.Near = max(dist-radius, dist/100)
	cm.Far = dist + 4*radius
	cm.UpdateMatrix()
	return nil
}

// Project maps a world point into pixel coordinates in a viewport of the
// given size, also returning the normalized depth (-1 near, 1 far).
// ok is false for points behind the camera.
func (cm *Camera) Project(p mgl32.Vec3, width, height float32) (x, y, depth float32, ok bool) {
	clip := cm.ProjectionMatrix.Mul4(cm.ViewMatrix).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X()/w, clip.Y()/w, clip.Z()/w
	x = (nx + 1) * 0.5 * width
	y = (1 - ny) * 0.5 * height
	return x, y, nz, true
}

// ProjectRadius returns the approximate on-screen radius in pixels of a
// sphere of the given world radius at world point p, for a viewport of
// the given height.
func (cm *Camera) ProjectRadius(p mgl32.Vec3, radius, height float32) float32 {
	view := cm.ViewMatrix.Mul4x1(p.Vec4(1))
	depth := -view.Z()
	if depth <= 0 {
		return 0
	}
	f := 1 / math32.Tan(mgl32.DegToRad(cm.FOV)/2)
	return radius * f / depth * height / 2
}
