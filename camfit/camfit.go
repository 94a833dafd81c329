// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camfit decides when the camera is fit to the scene: once a frame
// after the view is mounted, and once for every source that finishes
// loading, after its primitives have been committed to the content group.
// Option changes that rebuild primitives never cause a fit.
package camfit

import (
	"log/slog"

	"cogentcore.org/molview/frame"
	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/xyz"
)

// Scheduler defers callbacks to the next frame.
type Scheduler interface {
	Request(fn func()) frame.ID
	Cancel(id frame.ID) bool
}

// Target is what gets measured and fit; [xyz.Scene] is one.
type Target interface {

	// ContentLen returns the number of solids in the content group.
	ContentLen() int

	// UpdateBounds recomputes the geometry bounds in the scope.
	UpdateBounds(scope xyz.Scopes)

	// Fit fits the camera to the bounds of the scope.
	Fit(scope xyz.Scopes) error
}

// Deps are the inputs that can trigger a reload fit.
type Deps struct {
	Scene   *molecule.Molecule
	Loading bool
	Source  string
}

// InitialStates are the states of the one-shot fit after mounting.
type InitialStates int32

const (
	Idle InitialStates = iota
	PendingInitialFit
	Fitted
)

func (st InitialStates) String() string {
	return [...]string{"idle", "pending-initial-fit", "fitted"}[st]
}

// ReloadStates are the states of the fit after a new source loads.
type ReloadStates int32

const (
	Settled ReloadStates = iota
	PendingReload
	Refitted
)

func (st ReloadStates) String() string {
	return [...]string{"settled", "pending-reload", "refitted"}[st]
}

// ReloadDelay is the number of frames a reload fit waits before it starts
// checking for content.
const ReloadDelay = 2

// Controller runs the fit state machines of one view session.
// It must only be used from the frame goroutine.
type Controller struct {
	Frames Scheduler
	Target Target

	initial   InitialStates
	reload    ReloadStates
	initialID frame.ID
	reloadID  frame.ID

	deps     Deps
	observed bool

	// fittedSource is the last source a reload fit succeeded for.
	fittedSource string

	fits, failures int
}

// New returns a new controller.
func New(frames Scheduler, target Target) *Controller {
	return &Controller{Frames: frames, Target: target}
}

// Mount starts the initial fit of the whole scene on the next frame.
// It does nothing if the session is already mounted. A failed initial
// fit is not retried.
func (c *Controller) Mount() {
	if c.initial != Idle {
		return
	}
	c.initial = PendingInitialFit
	c.initialID = c.Frames.Request(func() {
		c.initialID = 0
		c.fit(xyz.ScopeScene)
		c.initial = Fitted
	})
}

// Observe is called with the current deps after every update. When they
// differ from the last observed deps, any pending reload fit is cancelled,
// and if a scene for a source that has not been fit yet has finished
// loading, a new reload fit is started.
func (c *Controller) Observe(d Deps) {
	if c.reload == Refitted {
		c.reload = Settled
	}
	if c.observed && d == c.deps {
		return
	}
	c.observed = true
	c.deps = d
	c.cancelReload()
	if d.Scene == nil || d.Loading || d.Source == c.fittedSource {
		return
	}
	c.reload = PendingReload
	src := d.Source
	var poll func()
	poll = func() {
		if c.Target.ContentLen() == 0 {
			c.reloadID = c.Frames.Request(poll)
			return
		}
		c.reloadID = 0
		if c.fit(xyz.ScopeContent) {
			c.fittedSource = src
			c.reload = Refitted
			return
		}
		c.reload = Settled
	}
	c.reloadID = c.after(ReloadDelay, poll)
}

// after requests fn to run n frames from now and returns the ID of the
// first pending request; later requests update reloadID as they go.
func (c *Controller) after(n int, fn func()) frame.ID {
	if n <= 1 {
		return c.Frames.Request(fn)
	}
	return c.Frames.Request(func() {
		c.reloadID = c.after(n-1, fn)
	})
}

func (c *Controller) cancelReload() {
	if c.reloadID != 0 {
		c.Frames.Cancel(c.reloadID)
		c.reloadID = 0
	}
	c.reload = Settled
}

// Unmount cancels every pending fit and resets the session.
func (c *Controller) Unmount() {
	if c.initialID != 0 {
		c.Frames.Cancel(c.initialID)
		c.initialID = 0
	}
	c.cancelReload()
	c.initial = Idle
	c.deps = Deps{}
	c.observed = false
	c.fittedSource = ""
}

// FitNow fits the camera to the content right away, as asked by the user.
func (c *Controller) FitNow() error {
	if c.Target.ContentLen() == 0 {
		return xyz.ErrEmptyBounds
	}
	c.Target.UpdateBounds(xyz.ScopeContent)
	return c.Target.Fit(xyz.ScopeContent)
}

// fit updates the bounds of the scope and fits the camera to them.
// Errors and panics are logged and swallowed, leaving the camera as it was.
func (c *Controller) fit(scope xyz.Scopes) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.failures++
			slog.Debug("camfit: fit panicked", "scope", scope, "panic", r)
			ok = false
		}
	}()
	c.Target.UpdateBounds(scope)
	if err := c.Target.Fit(scope); err != nil {
		c.failures++
		slog.Debug("camfit: fit failed", "scope", scope, "err", err)
		return false
	}
	c.fits++
	slog.Debug("camfit: fit", "scope", scope)
	return true
}

// InitialState returns the state of the initial fit.
func (c *Controller) InitialState() InitialStates { return c.initial }

// ReloadState returns the state of the reload fit.
func (c *Controller) ReloadState() ReloadStates { return c.reload }

// FittedSource returns the last source a reload fit succeeded for.
func (c *Controller) FittedSource() string { return c.fittedSource }

// Pending returns whether any fit is waiting for a frame.
func (c *Controller) Pending() bool { return c.initialID != 0 || c.reloadID != 0 }

// Fits returns the number of successful fits.
func (c *Controller) Fits() int { return c.fits }

// Failures returns the number of failed fits.
func (c *Controller) Failures() int { return c.failures }
