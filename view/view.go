// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view coordinates a molecule viewer: it owns the current source
// and options, asks the loader for the molecule, keeps the primitive
// caches current, commits the composed primitives to the scene, and lets
// the camera fit controller see when a new source has been displayed.
package view

import (
	"image/color"
	"log/slog"
	"strings"

	"cogentcore.org/molview/cache"
	"cogentcore.org/molview/camfit"
	"cogentcore.org/molview/frame"
	"cogentcore.org/molview/loader"
	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/molmesh"
	"cogentcore.org/molview/options"
	"cogentcore.org/molview/xyz"
)

// AxesLength is the length in Å of the axes helper.
const AxesLength = 5

// SceneLoader loads the molecule of a source; [loader.Loader] is one.
type SceneLoader interface {
	Load(source string, po options.Parse)
	Poll() bool
	State() loader.State
	Close() error
}

// Frame is everything the renderer needs to draw one frame.
type Frame struct {

	// Solids are the visible solids, helpers first.
	Solids []*xyz.Solid

	Background color.RGBA
	Camera     *xyz.Camera
	Lights     *xyz.Lights

	Source  string
	Title   string
	Loading bool
	Error   string
}

// Viewer is the view orchestrator. All of its methods must be called
// from the frame goroutine.
type Viewer struct {

	// Options are the current options, including the source.
	Options options.Options

	// Axes shows the axes helper.
	Axes bool

	// Scene is the scene the renderer draws.
	Scene *xyz.Scene

	// Frames schedules the deferred camera fits.
	Frames *frame.Scheduler

	loader  SceneLoader
	builder *molmesh.Builder
	objects *cache.Cache
	ribbons *cache.Ribbon
	fit     *camfit.Controller
	axes    *xyz.Solid
	state   loader.State

	// mounting is set by Mount until the next Update has committed
	// the first frame
	mounting bool
}

// New returns a new viewer showing opts with molecules from ld and
// primitive resources allocated from pool (nil for [xyz.DefaultPool]).
func New(opts options.Options, ld SceneLoader, pool *xyz.Pool) *Viewer {
	v := &Viewer{
		Options: opts,
		Scene:   xyz.NewScene(),
		Frames:  &frame.Scheduler{},
		loader:  ld,
		builder: &molmesh.Builder{Pool: pool},
	}
	v.Options.Source = strings.TrimSpace(v.Options.Source)
	v.objects = cache.New(v.builder)
	v.ribbons = cache.NewRibbon(v.builder)
	v.fit = camfit.New(v.Frames, v.Scene)
	return v
}

// SetSource sets the source to show, a local path or URL.
func (v *Viewer) SetSource(source string) {
	v.Options.Source = strings.TrimSpace(source)
}

// SetRender sets the render options.
func (v *Viewer) SetRender(r options.Render) {
	v.Options.Render = r
}

// SetParse sets the parse options, which reloads the source.
func (v *Viewer) SetParse(p options.Parse) {
	v.Options.Parse = p
}

// Mount starts the view session. The initial camera fit is requested
// by the next [Viewer.Update], once that update has committed the first
// frame, and runs on the frame after it.
func (v *Viewer) Mount() {
	v.mounting = true
}

// Update brings the scene up to date with the options and the loader,
// rebuilding only the primitives whose inputs changed.
func (v *Viewer) Update() {
	v.loader.Load(v.Options.Source, v.Options.Parse)
	v.loader.Poll()
	v.state = v.loader.State()
	mol := v.state.Scene

	r := &v.Options.Render
	set := v.objects.Build(mol, r.SceneBuild())
	ribbon := v.ribbons.Build(mol, r.RibbonBuild())
	if v.Scene.Content.SetKids(Compose(r.Representation, set, ribbon)) {
		slog.Debug("view: content changed", "solids", v.Scene.ContentLen())
	}
	v.Scene.Background = r.BackgroundColor()
	v.updateAxes()
	if v.mounting {
		v.mounting = false
		v.fit.Mount()
	}

	v.fit.Observe(camfit.Deps{Scene: mol, Loading: v.state.Loading, Source: v.Options.Source})
}

// Step advances one frame: it runs the callbacks due on this frame
// and then updates.
func (v *Viewer) Step() {
	v.Frames.Tick()
	v.Update()
}

func (v *Viewer) updateAxes() {
	if v.Axes && v.axes == nil {
		v.axes = v.builder.Axes(AxesLength)
	}
	if !v.Axes && v.axes != nil {
		v.Scene.Helpers.SetKids(nil)
		v.axes.Dispose()
		v.axes = nil
	}
	if v.axes != nil {
		v.Scene.Helpers.SetKids([]*xyz.Solid{v.axes})
	}
}

// Compose returns the primitives shown in the representation, in
// drawing order. Absent primitives are skipped.
func Compose(rep options.Representations, set cache.Set, ribbon *xyz.Solid) []*xyz.Solid {
	var all []*xyz.Solid
	if rep.IsRibbon() {
		all = []*xyz.Solid{ribbon, set.Bonds}
	} else {
		all = []*xyz.Solid{set.Atoms, set.Bonds, set.Backbone}
	}
	solids := all[:0]
	for _, sld := range all {
		if sld != nil {
			solids = append(solids, sld)
		}
	}
	return solids
}

// Frame returns what to draw.
func (v *Viewer) Frame() Frame {
	f := Frame{
		Solids:     v.Scene.Solids(),
		Background: v.Scene.Background,
		Camera:     &v.Scene.Camera,
		Lights:     &v.Scene.Lights,
		Source:     v.Options.Source,
		Loading:    v.state.Loading,
		Error:      v.state.Error,
	}
	if v.state.Scene != nil {
		f.Title = v.state.Scene.Title
	}
	return f
}

// Molecule returns the molecule shown, if any.
func (v *Viewer) Molecule() *molecule.Molecule {
	return v.state.Scene
}

// FitNow fits the camera to the content right away.
func (v *Viewer) FitNow() error {
	return v.fit.FitNow()
}

// Close ends the view session, releasing every primitive and the loader.
func (v *Viewer) Close() error {
	v.mounting = false
	v.fit.Unmount()
	v.Scene.Content.SetKids(nil)
	v.Scene.Helpers.SetKids(nil)
	v.objects.Close()
	v.ribbons.Close()
	if v.axes != nil {
		v.axes.Dispose()
		v.axes = nil
	}
	return v.loader.Close()
}
