// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"cogentcore.org/molview/base/errors"
	"cogentcore.org/molview/options"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Mouse and wheel sensitivities.
var (
	OrbitDegPerPixel float32 = 0.4
	PanPerPixel      float32 = 0.05
	ZoomPerWheel     float32 = 0.1
)

// input is the mouse and keyboard state of a game.
type input struct {
	dragging bool
	lastX    int
	lastY    int

	// editing is set while the source text field has focus.
	editing bool
	text    []rune
}

func (in *input) update(g *Game) error {
	if in.editing {
		in.edit(g)
		return nil
	}
	in.mouse(g)
	return in.keys(g)
}

func (in *input) mouse(g *Game) {
	cam := &g.Viewer.Scene.Camera
	x, y := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		in.dragging = true
		in.lastX, in.lastY = x, y
	}
	if !left && !right {
		in.dragging = false
	}
	if in.dragging {
		dx, dy := float32(x-in.lastX), float32(y-in.lastY)
		in.lastX, in.lastY = x, y
		shift := ebiten.IsKeyPressed(ebiten.KeyShift)
		if right || shift {
			cam.Pan(dx*PanPerPixel, -dy*PanPerPixel)
		} else if dx != 0 || dy != 0 {
			cam.Orbit(-dx*OrbitDegPerPixel, -dy*OrbitDegPerPixel)
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Zoom(-float32(wy) * ZoomPerWheel)
	}
}

func (in *input) keys(g *Game) error {
	v := g.Viewer
	r := v.Options.Render
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySlash) || inpututil.IsKeyJustPressed(ebiten.KeyTab):
		in.editing = true
		in.text = []rune(v.Options.Source)
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		r.Representation = options.Spheres
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		r.Representation = options.RibbonTube
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		r.Representation = options.RibbonFlat
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		kinds := options.MaterialKindsValues()
		r.Material = kinds[(int(r.Material)+1)%len(kinds)]
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		r.Overlays.Atoms = !r.Overlays.Atoms
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		r.Overlays.Bonds = !r.Overlays.Bonds
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		r.Overlays.Backbone = !r.Overlays.Backbone
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		v.Axes = !v.Axes
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if err := v.FitNow(); err != nil {
			slog.Info("render: nothing to fit", "err", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.Scene.Camera.DefaultPose()
		if v.Scene.ContentLen() > 0 {
			errors.Log(v.FitNow())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		p := v.Options.Parse
		p.Model++
		v.SetParse(p)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		p := v.Options.Parse
		if p.Model > 1 {
			p.Model--
			v.SetParse(p)
		}
	}
	v.SetRender(r)
	return nil
}

// edit handles typing into the source text field. Enter commits the
// text as the new source and Escape discards it.
func (in *input) edit(g *Game) {
	in.text = ebiten.AppendInputChars(in.text)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(in.text) > 0 {
		in.text = in.text[:len(in.text)-1]
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		g.Viewer.SetSource(string(in.text))
		in.editing = false
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		in.editing = false
	}
	if !in.editing {
		in.text = in.text[:0]
	}
}
