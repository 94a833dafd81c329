// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render shows a [view.Viewer] in an ebiten window. Every ebiten
// update steps the viewer, so all scene mutation happens on the ebiten
// goroutine; drawing projects the frame in software, back to front.
package render

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/molview/config"
	"cogentcore.org/molview/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TPS is the number of frames per second.
const TPS = 60

// Run opens a window showing v and blocks until it is closed.
// It mounts v and closes it on return.
func Run(v *view.Viewer, win config.Window) error {
	g := NewGame(v)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS)
	v.Mount()
	err := ebiten.RunGame(g)
	if cerr := v.Close(); err == nil {
		err = cerr
	}
	return err
}

// Game is the ebiten game of a viewer.
type Game struct {
	Viewer *view.Viewer

	input  input
	width  int
	height int
	white  *ebiten.Image
	verts  []ebiten.Vertex
	idx    []uint16
}

// NewGame returns a new game for v.
func NewGame(v *view.Viewer) *Game {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Game{
		Viewer: v,
		width:  1,
		height: 1,
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (g *Game) Update() error {
	if err := g.input.update(g); err != nil {
		return err
	}
	g.Viewer.Scene.Camera.SetAspect(g.width, g.height)
	g.Viewer.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := g.Viewer.Frame()
	screen.Fill(f.Background)
	pj := newProjector(f.Camera, f.Lights, g.width, g.height)
	for _, it := range pj.project(f.Solids) {
		g.draw(screen, it)
	}
	g.flush(screen)
	ebitenutil.DebugPrintAt(screen, g.status(f), 8, 8)
	if g.input.editing {
		ebitenutil.DebugPrintAt(screen, "source: "+string(g.input.text)+"_", 8, g.height-24)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.width, g.height
}

// draw draws one item, batching consecutive triangles.
func (g *Game) draw(screen *ebiten.Image, it item) {
	if it.kind != triangleItem {
		g.flush(screen)
	}
	switch it.kind {
	case circleItem:
		vector.DrawFilledCircle(screen, it.pts[0][0], it.pts[0][1], it.r, it.color, true)
	case lineItem:
		vector.StrokeLine(screen, it.pts[0][0], it.pts[0][1], it.pts[1][0], it.pts[1][1], it.r, it.color, true)
	case triangleItem:
		if len(g.verts)+3 > 0xffff {
			g.flush(screen)
		}
		r, gg, b, a := float32(it.color.R)/255, float32(it.color.G)/255, float32(it.color.B)/255, float32(it.color.A)/255
		for _, p := range it.pts {
			g.idx = append(g.idx, uint16(len(g.verts)))
			g.verts = append(g.verts, ebiten.Vertex{
				DstX: p[0], DstY: p[1], SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gg, ColorB: b, ColorA: a,
			})
		}
	}
}

func (g *Game) flush(screen *ebiten.Image) {
	if len(g.verts) == 0 {
		return
	}
	screen.DrawTriangles(g.verts, g.idx, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	g.verts = g.verts[:0]
	g.idx = g.idx[:0]
}

func (g *Game) status(f view.Frame) string {
	o := &g.Viewer.Options
	s := f.Source
	if s == "" {
		s = "(no source: press / to enter one)"
	}
	switch {
	case f.Loading:
		s += "  loading..."
	case f.Error != "":
		s += "  error: " + f.Error
	case f.Title != "":
		s += "  " + f.Title
	}
	s += fmt.Sprintf("\n%s  %s  bonds:%v  model:%d  [1-3 repr, m material, a/b/k overlays, f fit, r reset, x axes, / source]",
		o.Render.Representation, o.Render.Material, o.Render.Overlays.Bonds, o.Parse.Model)
	return s
}
