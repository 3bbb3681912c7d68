package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

func (g *Game) screenRect(bb cp.BB) Rect {
	x, y := g.toScreen(cp.Vector{X: bb.L, Y: bb.B})
	return Rect{X: x, Y: y, Width: float32((bb.R - bb.L) * g.scale), Height: float32((bb.T - bb.B) * g.scale)}
}

func (r Rect) Fill(dst *ebiten.Image, clr color.Color) {
	vector.FillRect(dst, r.X, r.Y, r.Width, r.Height, clr, false)
}

func (r Rect) Stroke(dst *ebiten.Image, width float32, clr color.Color) {
	vector.StrokeRect(dst, r.X, r.Y, r.Width, r.Height, width, clr, false)
}

// Bar draws a horizontal meter filled to frac.
func (r Rect) Bar(dst *ebiten.Image, frac float32, fill color.Color) {
	vector.FillRect(dst, r.X, r.Y, r.Width, r.Height, color.NRGBA{A: 160}, false)
	vector.FillRect(dst, r.X, r.Y, r.Width*frac, r.Height, fill, false)
}
