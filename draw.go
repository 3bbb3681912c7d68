package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/arena"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	barHeight   = 4
	aimLength   = 40
	burstRadius = 28
)

func (g *Game) drawTiles(screen *ebiten.Image) {
	m := g.arena.TileMap()
	if m == nil {
		return
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			var clr color.Color
			switch m.At(x, y) {
			case component.TileSolid:
				clr = colornames.Slategray
			case component.TileSpike:
				clr = colornames.Darkred
			default:
				continue
			}
			r := g.screenRect(m.CellBox(x, y))
			r.Fill(screen, clr)
			if g.debug {
				r.Stroke(screen, 1, colornames.Dimgray)
			}
		}
	}
}

func (g *Game) drawBoss(screen *ebiten.Image, b arena.BossView) {
	clr, ok := g.colors[b.Name]
	if !ok {
		clr = colornames.Orange
	}
	switch {
	case b.Faulted:
		clr = colornames.Magenta
	case b.State == component.BehaviorRest:
		clr = colornames.Gray
	case b.State == component.BehaviorDeath:
		clr = colornames.Darkslategray
	}

	r := g.screenRect(b.Box)
	r.Fill(screen, clr)
	r.Stroke(screen, 2, colornames.White)

	cx, cy := g.toScreen(b.Center)
	if b.State == component.BehaviorChase {
		ex := cx + float32(aimLength*math.Cos(b.Angle))
		ey := cy - float32(aimLength*math.Sin(b.Angle))
		vector.StrokeLine(screen, cx, cy, ex, ey, 2, colornames.Yellow, true)
	}

	health := Rect{X: r.X, Y: r.Y - 2*barHeight - 4, Width: r.Width, Height: barHeight}
	if b.MaxHealth > 0 {
		health.Bar(screen, common.Clamp01(float32(b.Health)/float32(b.MaxHealth)), colornames.Red)
	}
	energy := Rect{X: r.X, Y: r.Y - barHeight - 2, Width: r.Width, Height: barHeight}
	if b.MaxEnergy > 0 {
		target := common.Clamp01(float32(b.Energy / b.MaxEnergy))
		shown, ok := g.energy[b.Entity]
		if !ok {
			shown = target
		}
		shown = common.Lerp(shown, target, 0.2)
		g.energy[b.Entity] = shown
		energy.Bar(screen, shown, colornames.Deepskyblue)
	}

	label := b.State.String()
	if b.HasStage {
		label = fmt.Sprintf("%s/%s %.0f%%", label, b.Stage, b.StageProgress*100)
	}
	if g.debug {
		label = fmt.Sprintf("%s %s (%.0f,%.0f)", b.Name, label, b.Center.X, b.Center.Y)
	}
	ebitenutil.DebugPrintAt(screen, label, int(r.X), int(r.Y+r.Height)+2)
}

func (g *Game) drawFlashes(screen *ebiten.Image) {
	for _, f := range g.flashes {
		alpha := uint8(255 * f.ttl / flashFrames)
		x, y := g.toScreen(f.origin)
		switch f.kind {
		case component.AttackProjectile:
			end := cp.Vector{X: f.origin.X + 600*math.Cos(f.angle), Y: f.origin.Y - 600*math.Sin(f.angle)}
			ex, ey := g.toScreen(end)
			vector.StrokeLine(screen, x, y, ex, ey, 2, color.NRGBA{R: 255, G: 220, B: 80, A: alpha}, true)
		case component.AttackBurst:
			vector.StrokeCircle(screen, x, y, float32(burstRadius*g.scale), 3, color.NRGBA{R: 255, G: 120, B: 40, A: alpha}, true)
		case component.AttackDiveImpact:
			vector.FillCircle(screen, x, y, float32(2*burstRadius*g.scale), color.NRGBA{R: 255, G: 60, B: 60, A: alpha / 2}, true)
		}
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	x, y := g.toScreen(g.player)
	vector.StrokeCircle(screen, x, y, 8, 2, colornames.Crimson, true)
	vector.StrokeLine(screen, x-12, y, x+12, y, 1, colornames.Crimson, true)
	vector.StrokeLine(screen, x, y-12, x, y+12, 1, colornames.Crimson, true)
}
