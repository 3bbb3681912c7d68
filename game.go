package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/arena"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	flashFrames  = 12
	statusFrames = 120
)

type attackFlash struct {
	kind   component.AttackKind
	origin cp.Vector
	angle  float64
	ttl    int
}

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	levelName string
	arena     *arena.Arena
	logger    *slog.Logger
	watcher   *prefabs.Watcher
	ui        *ebitenui.UI

	colors  map[string]color.Color
	energy  map[ecs.Entity]float32
	flashes []attackFlash
	player  cp.Vector

	// level to screen transform
	scale, offX, offY float64

	clipboardOK bool
	status      string
	statusTTL   int
}

func NewGame(levelName string, debug, watch bool, logger *slog.Logger) (*Game, error) {
	a, err := arena.New(arena.Options{Level: levelName, Logger: logger})
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:     debug,
		levelName: levelName,
		arena:     a,
		logger:    logger,
		colors:    make(map[string]color.Color),
		energy:    make(map[ecs.Entity]float32),
		player:    a.PlayerSpawn(),
	}
	for _, name := range prefabs.Bosses() {
		g.refreshColor(name)
	}
	g.fitLevel()

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}

	if watch {
		if dirs := prefabs.DiskDirs(); len(dirs) > 0 {
			w, err := prefabs.NewWatcher(dirs...)
			if err != nil {
				logger.Warn("prefab watcher disabled", "err", err)
			} else {
				g.watcher = w
				logger.Info("watching prefabs", "dirs", strings.Join(dirs, ","))
			}
		}
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	g.frames++
	g.reloadChanged()
	g.handleKeys()

	mx, my := ebiten.CursorPosition()
	g.player = g.toLevel(float64(mx), float64(my))

	events, err := g.arena.Step(1/float64(ebiten.TPS()), g.player)
	if err != nil {
		g.logger.Debug("boss update aborted", "err", err)
	}
	g.consume(events)

	g.tickFlashes()
	if g.statusTTL > 0 {
		g.statusTTL--
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	if paused && !g.paused {
		// rebuild so the boss list is current
		g.ui = NewPauseUI(g)
	}
	g.paused = paused
}

func (g *Game) handleKeys() {
	hitAll := inpututil.IsKeyJustPressed(ebiten.KeyD)
	click := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if hitAll || click {
		for _, b := range g.arena.Bosses() {
			if hitAll || contains(b.Box, g.player) {
				g.arena.Damage(b.Entity, 1)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reloadAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
}

func (g *Game) consume(events []ecs.Event) {
	for _, e := range events {
		switch e.Type {
		case ecs.EventAttackSpawn:
			if spawn, ok := e.Data.(component.AttackSpawn); ok {
				g.flashes = append(g.flashes, attackFlash{kind: spawn.Kind, origin: spawn.Origin, angle: spawn.Angle, ttl: flashFrames})
			}
		case ecs.EventBehaviorChanged:
			if change, ok := e.Data.(component.BehaviorChange); ok {
				g.logger.Debug("behavior changed", "boss", e.Entity, "from", change.From, "to", change.To, "stage", change.Stage)
			}
		case ecs.EventBossDefeated:
			g.logger.Info("boss removed", "boss", e.Entity, "frame", e.Frame)
			g.arena.Remove(e.Entity)
			delete(g.energy, e.Entity)
			g.setStatus("boss defeated")
		}
	}
}

func (g *Game) tickFlashes() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ttl--
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

// reloadChanged respawns bosses whose prefab or selection script changed on
// disk since the last frame.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		g.logger.Warn("prefab watcher", "err", err)
	default:
	}

	seen := make(map[string]bool)
	for _, name := range g.watcher.Pending() {
		var targets []string
		if strings.HasPrefix(name, "scripts/") {
			targets = prefabs.UsingScript(name)
		} else {
			targets = []string{strings.TrimSuffix(name, path.Ext(name))}
		}
		for _, prefab := range targets {
			if seen[prefab] {
				continue
			}
			seen[prefab] = true
			g.respawn(prefab)
		}
	}
}

func (g *Game) reloadAll() {
	seen := make(map[string]bool)
	for _, b := range g.arena.Bosses() {
		if seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		g.respawn(b.Name)
	}
}

func (g *Game) respawn(prefab string) {
	n, err := g.arena.Respawn(prefab)
	if err != nil {
		g.logger.Error("reload failed", "prefab", prefab, "err", err)
		g.setStatus(fmt.Sprintf("reload %s failed", prefab))
		return
	}
	g.refreshColor(prefab)
	g.setStatus(fmt.Sprintf("reloaded %s (%d)", prefab, n))
}

func (g *Game) refreshColor(prefab string) {
	spec, err := prefabs.LoadBossSpec(prefab)
	if err != nil {
		return
	}
	g.colors[spec.Name] = spec.Color.Or(colornames.Orange)
}

func (g *Game) copySnapshot() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	out, err := g.arena.MarshalSnapshot()
	if err != nil {
		g.logger.Error("snapshot failed", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.setStatus("snapshot copied")
}

func contains(bb cp.BB, v cp.Vector) bool {
	return v.X >= bb.L && v.X <= bb.R && v.Y >= bb.B && v.Y <= bb.T
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTTL = statusFrames
}

// fitLevel scales the level to fill the base resolution, centred.
func (g *Game) fitLevel() {
	m := g.arena.TileMap()
	if m == nil {
		g.scale = 1
		return
	}
	w, h := m.PixelSize()
	g.scale = math.Min(common.BaseWidth/w, common.BaseHeight/h)
	g.offX = (common.BaseWidth - w*g.scale) / 2
	g.offY = (common.BaseHeight - h*g.scale) / 2
}

func (g *Game) toScreen(v cp.Vector) (float32, float32) {
	return float32(v.X*g.scale + g.offX), float32(v.Y*g.scale + g.offY)
}

func (g *Game) toLevel(x, y float64) cp.Vector {
	return cp.Vector{X: (x - g.offX) / g.scale, Y: (y - g.offY) / g.scale}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	g.drawTiles(screen)
	g.drawFlashes(screen)
	for _, b := range g.arena.Bosses() {
		g.drawBoss(screen, b)
	}
	g.drawPlayer(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frame: %d    FPS: %.2f    [P] pause  [D] damage  [R] reload  [C] copy", g.arena.Frame(), ebiten.ActualFPS()))
	if g.statusTTL > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 4, common.BaseHeight-20)
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
