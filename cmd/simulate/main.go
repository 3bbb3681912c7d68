// Command simulate runs a level headlessly with the player circling the
// arena and logs every boss event.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/arena"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

func main() {
	levelName := flag.String("level", arena.DefaultLevel, "level name in levels/ (basename, .json optional)")
	frames := flag.Int("frames", 3600, "frames to simulate")
	fps := flag.Float64("fps", 60, "simulated frames per second")
	radius := flag.Float64("radius", 60, "radius of the player's circular path")
	damageEvery := flag.Int("damage-every", 0, "hit every boss for 1 every N frames (0 disables)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	list := flag.Bool("list", false, "list embedded boss prefabs and exit")
	flag.Parse()

	if *list {
		for _, name := range prefabs.Bosses() {
			fmt.Println(name)
		}
		return
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *levelName, *frames, *fps, *radius, *damageEvery); err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, levelName string, frames int, fps, radius float64, damageEvery int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive")
	}
	a, err := arena.New(arena.Options{Level: levelName, Logger: logger})
	if err != nil {
		return err
	}

	dt := 1 / fps
	center := a.PlayerSpawn()
	stats := map[ecs.EventType]int{}
	for frame := range frames {
		angle := float64(frame) / fps
		player := cp.Vector{X: center.X + radius*math.Cos(angle), Y: center.Y - radius*math.Abs(math.Sin(angle))}

		if damageEvery > 0 && frame > 0 && frame%damageEvery == 0 {
			for _, b := range a.Bosses() {
				a.Damage(b.Entity, 1)
			}
		}

		evts, stepErr := a.Step(dt, player)
		if stepErr != nil {
			logger.Warn("frame aborted for some bosses", "frame", frame, "err", stepErr)
		}
		for _, e := range evts {
			stats[e.Type]++
			logEvent(logger, e)
			if e.Type == ecs.EventBossDefeated {
				a.Remove(e.Entity)
			}
		}
		if len(a.Bosses()) == 0 {
			logger.Info("all bosses defeated", "frame", frame)
			break
		}
	}

	for _, b := range a.Bosses() {
		logger.Info("boss",
			"name", b.Name,
			"state", b.State,
			"health", b.Health,
			"energy", b.Energy,
			"x", b.Center.X,
			"y", b.Center.Y,
		)
	}
	logger.Info("simulation finished",
		"frames", a.Frame(),
		"spawns", stats[ecs.EventAttackSpawn],
		"behavior_changes", stats[ecs.EventBehaviorChanged],
		"defeated", stats[ecs.EventBossDefeated],
	)
	return nil
}

func logEvent(logger *slog.Logger, e ecs.Event) {
	switch data := e.Data.(type) {
	case component.AttackSpawn:
		logger.Debug("attack spawn", "frame", e.Frame, "boss", e.Entity, "kind", data.Kind, "angle", data.Angle, "damage", data.Damage, "id", data.ID)
	case component.BehaviorChange:
		logger.Info("behavior", "frame", e.Frame, "boss", e.Entity, "from", data.From, "to", data.To, "stage", data.Stage)
	default:
		logger.Info(string(e.Type), "frame", e.Frame, "boss", e.Entity)
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
}
