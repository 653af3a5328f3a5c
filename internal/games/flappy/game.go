package flappy

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game adapts a World to a terminal host: it owns the world's lifetime and
// draws it onto a cell screen.
type Game struct {
	cfg    config.FlappyConfig
	logger *log.Logger
	world  *World
	seed   int64
}

// NewGame creates a game that builds its worlds from cfg.
func NewGame(cfg config.FlappyConfig, logger *log.Logger) *Game {
	return &Game{cfg: cfg, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset discards the current world and starts a fresh one on the intro
// screen. The best score is not carried over.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.seed = rt.Seed
	g.world = New(g.cfg, rt.Seed, g.logger)
}

// Step advances the world by one tick.
func (g *Game) Step(in core.InputFrame, dt float64) StepResult {
	return g.world.Step(in, dt)
}

// Render draws the current world.
func (g *Game) Render(dst *core.Screen) {
	Render(dst, g.world.Snapshot(), g.cfg.Window.Width, g.cfg.Window.Height)
}

// World returns the running world.
func (g *Game) World() *World {
	return g.world
}

// Seed returns the seed of the running world.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration worlds are built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}
