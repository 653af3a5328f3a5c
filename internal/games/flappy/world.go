// Package flappy implements the simulation core of an endless side-scroller:
// entity motion under gravity, a rotated player hitbox tested against
// axis-aligned pipes and floor tiles, recycled scrolling geometry and the
// Intro, Playing, GameOver and Cleanup state machine.
//
// A World is stepped by its host with an input frame and a delta time. It has
// no timers or goroutines of its own and is not safe for concurrent use.
package flappy

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// StepResult reports the outcome of one tick.
type StepResult struct {
	Tick        uint64
	State       State
	Score       Scoreboard
	Transitions []TransitionRecord
}

// World owns the entity arena together with the run state that systems share.
type World struct {
	cfg    config.FlappyConfig
	ecs    donburi.World
	rng    *rand.Rand
	logger *log.Logger

	state      State
	sinceEnter float64 // seconds since the current state was entered
	score      Scoreboard
	tick       uint64

	pending []command
	applied []TransitionRecord
}

// New builds a world in the Intro state with the player, camera, floor and
// pipe pools spawned. The seed fixes every gap center the world will draw.
func New(cfg config.FlappyConfig, seed int64, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		cfg:    cfg,
		ecs:    donburi.NewWorld(),
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		state:  StateIntro,
	}

	w.spawnCamera()
	w.spawnPlayer()
	w.spawnFloor()
	w.spawnPipes()

	return w
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.FlappyConfig {
	return w.cfg
}

// State returns the current game state.
func (w *World) State() State {
	return w.state
}

// Scoreboard returns the current and best scores.
func (w *World) Scoreboard() Scoreboard {
	return w.score
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances the simulation by dt seconds. Systems run in a fixed order;
// spawns, despawns and state changes queued during the tick are applied once
// all systems have finished.
func (w *World) Step(in core.InputFrame, dt float64) StepResult {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	w.tick++
	w.sinceEnter += dt
	w.applied = nil

	jump := w.readInput(in)
	if w.state == StateCleanup {
		w.queue(transitionCmd(EventCleanupDone))
	}

	w.applyGravity(dt)
	w.controlPlayer(jump)
	w.integrate(dt)
	w.limitPlayer()

	if w.state == StatePlaying {
		w.scroll(dt)
		w.checkCollisions()
		w.updateScore()
	}

	w.flush()

	return StepResult{
		Tick:        w.tick,
		State:       w.state,
		Score:       w.score,
		Transitions: w.applied,
	}
}

// readInput turns a jump press into a menu event or a flap. It reports whether
// the press is left for the player controller.
func (w *World) readInput(in core.InputFrame) bool {
	if !in.Has(core.ActionJump) {
		return false
	}

	switch w.state {
	case StatePlaying:
		return true
	case StateIntro:
		if w.debounced() {
			w.queue(transitionCmd(EventStart))
		}
	case StateGameOver:
		if w.debounced() {
			w.queue(transitionCmd(EventRestart))
		}
	}
	return false
}

// debounced reports whether the menu cooldown has elapsed.
func (w *World) debounced() bool {
	return w.sinceEnter >= w.cfg.Intro.Debounce
}

// singleton returns the only entry matched by q.
// Zero or several matches break an invariant every system relies on.
func singleton(world donburi.World, q *donburi.Query, name string) *donburi.Entry {
	if n := q.Count(world); n != 1 {
		panic(fmt.Sprintf("flappy: expected exactly one %s entity, found %d", name, n))
	}
	var entry *donburi.Entry
	q.Each(world, func(e *donburi.Entry) {
		entry = e
	})
	return entry
}

func (w *World) player() *donburi.Entry {
	return singleton(w.ecs, queryPlayer, "player")
}

func (w *World) camera() *donburi.Entry {
	return singleton(w.ecs, queryCamera, "camera")
}
