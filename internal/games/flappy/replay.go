package flappy

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Input is one tick of host input as consumed by Step.
type Input struct {
	DT   float64
	Jump bool
}

// Replay rebuilds a world from its seed and steps it through a recorded
// input stream. It returns the world and the result of the final tick.
func Replay(cfg config.FlappyConfig, seed int64, inputs []Input, logger *log.Logger) (*World, StepResult) {
	w := New(cfg, seed, logger)
	res := StepResult{State: w.State(), Score: w.Scoreboard()}

	for _, in := range inputs {
		frame := core.NewInputFrame()
		if in.Jump {
			frame.Set(core.ActionJump)
		}
		res = w.Step(frame, in.DT)
	}
	return w, res
}
