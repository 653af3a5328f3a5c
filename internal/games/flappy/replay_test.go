package flappy

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestReplayReproducesSession(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	live := New(cfg, 2024, nil)

	var inputs []Input
	for i := 0; i < 1200; i++ {
		jump := i%17 == 0
		// Uneven frame times, as a real host produces.
		dt := tickDT
		if i%7 == 0 {
			dt = 0.025
		}
		in := core.NewInputFrame()
		if jump {
			in.Set(core.ActionJump)
		}
		live.Step(in, dt)
		inputs = append(inputs, Input{DT: dt, Jump: jump})
	}

	replayed, res := Replay(cfg, 2024, inputs, nil)
	if res.Tick != live.Tick() || res.State != live.State() {
		t.Errorf("replay ended at tick %d in %v, live was tick %d in %v", res.Tick, res.State, live.Tick(), live.State())
	}
	if !reflect.DeepEqual(replayed.Snapshot(), live.Snapshot()) {
		t.Error("replayed world differs from the live one")
	}
}

func TestReplayEmpty(t *testing.T) {
	_, res := Replay(config.DefaultFlappyConfig(), 1, nil, nil)
	if res.State != StateIntro || res.Tick != 0 {
		t.Errorf("empty replay should stay on the intro screen, got %+v", res)
	}
}
