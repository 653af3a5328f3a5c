package flappy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestTransitionTable(t *testing.T) {
	edges := map[State]map[Event]State{
		StateIntro:    {EventStart: StatePlaying},
		StatePlaying:  {EventCrash: StateGameOver},
		StateGameOver: {EventRestart: StateCleanup},
		StateCleanup:  {EventCleanupDone: StatePlaying},
	}
	states := []State{StateIntro, StatePlaying, StateGameOver, StateCleanup}
	events := []Event{EventStart, EventCrash, EventRestart, EventCleanupDone}

	for _, s := range states {
		for _, e := range events {
			want, ok := edges[s][e]
			if !ok {
				want = s
			}
			if got := Transition(s, e); got != want {
				t.Errorf("Transition(%v, %v) = %v, expected %v", s, e, got, want)
			}
		}
	}
}

func TestIntroDebounce(t *testing.T) {
	w := New(config.DefaultFlappyConfig(), 1, nil)
	const dt = 1.0 / 60

	// Pressed immediately and again a few ticks later: both inside the cooldown.
	if res := w.Step(core.JumpFrame(), dt); res.State != StateIntro || len(res.Transitions) != 0 {
		t.Fatalf("press on the first tick should be ignored, state %v", res.State)
	}
	for i := 0; i < 5; i++ {
		w.Step(core.NewInputFrame(), dt)
	}
	if res := w.Step(core.JumpFrame(), dt); res.State != StateIntro {
		t.Fatalf("press inside the debounce window should be ignored, state %v", res.State)
	}

	// Wait out the rest of the cooldown.
	for i := 0; i < 14; i++ {
		w.Step(core.NewInputFrame(), dt)
	}
	res := w.Step(core.JumpFrame(), dt)
	if res.State != StatePlaying {
		t.Fatalf("press after the debounce window should start the run, state %v", res.State)
	}
	if len(res.Transitions) != 1 || res.Transitions[0] != (TransitionRecord{From: StateIntro, To: StatePlaying, Event: EventStart}) {
		t.Errorf("expected exactly one Intro->Playing transition, got %+v", res.Transitions)
	}

	// The next press is a flap, not another transition.
	res = w.Step(core.JumpFrame(), dt)
	if res.State != StatePlaying || len(res.Transitions) != 0 {
		t.Errorf("press while playing should not transition, got %v %+v", res.State, res.Transitions)
	}
}

func TestStartPressDoesNotJump(t *testing.T) {
	w := New(config.DefaultFlappyConfig(), 1, nil)
	startRun(t, w)

	v := Velocity.Get(w.player())
	if v.Y != 0 {
		t.Errorf("start press should be consumed by the transition, vy = %v", v.Y)
	}
}

func TestInvalidStateIgnored(t *testing.T) {
	var buf bytes.Buffer
	w := New(config.DefaultFlappyConfig(), 1, log.New(&buf))
	w.state = State(42)

	w.dispatch(EventStart)
	w.Step(core.JumpFrame(), 1.0/60)

	if w.State() != State(42) {
		t.Errorf("unknown state should be left alone, got %v", w.State())
	}
	if !strings.Contains(buf.String(), "ignoring event") {
		t.Errorf("expected a warning for the unknown state, log: %q", buf.String())
	}
	if w.State().Valid() {
		t.Error("State(42) should not be valid")
	}
}

func TestGameOverLatchesBest(t *testing.T) {
	w := New(config.DefaultFlappyConfig(), 1, nil)

	w.state = StatePlaying
	w.score.Current = 3
	w.dispatch(EventCrash)
	if w.State() != StateGameOver || w.Scoreboard().Best != 3 {
		t.Fatalf("expected GameOver with best 3, got %v %+v", w.State(), w.Scoreboard())
	}

	w.dispatch(EventRestart)
	if w.Scoreboard() != (Scoreboard{Current: 0, Best: 3}) {
		t.Errorf("cleanup should zero the current score only, got %+v", w.Scoreboard())
	}

	w.dispatch(EventCleanupDone)
	w.score.Current = 1
	w.dispatch(EventCrash)
	if w.Scoreboard().Best != 3 {
		t.Errorf("best should never decrease, got %d", w.Scoreboard().Best)
	}
}

func TestStateStrings(t *testing.T) {
	if StateGameOver.String() != "GameOver" || EventCleanupDone.String() != "CleanupDone" {
		t.Error("unexpected names")
	}
	if State(9).String() != "Unknown" || Event(9).String() != "Unknown" {
		t.Error("out of range values should print as Unknown")
	}
}
