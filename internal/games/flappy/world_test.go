package flappy

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const tickDT = 1.0 / 60

// startRun waits out the intro cooldown and presses jump once.
func startRun(t *testing.T, w *World) {
	t.Helper()
	for !w.debounced() {
		w.Step(core.NewInputFrame(), tickDT)
	}
	if res := w.Step(core.JumpFrame(), tickDT); res.State != StatePlaying {
		t.Fatalf("expected Playing after start, got %v", res.State)
	}
}

// tallConfig moves the floor far away so a run can fall for a long time.
func tallConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Window.Height = 20000
	return cfg
}

func TestStartScenario(t *testing.T) {
	cfg := tallConfig()
	w := New(cfg, 7, nil)
	startRun(t, w)

	p := w.player()
	if got := Transform.Get(p).Position; got != core.V(0, 0) {
		t.Fatalf("player should still be at the origin, got %+v", got)
	}
	if !Gravity.Get(p).Enabled {
		t.Error("gravity should be enabled on start")
	}
	if got := *Velocity.Get(p); got != (VelocityData{X: cfg.Physics.ScrollSpeed, Y: 0}) {
		t.Errorf("velocity = %+v, expected (%v, 0)", got, cfg.Physics.ScrollSpeed)
	}

	startX := Transform.Get(p).Position.X
	prevY := Transform.Get(p).Position.Y
	for i := 0; i < 100; i++ {
		res := w.Step(core.NewInputFrame(), tickDT)
		if res.State != StatePlaying {
			t.Fatalf("tick %d: run ended unexpectedly in %v", i, res.State)
		}
		y := Transform.Get(p).Position.Y
		if Velocity.Get(p).Y < 0 && y >= prevY {
			t.Fatalf("tick %d: y should strictly decrease while falling, %v -> %v", i, prevY, y)
		}
		prevY = y
	}

	dx := Transform.Get(p).Position.X - startX
	want := cfg.Physics.ScrollSpeed * 100 / 60
	if math.Abs(dx-want) > 1e-9 {
		t.Errorf("x advanced by %v, expected %v", dx, want)
	}
}

func TestJumpSetsImpulse(t *testing.T) {
	cfg := tallConfig()
	w := New(cfg, 7, nil)
	startRun(t, w)

	for _, prior := range []float64{-1200, 0, 300} {
		Velocity.Get(w.player()).Y = prior
		w.Step(core.JumpFrame(), tickDT)
		if got := Velocity.Get(w.player()).Y; got != cfg.Physics.JumpImpulse {
			t.Errorf("prior vy %v: after jump vy = %v, expected %v", prior, got, cfg.Physics.JumpImpulse)
		}
		if got := Transform.Get(w.player()).Rotation; got != cfg.Player.MaxClimbAngle {
			t.Errorf("rotation after jump = %v, expected climb limit %v", got, cfg.Player.MaxClimbAngle)
		}
	}
}

func TestCrashAndRestart(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := New(cfg, 3, nil)
	startRun(t, w)

	crashes := 0
	for i := 0; i < 120 && w.State() == StatePlaying; i++ {
		for _, tr := range w.Step(core.NewInputFrame(), tickDT).Transitions {
			if tr.Event == EventCrash {
				crashes++
			}
		}
	}
	if w.State() != StateGameOver {
		t.Fatalf("falling onto the floor should end the run, state %v", w.State())
	}

	p := w.player()
	if Collider.Get(p).Enabled {
		t.Error("player collider should be disabled after the first hit")
	}
	if Velocity.Get(p).X != 0 {
		t.Errorf("forward speed should stop on game over, vx = %v", Velocity.Get(p).X)
	}
	camX := Transform.Get(w.camera()).Position.X

	// Settles on the floor and the world stops scrolling. The press comes
	// inside the cooldown and is ignored.
	for i := 0; i < 10; i++ {
		w.Step(core.JumpFrame(), tickDT)
	}
	for i := 0; i < 60; i++ {
		for _, tr := range w.Step(core.NewInputFrame(), tickDT).Transitions {
			if tr.Event == EventCrash {
				crashes++
			}
		}
	}
	if w.State() != StateGameOver {
		t.Fatalf("game over should hold without a debounced press, state %v", w.State())
	}
	if crashes != 1 {
		t.Errorf("expected exactly one crash, got %d", crashes)
	}
	rest := cfg.FloorTop() + cfg.Player.HitboxHeight/2
	if y := Transform.Get(p).Position.Y; math.Abs(y-rest) > 1e-9 {
		t.Errorf("player should rest on the floor at %v, y = %v", rest, y)
	}
	if Velocity.Get(p).Y != 0 {
		t.Errorf("resting player should have no vertical speed, vy = %v", Velocity.Get(p).Y)
	}
	if got := Transform.Get(w.camera()).Position.X; got != camX {
		t.Errorf("camera moved during game over: %v -> %v", camX, got)
	}

	res := w.Step(core.JumpFrame(), tickDT)
	if res.State != StateCleanup {
		t.Fatalf("debounced press should restart, state %v", res.State)
	}
	if got := Transform.Get(w.player()).Position; got != core.V(cfg.Player.StartX, cfg.Player.StartY) {
		t.Errorf("player should be back at the start, got %+v", got)
	}
	if Gravity.Get(w.player()).Enabled || !Collider.Get(w.player()).Enabled {
		t.Error("cleanup should disable gravity and re-enable the collider")
	}
	if Transform.Get(w.camera()).Position != (core.Vec2{}) {
		t.Error("cleanup should reset the camera")
	}
	if n := queryFloor.Count(w.ecs); n != cfg.Floor.SegmentCount {
		t.Errorf("floor tiles after cleanup = %d", n)
	}
	if n := queryGroups.Count(w.ecs); n != cfg.Pipes.SetCount {
		t.Errorf("pipe sets after cleanup = %d", n)
	}
	if n := queryPipes.Count(w.ecs); n != 2*cfg.Pipes.SetCount {
		t.Errorf("pipes after cleanup = %d", n)
	}

	res = w.Step(core.NewInputFrame(), tickDT)
	if res.State != StatePlaying {
		t.Fatalf("cleanup should last one tick, state %v", res.State)
	}
	if got := *Velocity.Get(w.player()); got != (VelocityData{X: cfg.Physics.ScrollSpeed}) {
		t.Errorf("new run velocity = %+v", got)
	}
}

func TestPipeHitEndsRun(t *testing.T) {
	w := New(config.DefaultFlappyConfig(), 5, nil)
	startRun(t, w)

	// Every top pipe covers y=600 whatever its gap center.
	Transform.Get(w.player()).Position = core.V(500, 600)
	Velocity.Get(w.player()).Y = 0

	if res := w.Step(core.NewInputFrame(), tickDT); res.State != StateGameOver {
		t.Fatalf("overlapping a pipe should end the run, state %v", res.State)
	}
}

func TestFlyCeiling(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := New(cfg, 5, nil)
	startRun(t, w)

	Transform.Get(w.player()).Position.Y = 10000
	w.Step(core.NewInputFrame(), tickDT)
	if y := Transform.Get(w.player()).Position.Y; y != cfg.MaxFlyHeight() {
		t.Errorf("y = %v, expected ceiling %v", y, cfg.MaxFlyHeight())
	}
}

func TestNegativeDeltaIsZero(t *testing.T) {
	w := New(tallConfig(), 5, nil)
	startRun(t, w)

	before := *Transform.Get(w.player())
	w.Step(core.NewInputFrame(), -1)
	w.Step(core.NewInputFrame(), math.NaN())
	if got := *Transform.Get(w.player()); got.Position != before.Position {
		t.Errorf("negative or NaN dt should not move the player: %+v -> %+v", before.Position, got.Position)
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		w := New(config.DefaultFlappyConfig(), seed, nil)
		for i := 0; i < 900; i++ {
			in := core.NewInputFrame()
			if i%15 == 0 {
				in.Set(core.ActionJump)
			}
			w.Step(in, tickDT)
		}
		return w.Snapshot()
	}

	a, b := run(12345), run(12345)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical seeds and inputs should produce identical worlds")
	}

	c := run(54321)
	same := true
	for i := range a.Pipes {
		if a.Pipes[i].GapCenter != c.Pipes[i].GapCenter {
			same = false
		}
	}
	if same {
		t.Error("different seeds should draw different gaps")
	}
}

func TestSingletonPanics(t *testing.T) {
	expectPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected a panic", name)
			}
		}()
		fn()
	}

	w := New(config.DefaultFlappyConfig(), 1, nil)
	w.ecs.Create(PlayerTag, Transform, Velocity, Collider)
	expectPanic("two players", func() { w.player() })

	w = New(config.DefaultFlappyConfig(), 1, nil)
	w.ecs.Remove(w.camera().Entity())
	expectPanic("no camera", func() { w.camera() })
}
