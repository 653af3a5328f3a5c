package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const eps = 1e-6

// checkFloorCoverage verifies the tiles form one strip spanning the window
// and the trailing slack.
func checkFloorCoverage(t *testing.T, s Snapshot, cfg config.FlappyConfig) {
	t.Helper()
	if len(s.Floor) != cfg.Floor.SegmentCount {
		t.Fatalf("tick %d: %d floor tiles, expected %d", s.Tick, len(s.Floor), cfg.Floor.SegmentCount)
	}

	left := s.Camera.X - cfg.Window.Width/2 - cfg.Window.BoundLimit
	right := s.Camera.X + cfg.Window.Width/2
	if s.Floor[0].Min.X > left+eps {
		t.Fatalf("tick %d: floor starts at %v, needs to reach %v", s.Tick, s.Floor[0].Min.X, left)
	}
	for i := 1; i < len(s.Floor); i++ {
		if gap := s.Floor[i].Min.X - s.Floor[i-1].Max.X; math.Abs(gap) > eps {
			t.Fatalf("tick %d: floor tiles %d and %d are %v apart", s.Tick, i-1, i, gap)
		}
	}
	if last := s.Floor[len(s.Floor)-1].Max.X; last < right-eps {
		t.Fatalf("tick %d: floor ends at %v, needs to reach %v", s.Tick, last, right)
	}
}

func TestFloorCoverageAtStart(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := New(cfg, 1, nil)
	checkFloorCoverage(t, w.Snapshot(), cfg)
}

func TestRecycling(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := New(cfg, 99, nil)
	startRun(t, w)
	// Let the run go on forever.
	Collider.Get(w.player()).Enabled = false

	firstSets := map[float64]bool{}
	for _, p := range w.Snapshot().Pipes {
		firstSets[p.GroupX] = true
	}

	for i := 0; i < 3000; i++ {
		if res := w.Step(core.NewInputFrame(), tickDT); res.State != StatePlaying {
			t.Fatalf("tick %d: state %v", i, res.State)
		}
		s := w.Snapshot()
		checkFloorCoverage(t, s, cfg)

		if len(s.Pipes) != 2*cfg.Pipes.SetCount {
			t.Fatalf("tick %d: %d pipes alive", s.Tick, len(s.Pipes))
		}
		for j := 2; j < len(s.Pipes); j += 2 {
			if d := s.Pipes[j].GroupX - s.Pipes[j-2].GroupX; math.Abs(d-cfg.Pipes.Spacing) > eps {
				t.Fatalf("tick %d: pipe sets %v apart, expected %v", s.Tick, d, cfg.Pipes.Spacing)
			}
		}
		for _, p := range s.Pipes {
			if p.GapCenter < cfg.Pipes.GapMinY || p.GapCenter > cfg.Pipes.GapMaxY {
				t.Fatalf("tick %d: gap center %v outside range", s.Tick, p.GapCenter)
			}
			if math.Abs(p.Box.Width()-cfg.Pipes.Width) > eps {
				t.Fatalf("tick %d: pipe width %v", s.Tick, p.Box.Width())
			}
		}
	}

	for _, p := range w.Snapshot().Pipes {
		if firstSets[p.GroupX] {
			t.Errorf("pipe set at %v was never recycled", p.GroupX)
		}
	}
}

func TestRecycleRespawnPosition(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := New(cfg, 1, nil)
	w.state = StatePlaying

	// Put the camera just past the point where the first set expires.
	first := cfg.Pipes.FirstDistance
	Transform.Get(w.camera()).Position.X = first + cfg.Pipes.Width/2 + cfg.Window.BoundLimit + cfg.Window.Width/2 + 1
	w.scroll(0)

	if len(w.pending) != 1 {
		t.Fatalf("expected one recycle command, got %d", len(w.pending))
	}
	w.flush()

	want := first + cfg.Pipes.Spacing*float64(cfg.Pipes.SetCount)
	found := false
	for _, p := range w.Snapshot().Pipes {
		if p.GroupX == first {
			t.Error("expired set should be gone")
		}
		if p.GroupX == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a respawned set at %v", want)
	}
}

func TestGapRangeInclusive(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Pipes.GapMinY, cfg.Pipes.GapMaxY = 50, 50
	w := New(cfg, 1, nil)

	for _, p := range w.Snapshot().Pipes {
		if p.GapCenter != 50 {
			t.Errorf("single-point range should always draw 50, got %v", p.GapCenter)
		}
	}
}

func TestPipeLayout(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	center, size := PipeLayout(PipeTop, 0, cfg)
	if center != core.V(0, 425) || size != core.V(125, 650) {
		t.Errorf("top layout = %+v %+v", center, size)
	}
	center, size = PipeLayout(PipeBottom, 0, cfg)
	if center != core.V(0, -425) || size != core.V(125, 650) {
		t.Errorf("bottom layout = %+v %+v", center, size)
	}

	w := New(cfg, 1, nil)
	w.spawnGroup(1000, 50)
	var top, bottom core.AABB
	for _, p := range w.Snapshot().Pipes {
		if p.GroupX != 1000 {
			continue
		}
		if p.Kind == PipeTop {
			top = p.Box
		} else {
			bottom = p.Box
		}
	}

	if top != (core.AABB{Min: core.V(937.5, 150), Max: core.V(1062.5, 750)}) {
		t.Errorf("top pipe box = %+v", top)
	}
	if bottom != (core.AABB{Min: core.V(937.5, -750), Max: core.V(1062.5, -50)}) {
		t.Errorf("bottom pipe box = %+v", bottom)
	}
	if gap := top.Min.Y - bottom.Max.Y; gap != cfg.Pipes.Gap {
		t.Errorf("gap height = %v, expected %v", gap, cfg.Pipes.Gap)
	}
}
