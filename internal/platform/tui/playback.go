package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// PlaybackModel replays a recorded session on screen, one recorded tick
// per frame. Keyboard input never reaches the world.
type PlaybackModel struct {
	game   *flappy.Game
	screen *core.Screen
	keys   *KeyMapper
	ticks  []storage.TickInput
	rate   int
	id     int64

	pos      int
	elapsed  float64 // simulated seconds played so far
	paused   bool
	quitting bool
}

// NewPlaybackModel builds the world a replay was recorded against.
func NewPlaybackModel(r storage.Replay, cfg core.RuntimeConfig, logger *log.Logger) (*PlaybackModel, error) {
	gameCfg, err := config.Parse(r.Config)
	if err != nil {
		return nil, fmt.Errorf("replay %d: %w", r.ID, err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	game := flappy.NewGame(gameCfg, logger)
	cfg.Seed = r.Seed
	game.Reset(cfg)

	return &PlaybackModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   NewKeyMapper(),
		ticks:  r.Ticks,
		rate:   cfg.TickRate,
		id:     r.ID,
	}, nil
}

// Init starts the tick loop.
func (m *PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.rate)
}

// Update handles messages.
func (m *PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, isQuit := m.keys.MapKey(msg)
		switch {
		case isQuit:
			m.quitting = true
			return m, tea.Quit
		case action == core.ActionPause:
			m.paused = !m.paused
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if !m.paused {
			m.advance()
		}
		return m, tickCmd(m.rate)
	}
	return m, nil
}

// advance feeds the next recorded tick to the world.
func (m *PlaybackModel) advance() {
	if m.Done() {
		return
	}
	t := m.ticks[m.pos]
	frame := core.NewInputFrame()
	if t.Jump {
		frame.Set(core.ActionJump)
	}
	m.game.Step(frame, t.DT)
	m.elapsed += t.DT
	m.pos++
}

// Done reports whether every recorded tick has been played.
func (m *PlaybackModel) Done() bool {
	return m.pos >= len(m.ticks)
}

// World returns the world being replayed.
func (m *PlaybackModel) World() *flappy.World {
	return m.game.World()
}

// View renders the world with a progress line.
func (m *PlaybackModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	bottom := m.screen.Height() - 1
	switch {
	case m.Done():
		drawBanner(m.screen, bottom, " END OF REPLAY - press Q to quit ", core.ColorYellow)
	case m.paused:
		drawBanner(m.screen, bottom, " PAUSED - press P to resume ", core.ColorYellow)
	default:
		elapsed := time.Duration(m.elapsed * float64(time.Second))
		drawBanner(m.screen, bottom,
			fmt.Sprintf(" replay %d  %d/%d  %s ", m.id, m.pos, len(m.ticks), elapsed.Truncate(100*time.Millisecond)),
			core.ColorCyan)
	}
	return RenderScreen(m.screen)
}

// RunPlayback shows a stored replay in the terminal.
func RunPlayback(r storage.Replay, cfg core.RuntimeConfig, logger *log.Logger) error {
	model, err := NewPlaybackModel(r, cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
