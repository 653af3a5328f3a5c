package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Model is the Bubble Tea model for running the game.
type Model struct {
	game     *flappy.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     *KeyMapper
	input    core.InputFrame
	recorder *storage.Recorder

	lastTick time.Time
	state    flappy.State
	started  bool // a run has begun, so the session is worth keeping
	paused   bool
	quitting bool
	status   string
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store disables replay recording.
func NewModel(game *flappy.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) *Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return &Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:    store,
		logger:   logger,
		config:   cfg,
		keys:     NewKeyMapper(),
		input:    core.NewInputFrame(),
		recorder: &storage.Recorder{},
		state:    flappy.StateIntro,
	}
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.saveReplay()
		return m, tea.Quit
	case action == core.ActionPause:
		m.paused = !m.paused
		return m, nil
	case m.paused:
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.input)
	return m, nil
}

// handleTick processes simulation ticks.
func (m *Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.paused {
		// Time spent paused is not simulated.
		m.lastTick = now
		return m, tickCmd(m.config.TickRate)
	}

	dt := frameDelta(m.lastTick, now, m.config.TickRate, m.game.Config().Physics.MaxFrameDelta)
	m.lastTick = now
	m.step(dt)

	return m, tickCmd(m.config.TickRate)
}

// step advances the game and records what it consumed.
func (m *Model) step(dt float64) {
	jump := m.input.Has(core.ActionJump)
	result := m.game.Step(m.input, dt)
	m.recorder.Record(dt, jump)
	m.input.Clear()

	for _, tr := range result.Transitions {
		if tr.Event == flappy.EventStart {
			m.started = true
		}
		m.logger.Debug("transition", "from", tr.From, "to", tr.To, "tick", result.Tick)
	}
	m.state = result.State
}

// saveReplay stores the session's input stream, once.
func (m *Model) saveReplay() {
	if m.store == nil || !m.started || m.recorder.Len() == 0 {
		return
	}

	doc, err := config.Marshal(m.game.Config())
	if err != nil {
		m.logger.Error("cannot encode config for replay", "err", err)
		return
	}

	id, err := m.store.SaveReplay(storage.Replay{
		Seed:   m.game.Seed(),
		Config: doc,
		Ticks:  m.recorder.Ticks(),
	})
	if err != nil {
		m.logger.Error("cannot save replay", "err", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "ticks", m.recorder.Len())
	m.recorder.Reset()
	m.started = false
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		m.status = "screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot write screenshot", "path", path, "err", err)
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		drawBanner(m.screen, m.screen.Height()/2, " PAUSED - press P to resume ", core.ColorYellow)
	}
	if m.status != "" {
		drawBanner(m.screen, m.screen.Height()-1, " "+m.status+" ", core.ColorCyan)
	}

	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m *Model) State() flappy.State {
	return m.state
}

// Run starts the Bubble Tea program with the given game.
func Run(game *flappy.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	if err == nil {
		// Sessions ended by a signal never see the quit key.
		model.saveReplay()
	}
	return err
}
