// Package tui provides the Bubble Tea host for the flappy simulation.
// It runs the frame loop, maps keys to input frames, records replays and
// serves the game over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds elapsed between two ticks, capped at limit.
// The first tick, and ticks whose clock went backwards, use the nominal
// interval.
func frameDelta(prev, now time.Time, tickRate int, limit float64) float64 {
	nominal := 1 / float64(tickRate)
	if prev.IsZero() {
		return nominal
	}
	dt := now.Sub(prev).Seconds()
	if dt <= 0 {
		return nominal
	}
	return min(dt, limit)
}
