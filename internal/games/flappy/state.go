package flappy

// State is the phase of a run. It decides which systems execute each tick.
type State int

const (
	StateIntro State = iota
	StatePlaying
	StateGameOver
	StateCleanup
)

func (s State) String() string {
	switch s {
	case StateIntro:
		return "Intro"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	case StateCleanup:
		return "Cleanup"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s >= StateIntro && s <= StateCleanup
}

// Event drives state transitions.
type Event int

const (
	EventStart       Event = iota // debounced press on the intro screen
	EventCrash                    // first collision of a run
	EventRestart                  // debounced press on the game over screen
	EventCleanupDone              // world reset finished
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "Start"
	case EventCrash:
		return "Crash"
	case EventRestart:
		return "Restart"
	case EventCleanupDone:
		return "CleanupDone"
	default:
		return "Unknown"
	}
}

// Transition returns the state that follows s when e occurs.
// Pairs without an edge leave the state unchanged.
func Transition(s State, e Event) State {
	switch {
	case s == StateIntro && e == EventStart:
		return StatePlaying
	case s == StatePlaying && e == EventCrash:
		return StateGameOver
	case s == StateGameOver && e == EventRestart:
		return StateCleanup
	case s == StateCleanup && e == EventCleanupDone:
		return StatePlaying
	default:
		return s
	}
}

// TransitionRecord describes a state change applied during a tick.
type TransitionRecord struct {
	From  State
	To    State
	Event Event
}

// Scoreboard holds the current run's score and the best across runs.
type Scoreboard struct {
	Current int
	Best    int
}
