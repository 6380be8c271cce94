// ABOUTME: Transport state enumeration
// ABOUTME: Defines the engine's four playback states
package waveplay

// State is the engine's transport state
type State int

const (
	// StateStopped is the initial state and the reset target
	StateStopped State = iota

	// StateRunning means a source node is live and the position derives
	// from the graph clock
	StateRunning

	// StatePaused means the clock is suspended with the episode intact
	StatePaused

	// StateEnded means a non-loop source played out its range
	StateEnded
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
