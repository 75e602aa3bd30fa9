// Package game provides the main game loop and session state.
package game

// State represents the current session phase.
type State int

const (
	// StatePlaying is the normal phase where input moves the player.
	StatePlaying State = iota
	// StateDead means a chaser caught the player or the floor fell away
	// under it.
	StateDead
	// StateCleared means every chaser has fallen.
	StateCleared
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}
