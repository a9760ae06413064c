// internal/playback/state.go
package playback

import "github.com/llehouerou/sound/internal/player"

// State is the label of the sink+queue pair.
//
//	          play / queue          pause
//	┌───────┐ ───────────▶ ┌─────────┐ ───────▶ ┌────────┐
//	│ Empty │              │ Playing │          │ Paused │
//	└───────┘ ◀─────────── └─────────┘ ◀─────── └────────┘
//	            clear /                 resume
//	        last skip / end
//
// Play forces Playing from any state, discarding what was loaded.
// Clear forces Empty from any state.
type State int

const (
	StateEmpty State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true if something is loaded (playing or paused).
func (s State) IsLoaded() bool {
	return s == StatePlaying || s == StatePaused
}

func stateOf(sink player.Sink) State {
	switch {
	case sink.Empty():
		return StateEmpty
	case sink.IsPaused():
		return StatePaused
	default:
		return StatePlaying
	}
}
