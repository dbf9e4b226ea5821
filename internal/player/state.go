// Package player keeps the server-side playback session of each user.
package player

import "fmt"

// State is the playback state of a session.
//
// Valid transitions:
//   - Stopped → Playing (Play, Resume with a current song, Next, Shuffle)
//   - Playing → Paused  (Pause)
//   - Paused  → Playing (Resume)
//   - any     → Stopped (Stop)
//
// Toggle cycles Playing ↔ Paused and resumes from Stopped.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a song is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

func (s State) CanPause() bool {
	return s == Playing
}

func (s State) CanResume() bool {
	return s == Paused
}

// MarshalText renders the state in lower case for JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	switch s {
	case Playing:
		return []byte("playing"), nil
	case Paused:
		return []byte("paused"), nil
	default:
		return []byte("stopped"), nil
	}
}

// UnmarshalText accepts the names written by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "playing":
		*s = Playing
	case "paused":
		*s = Paused
	case "stopped":
		*s = Stopped
	default:
		return fmt.Errorf("player: unknown state %q", b)
	}
	return nil
}
