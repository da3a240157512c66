package domain

import "strings"

// LoopMode represents the repeat policy of a guild player.
type LoopMode int

const (
	LoopModeOff   LoopMode = iota // Default: no looping
	LoopModeTrack                 // Repeat current track indefinitely
	LoopModeQueue                 // Repeat entire queue when reaching end
)

// String returns the label shown on controller buttons and confirmations.
func (m LoopMode) String() string {
	switch m {
	case LoopModeTrack:
		return "TRACK"
	case LoopModeQueue:
		return "QUEUE"
	default:
		return "OFF"
	}
}

// Title returns the capitalized label used by the status display.
func (m LoopMode) Title() string {
	switch m {
	case LoopModeTrack:
		return "Track"
	case LoopModeQueue:
		return "Queue"
	default:
		return "Off"
	}
}

// PlayerValue returns the value the audio player uses for this mode.
func (m LoopMode) PlayerValue() string {
	switch m {
	case LoopModeTrack:
		return "track"
	case LoopModeQueue:
		return "queue"
	default:
		return "none"
	}
}

// Normalize maps any value outside the known modes to LoopModeOff.
func (m LoopMode) Normalize() LoopMode {
	switch m {
	case LoopModeOff, LoopModeTrack, LoopModeQueue:
		return m
	default:
		return LoopModeOff
	}
}

// Next cycles through loop modes: Off -> Track -> Queue -> Off.
func (m LoopMode) Next() LoopMode {
	switch m.Normalize() {
	case LoopModeOff:
		return LoopModeTrack
	case LoopModeTrack:
		return LoopModeQueue
	default:
		return LoopModeOff
	}
}

// LoopModeFromPlayer converts an audio player loop value ("none", "track",
// "queue") to a LoopMode. Anything else maps to LoopModeOff.
func LoopModeFromPlayer(value string) LoopMode {
	switch value {
	case "track":
		return LoopModeTrack
	case "queue":
		return LoopModeQueue
	default:
		return LoopModeOff
	}
}

// ParseLoopMode parses user input ("off", "none", "track", "queue").
// Returns false if the input is not a known mode.
func ParseLoopMode(input string) (LoopMode, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "off", "none":
		return LoopModeOff, true
	case "track":
		return LoopModeTrack, true
	case "queue":
		return LoopModeQueue, true
	default:
		return LoopModeOff, false
	}
}
