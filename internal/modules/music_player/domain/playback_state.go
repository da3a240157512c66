package domain

import "time"

// PlaybackStatus describes whether a player is producing audio.
type PlaybackStatus int

const (
	StatusStopped PlaybackStatus = iota
	StatusPlaying
	StatusPaused
)

func (s PlaybackStatus) String() string {
	switch s {
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// TrackInfo is the display subset of a Track.
type TrackInfo struct {
	Title      string
	Author     string
	URI        string
	Duration   time.Duration
	ArtworkURL string
}

// PlaybackState is a read-only snapshot of a guild player taken for display.
type PlaybackState struct {
	Track     *TrackInfo // nil when nothing is playing
	Position  time.Duration
	Volume    int
	Loop      LoopMode
	Status    PlaybackStatus
	QueueSize int // upcoming tracks only
}

// Playing reports whether the snapshot was taken while audio was playing.
func (s PlaybackState) Playing() bool {
	return s.Status == StatusPlaying
}

// Duration returns the current track duration, or zero without a track.
func (s PlaybackState) Duration() time.Duration {
	if s.Track == nil || s.Track.Duration < 0 {
		return 0
	}
	return s.Track.Duration
}

// ClampPosition bounds a position to [0, duration]. A zero duration means
// unknown and only the lower bound applies.
func ClampPosition(position, duration time.Duration) time.Duration {
	if position < 0 {
		return 0
	}
	if duration > 0 && position > duration {
		return duration
	}
	return position
}
