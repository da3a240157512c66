package domain

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Track represents a playable audio track resolved by the audio node.
type Track struct {
	Encoded     string // Lavalink encoded track data
	Identifier  string
	Title       string
	Author      string
	Duration    time.Duration
	URI         string
	ArtworkURL  string
	SourceName  string // e.g., "youtube", "soundcloud"
	IsStream    bool
	RequesterID snowflake.ID // Discord user who added the track
}

// Source returns the parsed TrackSource for this track.
func (t *Track) Source() TrackSource {
	return ParseTrackSource(t.SourceName)
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.Encoded != "" && t.Title != ""
}

// Info returns the display projection of the track.
func (t *Track) Info() *TrackInfo {
	if t == nil {
		return nil
	}
	return &TrackInfo{
		Title:      t.Title,
		Author:     t.Author,
		URI:        t.URI,
		Duration:   t.Duration,
		ArtworkURL: t.ArtworkURL,
	}
}

// TotalDuration sums the known durations of the given tracks. Streams and
// tracks without a duration contribute nothing.
func TotalDuration(tracks ...*Track) time.Duration {
	var total time.Duration
	for _, t := range tracks {
		if t == nil || t.IsStream || t.Duration <= 0 {
			continue
		}
		total += t.Duration
	}
	return total
}

// FormattedDuration returns the duration as h:mm:ss or m:ss, or "LIVE" for streams.
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}
	return FormatDuration(t.Duration)
}

// FormatDuration renders d as h:mm:ss when it spans an hour, else m:ss.
// Sub-second remainders are truncated and negative values render as 0:00.
func FormatDuration(d time.Duration) string {
	totalSeconds := max(0, int(d/time.Second))
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
