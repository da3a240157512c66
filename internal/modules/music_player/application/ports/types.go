package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// LoadType represents the type of load result.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// SearchResult represents the result of loading tracks.
type SearchResult struct {
	Type         LoadType
	Tracks       []*domain.Track
	PlaylistName string // set for LoadTypePlaylist
}

// NowPlayingInfo contains information for the "Now Playing" notification.
type NowPlayingInfo struct {
	Identifier         string
	Title              string
	Author             string
	Duration           string
	URI                string
	ArtworkURL         string
	SourceName         string
	IsStream           bool
	RequesterID        snowflake.ID
	RequesterName      string
	RequesterAvatarURL string
}
