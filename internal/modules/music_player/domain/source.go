package domain

import "strings"

// TrackSource represents the origin platform of a track.
type TrackSource string

const (
	TrackSourceYouTube    TrackSource = "youtube"
	TrackSourceSpotify    TrackSource = "spotify"
	TrackSourceSoundCloud TrackSource = "soundcloud"
	TrackSourceTwitch     TrackSource = "twitch"
	TrackSourceOther      TrackSource = "other"
)

// DefaultEmbedColor is used for tracks without a platform colour.
const DefaultEmbedColor = 0x1db954

// ParseTrackSource converts a Lavalink source name to a TrackSource.
func ParseTrackSource(name string) TrackSource {
	switch strings.ToLower(name) {
	case "youtube":
		return TrackSourceYouTube
	case "spotify":
		return TrackSourceSpotify
	case "soundcloud":
		return TrackSourceSoundCloud
	case "twitch":
		return TrackSourceTwitch
	default:
		return TrackSourceOther
	}
}

// Label returns the platform name shown to users.
func (s TrackSource) Label() string {
	switch s {
	case TrackSourceYouTube:
		return "YouTube"
	case TrackSourceSpotify:
		return "Spotify"
	case TrackSourceSoundCloud:
		return "SoundCloud"
	case TrackSourceTwitch:
		return "Twitch"
	default:
		return ""
	}
}

// Color returns the platform brand colour.
func (s TrackSource) Color() int {
	switch s {
	case TrackSourceYouTube:
		return 0xff0000
	case TrackSourceSoundCloud:
		return 0xff5500
	case TrackSourceTwitch:
		return 0x9146ff
	default:
		return DefaultEmbedColor
	}
}
