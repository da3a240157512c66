package domain

import "strings"

// SearchSource is the Lavalink search prefix used for plain text queries.
type SearchSource string

const (
	SourceYouTube      SearchSource = "ytsearch"
	SourceYouTubeMusic SearchSource = "ytmsearch"
	SourceSoundCloud   SearchSource = "scsearch"
	// SourceDirect indicates a direct URL (no search prefix).
	SourceDirect SearchSource = ""
)

// ParseSearchSource maps a configured source name ("youtube", "youtubemusic",
// "soundcloud") to its search prefix. Unknown names fall back to YouTube.
func ParseSearchSource(name string) SearchSource {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "soundcloud", "sc", string(SourceSoundCloud):
		return SourceSoundCloud
	case "youtubemusic", "ytmusic", string(SourceYouTubeMusic):
		return SourceYouTubeMusic
	default:
		return SourceYouTube
	}
}

// SearchQuery represents a query for searching tracks.
type SearchQuery struct {
	Query  string       // The search term or URL
	Source SearchSource // The search source
	IsURL  bool         // Whether the query is a direct URL
}

// NewSearchQuery creates a SearchQuery from user input.
// URLs are passed through; anything else is searched on source.
func NewSearchQuery(input string, source SearchSource) SearchQuery {
	input = strings.TrimSpace(input)

	if isURL(input) {
		return SearchQuery{Query: input, Source: SourceDirect, IsURL: true}
	}
	if source == SourceDirect {
		source = SourceYouTube
	}
	return SearchQuery{Query: input, Source: source}
}

// LavalinkQuery returns the query string formatted for Lavalink.
func (q SearchQuery) LavalinkQuery() string {
	if q.IsURL {
		return q.Query
	}
	return string(q.Source) + ":" + q.Query
}

// IsValid returns true if the query is not empty.
func (q SearchQuery) IsValid() bool {
	return q.Query != ""
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "www.")
}
