package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// LoadTracksInput contains the input for the LoadTracks use case.
type LoadTracksInput struct {
	Query       string
	RequesterID snowflake.ID
}

// LoadTracksOutput contains the result of the LoadTracks use case.
type LoadTracksOutput struct {
	Tracks       []*domain.Track
	IsPlaylist   bool
	PlaylistName string
}

// TrackLoaderService resolves user queries into tracks.
type TrackLoaderService struct {
	searcher ports.TrackSearcher
	source   domain.SearchSource
}

// NewTrackLoaderService creates a new TrackLoaderService that searches plain
// text queries on source.
func NewTrackLoaderService(searcher ports.TrackSearcher, source domain.SearchSource) *TrackLoaderService {
	return &TrackLoaderService{
		searcher: searcher,
		source:   source,
	}
}

// LoadTracks resolves a query. Playlists yield all their tracks, searches
// and direct links yield the first match.
func (s *TrackLoaderService) LoadTracks(
	ctx context.Context,
	input LoadTracksInput,
) (*LoadTracksOutput, error) {
	query := domain.NewSearchQuery(input.Query, s.source)
	if !query.IsValid() {
		return nil, ErrEmptyQuery
	}

	result, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if result == nil || result.Type == ports.LoadTypeEmpty || result.Type == ports.LoadTypeError ||
		len(result.Tracks) == 0 {
		return nil, ErrNoResults
	}

	tracks := result.Tracks
	isPlaylist := result.Type == ports.LoadTypePlaylist
	if !isPlaylist {
		tracks = tracks[:1]
	}

	for _, track := range tracks {
		track.RequesterID = input.RequesterID
	}

	return &LoadTracksOutput{
		Tracks:       tracks,
		IsPlaylist:   isPlaylist,
		PlaylistName: result.PlaylistName,
	}, nil
}

// SearchTracksInput contains the input for the SearchTracks use case.
type SearchTracksInput struct {
	Query string
	Limit int
}

// SearchTracksOutput contains the result of the SearchTracks use case.
type SearchTracksOutput struct {
	Tracks []*domain.Track
}

// SearchTracks returns up to Limit candidate tracks for the query.
func (s *TrackLoaderService) SearchTracks(
	ctx context.Context,
	input SearchTracksInput,
) (*SearchTracksOutput, error) {
	query := domain.NewSearchQuery(input.Query, s.source)
	if !query.IsValid() {
		return &SearchTracksOutput{Tracks: nil}, nil
	}

	result, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if result == nil || result.Type == ports.LoadTypeEmpty || result.Type == ports.LoadTypeError {
		return &SearchTracksOutput{Tracks: nil}, nil
	}

	limit := input.Limit
	if limit <= 0 || limit > len(result.Tracks) {
		limit = len(result.Tracks)
	}

	return &SearchTracksOutput{
		Tracks: result.Tracks[:limit],
	}, nil
}
