package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// MaxSuggestions is the number of choices Discord accepts for autocomplete.
const MaxSuggestions = 25

// SuggestInput contains the input for the Suggest use case.
type SuggestInput struct {
	GuildID snowflake.ID
	Query   string
}

// SuggestOutput contains the result of the Suggest use case.
type SuggestOutput struct {
	Tracks []*domain.Track
}

// AutocompleteService handles autocomplete-related operations.
type AutocompleteService struct {
	players ports.PlayerRegistry
	loader  *TrackLoaderService
}

// NewAutocompleteService creates a new AutocompleteService.
func NewAutocompleteService(
	players ports.PlayerRegistry,
	loader *TrackLoaderService,
) *AutocompleteService {
	return &AutocompleteService{
		players: players,
		loader:  loader,
	}
}

// Suggest returns play suggestions. An empty query suggests the tracks
// already queued in the guild so they can be replayed.
func (s *AutocompleteService) Suggest(ctx context.Context, input SuggestInput) (*SuggestOutput, error) {
	if input.Query == "" {
		player, ok := s.players.Player(input.GuildID)
		if !ok {
			return &SuggestOutput{Tracks: nil}, nil
		}
		tracks := player.Upcoming()
		if current := player.Current(); current != nil {
			tracks = append([]*domain.Track{current}, tracks...)
		}
		if len(tracks) > MaxSuggestions {
			tracks = tracks[:MaxSuggestions]
		}
		return &SuggestOutput{Tracks: tracks}, nil
	}

	result, err := s.loader.SearchTracks(ctx, SearchTracksInput{
		Query: input.Query,
		Limit: MaxSuggestions,
	})
	if err != nil {
		return nil, err
	}

	return &SuggestOutput{Tracks: result.Tracks}, nil
}
