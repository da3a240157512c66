package ports

import (
	"context"

	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// TrackSearcher resolves queries into tracks.
type TrackSearcher interface {
	// Search loads tracks for the given query.
	Search(ctx context.Context, query domain.SearchQuery) (*SearchResult, error)
}
