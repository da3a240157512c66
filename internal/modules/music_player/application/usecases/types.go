package usecases

import (
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Re-export types for the presentation layer.

// Track is an alias for domain.Track.
type Track = domain.Track

// Player is an alias for ports.Player.
type Player = ports.Player
