package infrastructure

import (
	"context"
	"time"

	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// lavalinkBackend drives a DisGoLink player.
type lavalinkBackend struct {
	player disgolink.Player
}

var _ AudioBackend = (*lavalinkBackend)(nil)

func (b *lavalinkBackend) Play(ctx context.Context, encoded string) error {
	// WithEncodedTrack avoids sending userData: null.
	return b.player.Update(ctx, lavalink.WithEncodedTrack(encoded))
}

func (b *lavalinkBackend) Stop(ctx context.Context) error {
	return b.player.Update(ctx, lavalink.WithNullTrack())
}

func (b *lavalinkBackend) Pause(ctx context.Context, paused bool) error {
	return b.player.Update(ctx, lavalink.WithPaused(paused))
}

func (b *lavalinkBackend) SetVolume(ctx context.Context, volume int) error {
	return b.player.Update(ctx, lavalink.WithVolume(volume))
}

func (b *lavalinkBackend) SetFilters(ctx context.Context, filters domain.FilterSet) error {
	return b.player.Update(ctx, lavalink.WithFilters(toLavalinkFilters(filters)))
}

func (b *lavalinkBackend) Position() time.Duration {
	return time.Duration(b.player.Position()) * time.Millisecond
}

func (b *lavalinkBackend) Destroy(ctx context.Context) error {
	return b.player.Destroy(ctx)
}

// toLavalinkFilters converts a filter set into the full Lavalink filter
// payload. Lavalink replaces all filters on update, so an empty set clears
// them.
func toLavalinkFilters(f domain.FilterSet) lavalink.Filters {
	var filters lavalink.Filters

	if gains := f.EqualizerGains(); gains != nil {
		var eq lavalink.Equalizer
		for i := 0; i < len(eq) && i < len(gains); i++ {
			eq[i] = float32(gains[i])
		}
		filters.Equalizer = &eq
	}

	if ts := f.Timescale(); ts != nil {
		filters.Timescale = &lavalink.Timescale{
			Speed: ts.Speed,
			Pitch: ts.Pitch,
			Rate:  ts.Rate,
		}
	}

	if hz := f.RotationHz(); hz > 0 {
		filters.Rotation = &lavalink.Rotation{RotationHz: hz}
	}

	return filters
}
