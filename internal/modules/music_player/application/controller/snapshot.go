package controller

import (
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// ReadSnapshot projects a player into the state used for rendering.
// A nil player reads as stopped with the default volume.
func ReadSnapshot(p ports.Player) domain.PlaybackState {
	state := domain.PlaybackState{
		Volume: domain.DefaultVolume,
		Status: domain.StatusStopped,
	}
	if p == nil {
		return state
	}

	if v := p.Volume(); v >= 0 {
		state.Volume = v
	}
	state.Loop = p.Loop().Normalize()
	state.QueueSize = max(0, p.QueueSize())

	if track := p.Current(); track != nil {
		state.Track = track.Info()
		state.Position = domain.ClampPosition(p.Position(), max(0, track.Duration))
	}

	switch {
	case p.Playing():
		state.Status = domain.StatusPlaying
	case p.Paused():
		state.Status = domain.StatusPaused
	}

	return state
}
