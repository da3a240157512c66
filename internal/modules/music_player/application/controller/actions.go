package controller

import (
	"context"
	"fmt"

	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Replies sent to the user pressing a controller button.
const (
	ReplyNotOwner     = "❌ You cannot use this controller!"
	ReplyPlayerGone   = "❌ Player no longer exists!"
	ReplyActionFailed = "❌ Something went wrong, please try again."
	ReplyExpired      = "❌ This controller has expired."
	ReplyBusy         = "⏳ This controller is busy, please try again."
	ReplyPaused       = "⏸ Paused playback"
	ReplyResumed      = "▶ Resumed playback"
	ReplySkipped      = "⏭ Skipped current track"
	ReplyStopped      = "⏹ Stopped playback"
	replyLoopFormat   = "🔁 Loop mode set to **%s**"
	replyVolumeFormat = "🔊 Volume set to **%d%%**"
	volumeDownDelta   = -domain.VolumeStep
	volumeUpDelta     = domain.VolumeStep
)

// apply performs the action on the bound player and returns the confirmation.
// It runs only on the session goroutine.
func (s *Session) apply(ctx context.Context, action domain.ControllerAction) (string, error) {
	switch action {
	case domain.ActionPlayPause:
		paused, err := usecases.TogglePlayback(ctx, s.player)
		if err != nil {
			return "", fmt.Errorf("toggle pause: %w", err)
		}
		if paused {
			return ReplyPaused, nil
		}
		return ReplyResumed, nil

	case domain.ActionSkip:
		if err := s.player.Skip(ctx); err != nil {
			return "", fmt.Errorf("skip: %w", err)
		}
		return ReplySkipped, nil

	case domain.ActionStop:
		if err := s.player.Stop(ctx); err != nil {
			return "", fmt.Errorf("stop: %w", err)
		}
		return ReplyStopped, nil

	case domain.ActionLoop:
		next := s.player.Loop().Normalize().Next()
		s.player.SetLoop(next)
		s.loop = next
		return fmt.Sprintf(replyLoopFormat, next), nil

	case domain.ActionVolumeDown, domain.ActionVolumeUp:
		delta := volumeUpDelta
		if action == domain.ActionVolumeDown {
			delta = volumeDownDelta
		}
		volume := domain.AdjustVolume(s.player.Volume(), delta)
		if err := s.player.SetVolume(ctx, volume); err != nil {
			return "", fmt.Errorf("set volume: %w", err)
		}
		return fmt.Sprintf(replyVolumeFormat, volume), nil

	default:
		return "", fmt.Errorf("unknown controller action %q", action)
	}
}
