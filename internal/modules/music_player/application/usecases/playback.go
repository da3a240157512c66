package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// TogglePauseInput contains the input for the TogglePause use case.
type TogglePauseInput struct {
	GuildID snowflake.ID
}

// TogglePauseOutput contains the result of the TogglePause use case.
type TogglePauseOutput struct {
	Paused bool // state after the toggle
}

// SkipInput contains the input for the Skip use case.
type SkipInput struct {
	GuildID snowflake.ID
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	SkippedTrack *domain.Track
}

// SetLoopModeInput contains the input for the SetLoopMode use case.
type SetLoopModeInput struct {
	GuildID snowflake.ID
	Mode    string // "off", "none", "track", "queue"; empty cycles
}

// SetLoopModeOutput contains the result of the SetLoopMode use case.
type SetLoopModeOutput struct {
	Previous domain.LoopMode
	Current  domain.LoopMode
}

// VolumeInput contains the input for the Volume use case.
type VolumeInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Level   string // empty reads the current volume
}

// VolumeOutput contains the result of the Volume use case.
type VolumeOutput struct {
	Volume  int
	Changed bool
}

// ApplyFilterInput contains the input for the ApplyFilter use case.
type ApplyFilterInput struct {
	GuildID snowflake.ID
	Filter  string
	Level   string // bass boost level; empty uses the default
}

// ApplyFilterOutput contains the result of the ApplyFilter use case.
type ApplyFilterOutput struct {
	Filter  domain.Filter
	Filters domain.FilterSet // filters now active
}

// PlaybackService handles playback operations on existing players.
type PlaybackService struct {
	players ports.PlayerRegistry
	voice   *VoiceChannelService
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(players ports.PlayerRegistry, voice *VoiceChannelService) *PlaybackService {
	return &PlaybackService{
		players: players,
		voice:   voice,
	}
}

func (p *PlaybackService) player(guildID snowflake.ID) (ports.Player, error) {
	player, ok := p.players.Player(guildID)
	if !ok {
		return nil, ErrNoPlayer
	}
	return player, nil
}

// TogglePause pauses a playing player and resumes anything else.
func (p *PlaybackService) TogglePause(
	ctx context.Context,
	input TogglePauseInput,
) (*TogglePauseOutput, error) {
	player, err := p.player(input.GuildID)
	if err != nil {
		return nil, err
	}

	paused, err := TogglePlayback(ctx, player)
	if err != nil {
		return nil, err
	}

	return &TogglePauseOutput{Paused: paused}, nil
}

// TogglePlayback pauses player if it is playing and resumes it otherwise.
// It reports whether the player is paused afterwards.
func TogglePlayback(ctx context.Context, player ports.Player) (bool, error) {
	paused := player.Playing()
	if err := player.Pause(ctx, paused); err != nil {
		return false, err
	}
	return paused, nil
}

// Skip ends the current track and lets the queue advance.
func (p *PlaybackService) Skip(ctx context.Context, input SkipInput) (*SkipOutput, error) {
	player, err := p.player(input.GuildID)
	if err != nil {
		return nil, err
	}

	current := player.Current()
	if current == nil {
		return nil, ErrNotPlaying
	}

	if err := player.Skip(ctx); err != nil {
		return nil, err
	}

	return &SkipOutput{SkippedTrack: current}, nil
}

// SetLoopMode sets the loop mode, or cycles it when no mode is given.
func (p *PlaybackService) SetLoopMode(
	_ context.Context,
	input SetLoopModeInput,
) (*SetLoopModeOutput, error) {
	player, err := p.player(input.GuildID)
	if err != nil {
		return nil, err
	}

	previous := player.Loop().Normalize()
	next := previous.Next()
	if input.Mode != "" {
		mode, ok := domain.ParseLoopMode(input.Mode)
		if !ok {
			return nil, ErrInvalidLoopMode
		}
		next = mode
	}

	player.SetLoop(next)

	return &SetLoopModeOutput{Previous: previous, Current: next}, nil
}

// Volume reads or sets the volume. The user must share the bot's voice channel.
func (p *PlaybackService) Volume(ctx context.Context, input VolumeInput) (*VolumeOutput, error) {
	player, err := p.voice.RequireSameChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Level) == "" {
		volume := player.Volume()
		if volume < 0 {
			volume = domain.DefaultVolume
		}
		return &VolumeOutput{Volume: volume}, nil
	}

	volume, ok := domain.ParseVolume(input.Level)
	if !ok {
		return nil, ErrInvalidVolume
	}

	if err := player.SetVolume(ctx, volume); err != nil {
		return nil, fmt.Errorf("set volume: %w", err)
	}

	return &VolumeOutput{Volume: volume, Changed: true}, nil
}

// ApplyFilter applies, toggles or clears an audio filter.
func (p *PlaybackService) ApplyFilter(
	ctx context.Context,
	input ApplyFilterInput,
) (*ApplyFilterOutput, error) {
	player, err := p.player(input.GuildID)
	if err != nil {
		return nil, err
	}

	filter, ok := domain.ParseFilter(input.Filter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, input.Filter)
	}

	filters := player.Filters()
	switch filter {
	case domain.FilterBassBoost:
		level := domain.DefaultBassBoost
		if raw := strings.TrimSpace(input.Level); raw != "" {
			level, err = strconv.Atoi(raw)
			if err != nil {
				return nil, ErrInvalidBassBoost
			}
		}
		if !domain.ValidBassBoost(level) {
			return nil, ErrInvalidBassBoost
		}
		filters = filters.WithBassBoost(level)
	case domain.FilterNightcore:
		filters = filters.ToggleNightcore()
	case domain.FilterVaporwave:
		filters = filters.ToggleVaporwave()
	case domain.FilterEightD:
		filters = filters.ToggleEightD()
	case domain.FilterClear:
		filters = domain.FilterSet{}
	}

	if err := player.SetFilters(ctx, filters); err != nil {
		return nil, err
	}

	return &ApplyFilterOutput{Filter: filter, Filters: filters}, nil
}
