package usecases

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
)

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	TextChannelID snowflake.ID
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	Player  ports.Player
	Created bool // false when an existing player was reused
}

// LeaveInput contains the input for the Leave use case.
type LeaveInput struct {
	GuildID snowflake.ID
}

// BotVoiceStateChangeInput contains the input for handling bot voice state changes.
type BotVoiceStateChangeInput struct {
	GuildID      snowflake.ID
	NewChannelID *snowflake.ID // nil means disconnected
}

// VoiceChannelService handles voice channel operations.
type VoiceChannelService struct {
	players    ports.PlayerRegistry
	voiceState ports.VoiceStateProvider
}

// NewVoiceChannelService creates a new VoiceChannelService.
func NewVoiceChannelService(
	players ports.PlayerRegistry,
	voiceState ports.VoiceStateProvider,
) *VoiceChannelService {
	return &VoiceChannelService{
		players:    players,
		voiceState: voiceState,
	}
}

// UserVoiceChannel returns the voice channel of the user, or ErrUserNotInVoice.
func (v *VoiceChannelService) UserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error) {
	channelID, err := v.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil {
		return 0, err
	}
	if channelID == nil {
		return 0, ErrUserNotInVoice
	}
	return *channelID, nil
}

// Join returns the guild player, creating it in the user's voice channel if
// the guild has none.
func (v *VoiceChannelService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	voiceChannelID, err := v.UserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	if player, ok := v.players.Player(input.GuildID); ok {
		return &JoinOutput{Player: player}, nil
	}

	player, err := v.players.Create(ctx, input.GuildID, voiceChannelID, input.TextChannelID)
	if err != nil {
		return nil, err
	}

	return &JoinOutput{Player: player, Created: true}, nil
}

// RequireSameChannel returns the guild player when the user shares its voice channel.
func (v *VoiceChannelService) RequireSameChannel(guildID, userID snowflake.ID) (ports.Player, error) {
	userChannelID, err := v.UserVoiceChannel(guildID, userID)
	if err != nil {
		return nil, err
	}

	player, ok := v.players.Player(guildID)
	if !ok {
		return nil, ErrNoPlayer
	}

	if botChannelID := player.VoiceChannelID(); botChannelID != 0 && botChannelID != userChannelID {
		return nil, ErrDifferentVoiceChannel
	}

	return player, nil
}

// Leave stops playback, leaves the voice channel and forgets the player.
func (v *VoiceChannelService) Leave(ctx context.Context, input LeaveInput) error {
	if _, ok := v.players.Player(input.GuildID); !ok {
		return ErrNoPlayer
	}
	return v.players.Destroy(ctx, input.GuildID)
}

// HandleBotVoiceStateChange forgets the player when the bot is disconnected
// from voice by something other than a command.
func (v *VoiceChannelService) HandleBotVoiceStateChange(
	ctx context.Context,
	input BotVoiceStateChangeInput,
) error {
	if input.NewChannelID != nil {
		return nil
	}

	err := v.Leave(ctx, LeaveInput{GuildID: input.GuildID})
	if errors.Is(err, ErrNoPlayer) {
		return nil
	}
	return err
}
