package infrastructure

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
)

// VoiceStateProvider reads voice channel membership from the gateway cache.
type VoiceStateProvider struct {
	state *discordgo.State
}

var _ ports.VoiceStateProvider = (*VoiceStateProvider)(nil)

// NewVoiceStateProvider creates a new VoiceStateProvider.
func NewVoiceStateProvider(state *discordgo.State) *VoiceStateProvider {
	return &VoiceStateProvider{state: state}
}

// GetUserVoiceChannel returns the voice channel the user is in, or nil.
func (v *VoiceStateProvider) GetUserVoiceChannel(
	guildID, userID snowflake.ID,
) (*snowflake.ID, error) {
	vs, err := v.state.VoiceState(guildID.String(), userID.String())
	if err != nil {
		if errors.Is(err, discordgo.ErrStateNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read voice state: %w", err)
	}
	if vs.ChannelID == "" {
		return nil, nil
	}

	channelID, err := snowflake.Parse(vs.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel ID: %w", err)
	}
	return &channelID, nil
}
