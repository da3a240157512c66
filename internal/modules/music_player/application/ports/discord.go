package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateProvider reads voice channel membership from the gateway state.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the voice channel ID the user is currently in.
	// Returns nil if the user is not in a voice channel.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (*snowflake.ID, error)
}

// UserInfo contains display information for a Discord user.
type UserInfo struct {
	DisplayName string
	AvatarURL   string
}

// UserInfoProvider defines the interface for fetching user display information.
type UserInfoProvider interface {
	// GetUserInfo returns display info for the given user in a guild.
	GetUserInfo(guildID, userID snowflake.ID) (*UserInfo, error)
}
