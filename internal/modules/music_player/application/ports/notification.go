package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// NotificationSender posts playback notifications to text channels.
type NotificationSender interface {
	// SendNowPlaying posts a "Now Playing" embed and returns its location.
	SendNowPlaying(channelID snowflake.ID, info *NowPlayingInfo) (domain.NowPlayingMessage, error)

	// DeleteMessage deletes a previously posted notification.
	DeleteMessage(msg domain.NowPlayingMessage) error

	// SendError sends an error message embed to the channel.
	SendError(channelID snowflake.ID, message string) error
}
