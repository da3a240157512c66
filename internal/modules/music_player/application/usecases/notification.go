package usecases

import (
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// NotificationService posts "Now Playing" messages as the queue advances and
// removes the previous one. It implements ports.PlaybackObserver.
type NotificationService struct {
	sender   ports.NotificationSender
	userInfo ports.UserInfoProvider

	mu         sync.Mutex
	nowPlaying map[snowflake.ID]domain.NowPlayingMessage
}

var _ ports.PlaybackObserver = (*NotificationService)(nil)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	sender ports.NotificationSender,
	userInfo ports.UserInfoProvider,
) *NotificationService {
	return &NotificationService{
		sender:     sender,
		userInfo:   userInfo,
		nowPlaying: make(map[snowflake.ID]domain.NowPlayingMessage),
	}
}

// TrackStarted replaces the guild's "Now Playing" message.
func (n *NotificationService) TrackStarted(guildID, textChannelID snowflake.ID, track *domain.Track) {
	n.deletePrevious(guildID)

	if textChannelID == 0 || track == nil {
		return
	}

	info := &ports.NowPlayingInfo{
		Identifier:  track.Identifier,
		Title:       track.Title,
		Author:      track.Author,
		Duration:    track.FormattedDuration(),
		URI:         track.URI,
		ArtworkURL:  track.ArtworkURL,
		SourceName:  track.SourceName,
		IsStream:    track.IsStream,
		RequesterID: track.RequesterID,
	}
	if n.userInfo != nil && track.RequesterID != 0 {
		user, err := n.userInfo.GetUserInfo(guildID, track.RequesterID)
		if err != nil {
			slog.Debug("failed to resolve requester", "guild", guildID, "user", track.RequesterID, "error", err)
		} else {
			info.RequesterName = user.DisplayName
			info.RequesterAvatarURL = user.AvatarURL
		}
	}

	msg, err := n.sender.SendNowPlaying(textChannelID, info)
	if err != nil {
		slog.Warn("failed to send now playing notification", "guild", guildID, "error", err)
		return
	}

	n.mu.Lock()
	n.nowPlaying[guildID] = msg
	n.mu.Unlock()
}

// PlaybackEnded removes the guild's "Now Playing" message.
func (n *NotificationService) PlaybackEnded(guildID snowflake.ID) {
	n.deletePrevious(guildID)
}

// TrackFailed reports a playback failure to the player's text channel.
func (n *NotificationService) TrackFailed(guildID, textChannelID snowflake.ID, message string) {
	if textChannelID == 0 {
		return
	}
	if err := n.sender.SendError(textChannelID, message); err != nil {
		slog.Warn("failed to send playback error", "guild", guildID, "error", err)
	}
}

func (n *NotificationService) deletePrevious(guildID snowflake.ID) {
	n.mu.Lock()
	msg, ok := n.nowPlaying[guildID]
	delete(n.nowPlaying, guildID)
	n.mu.Unlock()

	if !ok {
		return
	}
	if err := n.sender.DeleteMessage(msg); err != nil {
		slog.Warn("failed to delete now playing message", "guild", guildID, "error", err)
	}
}
