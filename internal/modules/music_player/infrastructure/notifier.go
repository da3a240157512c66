package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
	"golang.org/x/sync/singleflight"
)

const (
	colorError = 0xed4245

	thumbnailLookupTimeout = 10 * time.Second
)

// MessageSender is the subset of the Discord session the notifier uses.
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Notifier posts playback notifications to Discord channels.
type Notifier struct {
	sender     MessageSender
	httpClient *http.Client

	// thumbnails caches resolved thumbnail URLs by track identifier.
	thumbnails sync.Map
	lookups    singleflight.Group
}

var _ ports.NotificationSender = (*Notifier)(nil)

// NewNotifier creates a new Notifier.
func NewNotifier(sender MessageSender) *Notifier {
	return &Notifier{
		sender: sender,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SendNowPlaying posts a "Now Playing" embed and returns its location.
func (n *Notifier) SendNowPlaying(
	channelID snowflake.ID,
	info *ports.NowPlayingInfo,
) (domain.NowPlayingMessage, error) {
	source := domain.ParseTrackSource(info.SourceName)

	msg, err := n.sender.ChannelMessageSendEmbed(channelID.String(), n.nowPlayingEmbed(source, info))
	if err != nil {
		return domain.NowPlayingMessage{}, fmt.Errorf("failed to send now playing: %w", err)
	}

	messageID, err := snowflake.Parse(msg.ID)
	if err != nil {
		return domain.NowPlayingMessage{}, fmt.Errorf("failed to parse message ID: %w", err)
	}
	return domain.NowPlayingMessage{ChannelID: channelID, MessageID: messageID}, nil
}

func (n *Notifier) nowPlayingEmbed(source domain.TrackSource, info *ports.NowPlayingInfo) *discordgo.MessageEmbed {
	author := "Now Playing"
	if label := source.Label(); label != "" {
		author += " on " + label
	}

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: author},
		Title:  info.Title,
		URL:    info.URI,
		Color:  source.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🎤 Author",
				Value:  info.Author,
				Inline: true,
			},
		},
	}

	if !info.IsStream {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "⏱ Duration",
			Value:  info.Duration,
			Inline: true,
		})
	}

	if info.RequesterName != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Requested by %s", info.RequesterName),
			IconURL: info.RequesterAvatarURL,
		}
	}

	if url := n.thumbnail(source, info.Identifier, info.ArtworkURL); url != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: url}
	}

	return embed
}

// DeleteMessage deletes a previously posted notification.
func (n *Notifier) DeleteMessage(msg domain.NowPlayingMessage) error {
	return n.sender.ChannelMessageDelete(msg.ChannelID.String(), msg.MessageID.String())
}

// SendError sends an error embed to the channel.
func (n *Notifier) SendError(channelID snowflake.ID, message string) error {
	embed := &discordgo.MessageEmbed{
		Title:       "❌ Error",
		Description: message,
		Color:       colorError,
	}

	_, err := n.sender.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

// thumbnail returns the best artwork URL for the track. YouTube and Twitch
// thumbnails are checked for higher resolutions once per identifier.
func (n *Notifier) thumbnail(source domain.TrackSource, identifier, fallbackURL string) string {
	var resolve func() string
	switch source {
	case domain.TrackSourceYouTube:
		if identifier == "" {
			return fallbackURL
		}
		resolve = func() string { return n.youTubeThumbnail(identifier, fallbackURL) }
	case domain.TrackSourceTwitch:
		if fallbackURL == "" {
			return ""
		}
		resolve = func() string { return n.twitchThumbnail(fallbackURL) }
	default:
		return fallbackURL
	}

	key := string(source) + ":" + identifier
	if cached, ok := n.thumbnails.Load(key); ok {
		return cached.(string)
	}

	url, _, _ := n.lookups.Do(key, func() (any, error) {
		url := resolve()
		n.thumbnails.Store(key, url)
		return url, nil
	})
	return url.(string)
}

func (n *Notifier) youTubeThumbnail(videoID, fallbackURL string) string {
	qualities := []string{"maxresdefault", "sddefault", "hqdefault", "mqdefault"}

	ctx, cancel := context.WithTimeout(context.Background(), thumbnailLookupTimeout)
	defer cancel()

	for _, quality := range qualities {
		url := fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", videoID, quality)
		if n.urlExists(ctx, url) {
			return url
		}
	}

	return fallbackURL
}

func (n *Notifier) twitchThumbnail(artworkURL string) string {
	highResURL := strings.Replace(artworkURL, "440x248", "1280x720", 1)
	if highResURL == artworkURL {
		return artworkURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), thumbnailLookupTimeout)
	defer cancel()

	if n.urlExists(ctx, highResURL) {
		return highResURL
	}
	return artworkURL
}

func (n *Notifier) urlExists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}
