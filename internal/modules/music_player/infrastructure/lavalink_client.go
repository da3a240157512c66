package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// voiceConnectionTimeout is the maximum time to wait for voice connection to be established.
const voiceConnectionTimeout = 10 * time.Second

// eventTimeout bounds the node calls made while handling a player event.
const eventTimeout = 10 * time.Second

// VoiceJoiner sends voice state updates over the gateway.
type VoiceJoiner interface {
	ChannelVoiceJoinManual(guildID, channelID string, mute, deaf bool) error
}

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	NodeName string
	Address  string
	Password string
	Secure   bool
}

// LavalinkAdapter owns the guild players and wraps DisGoLink for searching
// and voice connection handling.
type LavalinkAdapter struct {
	link     disgolink.Client
	voice    VoiceJoiner
	botID    snowflake.ID
	observer ports.PlaybackObserver

	playersMu sync.RWMutex
	players   map[snowflake.ID]*GuildPlayer

	voiceMu    sync.Mutex
	handshakes map[snowflake.ID]*voiceHandshake
}

var (
	_ ports.PlayerRegistry = (*LavalinkAdapter)(nil)
	_ ports.TrackSearcher  = (*LavalinkAdapter)(nil)
)

// NewLavalinkAdapter connects to the Lavalink node. observer receives
// playback notifications for every player and may be nil.
func NewLavalinkAdapter(
	ctx context.Context,
	botID snowflake.ID,
	voice VoiceJoiner,
	config LavalinkConfig,
	observer ports.PlaybackObserver,
) (*LavalinkAdapter, error) {
	adapter := &LavalinkAdapter{
		voice:      voice,
		botID:      botID,
		observer:   observer,
		players:    make(map[snowflake.ID]*GuildPlayer),
		handshakes: make(map[snowflake.ID]*voiceHandshake),
	}

	adapter.link = disgolink.New(botID,
		disgolink.WithListenerFunc(adapter.onTrackStart),
		disgolink.WithListenerFunc(adapter.onTrackEnd),
		disgolink.WithListenerFunc(adapter.onTrackException),
		disgolink.WithListenerFunc(adapter.onTrackStuck),
	)

	node, err := adapter.link.AddNode(ctx, disgolink.NodeConfig{
		Name:     config.NodeName,
		Address:  config.Address,
		Password: config.Password,
		Secure:   config.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return adapter, nil
}

// Close disconnects from all Lavalink nodes.
func (c *LavalinkAdapter) Close() {
	c.link.Close()
}

// Player returns the player of the guild if one exists.
func (c *LavalinkAdapter) Player(guildID snowflake.ID) (ports.Player, bool) {
	p, ok := c.guildPlayer(guildID)
	if !ok {
		return nil, false
	}
	return p, true
}

func (c *LavalinkAdapter) guildPlayer(guildID snowflake.ID) (*GuildPlayer, bool) {
	c.playersMu.RLock()
	defer c.playersMu.RUnlock()
	p, ok := c.players[guildID]
	return p, ok
}

// Create joins the voice channel (self-deafened) and registers a new player.
// It waits until Lavalink has received both halves of the voice handshake.
func (c *LavalinkAdapter) Create(
	ctx context.Context,
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (ports.Player, error) {
	if existing, ok := c.guildPlayer(guildID); ok {
		return existing, nil
	}

	handshake := newVoiceHandshake()
	c.voiceMu.Lock()
	c.handshakes[guildID] = handshake
	c.voiceMu.Unlock()

	err := c.voice.ChannelVoiceJoinManual(guildID.String(), voiceChannelID.String(), false, true)
	if err != nil {
		c.forgetHandshake(guildID, handshake)
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}

	if err := c.awaitHandshake(ctx, handshake); err != nil {
		c.forgetHandshake(guildID, handshake)
		if leaveErr := c.voice.ChannelVoiceJoinManual(guildID.String(), "", false, false); leaveErr != nil {
			slog.Warn("failed to leave voice channel", "guild", guildID, "error", leaveErr)
		}
		return nil, err
	}

	player := NewGuildPlayer(
		guildID,
		voiceChannelID,
		textChannelID,
		&lavalinkBackend{player: c.link.Player(guildID)},
		c.observer,
	)

	c.playersMu.Lock()
	defer c.playersMu.Unlock()
	if existing, ok := c.players[guildID]; ok {
		return existing, nil
	}
	c.players[guildID] = player

	slog.Info("player created", "guild", guildID, "channel", voiceChannelID)
	return player, nil
}

func (c *LavalinkAdapter) awaitHandshake(ctx context.Context, handshake *voiceHandshake) error {
	timer := time.NewTimer(voiceConnectionTimeout)
	defer timer.Stop()

	select {
	case <-handshake.Ready():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-timer.C:
		return errors.New("timeout waiting for voice connection")
	}
}

// Destroy stops the guild's player, leaves voice and forgets the guild.
func (c *LavalinkAdapter) Destroy(ctx context.Context, guildID snowflake.ID) error {
	c.playersMu.Lock()
	player, ok := c.players[guildID]
	delete(c.players, guildID)
	c.playersMu.Unlock()

	if ok {
		if err := player.destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild", guildID, "error", err)
		}
	}

	c.forgetHandshake(guildID, nil)

	if err := c.voice.ChannelVoiceJoinManual(guildID.String(), "", false, false); err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}

	slog.Info("player destroyed", "guild", guildID)
	return nil
}

// Search loads tracks for the query from the best available node.
func (c *LavalinkAdapter) Search(
	ctx context.Context,
	query domain.SearchQuery,
) (*ports.SearchResult, error) {
	node := c.link.BestNode()
	if node == nil {
		return nil, errors.New("no available Lavalink node")
	}

	result, err := node.LoadTracks(ctx, query.LavalinkQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	return convertLoadResult(result), nil
}

// OnVoiceServerUpdate forwards the voice server half of the handshake.
func (c *LavalinkAdapter) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	if update, ok := c.handshake(guildID).setServer(event.Token, event.Endpoint); ok {
		c.forwardVoiceUpdate(guildID, update)
	}
}

// OnVoiceStateUpdate forwards the voice state half of the handshake for the
// bot's own voice state.
func (c *LavalinkAdapter) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.UserID != c.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	// Disconnects are forwarded right away; there is no server half.
	if event.ChannelID == "" {
		c.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		c.forgetHandshake(guildID, nil)
		return
	}

	channelID, err := snowflake.Parse(event.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}

	if update, ok := c.handshake(guildID).setState(&channelID, event.SessionID); ok {
		c.forwardVoiceUpdate(guildID, update)
	}
}

func (c *LavalinkAdapter) handshake(guildID snowflake.ID) *voiceHandshake {
	c.voiceMu.Lock()
	defer c.voiceMu.Unlock()

	h, ok := c.handshakes[guildID]
	if !ok {
		h = newVoiceHandshake()
		c.handshakes[guildID] = h
	}
	return h
}

// forgetHandshake drops the guild's handshake. A non-nil h is only dropped
// if it is still the registered one.
func (c *LavalinkAdapter) forgetHandshake(guildID snowflake.ID, h *voiceHandshake) {
	c.voiceMu.Lock()
	defer c.voiceMu.Unlock()

	if h == nil || c.handshakes[guildID] == h {
		delete(c.handshakes, guildID)
	}
}

func (c *LavalinkAdapter) forwardVoiceUpdate(guildID snowflake.ID, update voiceUpdate) {
	slog.Debug("forwarding voice update to Lavalink",
		"guild", guildID,
		"channel", update.channelID,
		"hasSessionID", update.sessionID != "",
	)

	ctx := context.Background()
	c.link.OnVoiceStateUpdate(ctx, guildID, update.channelID, update.sessionID)
	c.link.OnVoiceServerUpdate(ctx, guildID, update.token, update.endpoint)
}

func (c *LavalinkAdapter) onTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild", player.GuildID(), "track", event.Track.Info.Title)
}

func (c *LavalinkAdapter) onTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild", player.GuildID(), "reason", event.Reason)

	gp, ok := c.guildPlayer(player.GuildID())
	if !ok {
		return
	}

	// Advancing talks to the node and to Discord; keep the event loop free.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		gp.onTrackEnd(ctx, event.Track.Encoded, convertEndReason(event.Reason))
	}()
}

func (c *LavalinkAdapter) onTrackException(
	player disgolink.Player,
	event lavalink.TrackExceptionEvent,
) {
	slog.Warn("track exception", "guild", player.GuildID(), "error", event.Exception.Message)

	if gp, ok := c.guildPlayer(player.GuildID()); ok {
		gp.onTrackException(event.Exception.Message)
	}
}

func (c *LavalinkAdapter) onTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild", player.GuildID(), "threshold", event.Threshold)
}

func convertEndReason(reason lavalink.TrackEndReason) domain.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return domain.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return domain.TrackEndLoadFailed
	case lavalink.TrackEndReasonStopped:
		return domain.TrackEndStopped
	case lavalink.TrackEndReasonReplaced:
		return domain.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return domain.TrackEndCleanup
	default:
		return domain.TrackEndStopped
	}
}

// convertLoadResult converts a Lavalink load result.
func convertLoadResult(result *lavalink.LoadResult) *ports.SearchResult {
	switch data := result.Data.(type) {
	case lavalink.Track:
		return &ports.SearchResult{
			Type:   ports.LoadTypeTrack,
			Tracks: []*domain.Track{convertTrack(data)},
		}

	case lavalink.Playlist:
		return &ports.SearchResult{
			Type:         ports.LoadTypePlaylist,
			Tracks:       convertTracks(data.Tracks),
			PlaylistName: data.Info.Name,
		}

	case lavalink.Search:
		return &ports.SearchResult{
			Type:   ports.LoadTypeSearch,
			Tracks: convertTracks(data),
		}

	case lavalink.Exception:
		slog.Warn("track load failed", "error", data.Message)
		return &ports.SearchResult{Type: ports.LoadTypeError}

	default:
		return &ports.SearchResult{Type: ports.LoadTypeEmpty}
	}
}

func convertTracks(tracks []lavalink.Track) []*domain.Track {
	converted := make([]*domain.Track, len(tracks))
	for i, track := range tracks {
		converted[i] = convertTrack(track)
	}
	return converted
}

func convertTrack(track lavalink.Track) *domain.Track {
	info := track.Info
	return &domain.Track{
		Encoded:    track.Encoded,
		Identifier: info.Identifier,
		Title:      info.Title,
		Author:     info.Author,
		Duration:   time.Duration(info.Length) * time.Millisecond,
		URI:        derefString(info.URI),
		ArtworkURL: derefString(info.ArtworkURL),
		SourceName: info.SourceName,
		IsStream:   info.IsStream,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
