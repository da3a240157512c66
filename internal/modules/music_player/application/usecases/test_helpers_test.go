package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		Encoded:    "encoded-" + id,
		Identifier: id,
		Title:      "Track " + id,
		Author:     "Artist",
		Duration:   3 * time.Minute,
	}
}

type mockPlayer struct {
	guildID        snowflake.ID
	voiceChannelID snowflake.ID
	textChannelID  snowflake.ID

	current  *domain.Track
	upcoming []*domain.Track
	paused   bool
	volume   int
	loop     domain.LoopMode
	filters  domain.FilterSet

	playCalls  int
	skipCalls  int
	pauseErr   error
	skipErr    error
	volumeErr  error
	filtersErr error
}

var _ ports.Player = (*mockPlayer)(nil)

func newMockPlayer(guildID, voiceChannelID snowflake.ID) *mockPlayer {
	return &mockPlayer{guildID: guildID, voiceChannelID: voiceChannelID, volume: -1}
}

func (m *mockPlayer) GuildID() snowflake.ID        { return m.guildID }
func (m *mockPlayer) VoiceChannelID() snowflake.ID { return m.voiceChannelID }
func (m *mockPlayer) TextChannelID() snowflake.ID  { return m.textChannelID }
func (m *mockPlayer) Playing() bool                { return m.current != nil && !m.paused }
func (m *mockPlayer) Paused() bool                 { return m.current != nil && m.paused }
func (m *mockPlayer) Volume() int                  { return m.volume }
func (m *mockPlayer) Loop() domain.LoopMode        { return m.loop }
func (m *mockPlayer) Position() time.Duration      { return 0 }
func (m *mockPlayer) Current() *domain.Track       { return m.current }
func (m *mockPlayer) Upcoming() []*domain.Track    { return m.upcoming }
func (m *mockPlayer) QueueSize() int               { return len(m.upcoming) }
func (m *mockPlayer) Filters() domain.FilterSet    { return m.filters }

func (m *mockPlayer) Enqueue(tracks ...*domain.Track) {
	m.upcoming = append(m.upcoming, tracks...)
}

func (m *mockPlayer) Play(_ context.Context) error {
	m.playCalls++
	if m.current == nil && len(m.upcoming) > 0 {
		m.current = m.upcoming[0]
		m.upcoming = m.upcoming[1:]
	}
	return nil
}

func (m *mockPlayer) Pause(_ context.Context, paused bool) error {
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.paused = paused
	return nil
}

func (m *mockPlayer) Skip(_ context.Context) error {
	if m.skipErr != nil {
		return m.skipErr
	}
	m.skipCalls++
	m.current = nil
	if len(m.upcoming) > 0 {
		m.current = m.upcoming[0]
		m.upcoming = m.upcoming[1:]
	}
	return nil
}

func (m *mockPlayer) Stop(_ context.Context) error {
	m.current = nil
	m.upcoming = nil
	return nil
}

func (m *mockPlayer) SetLoop(mode domain.LoopMode) { m.loop = mode }

func (m *mockPlayer) SetVolume(_ context.Context, volume int) error {
	if m.volumeErr != nil {
		return m.volumeErr
	}
	m.volume = volume
	return nil
}

func (m *mockPlayer) SetFilters(_ context.Context, filters domain.FilterSet) error {
	if m.filtersErr != nil {
		return m.filtersErr
	}
	m.filters = filters
	return nil
}

type mockRegistry struct {
	players   map[snowflake.ID]*mockPlayer
	created   []snowflake.ID
	destroyed []snowflake.ID
	createErr error
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{players: make(map[snowflake.ID]*mockPlayer)}
}

func (m *mockRegistry) add(p *mockPlayer) *mockPlayer {
	m.players[p.guildID] = p
	return p
}

func (m *mockRegistry) Player(guildID snowflake.ID) (ports.Player, bool) {
	p, ok := m.players[guildID]
	if !ok {
		return nil, false
	}
	return p, true
}

func (m *mockRegistry) Create(
	_ context.Context,
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (ports.Player, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	p := newMockPlayer(guildID, voiceChannelID)
	p.textChannelID = textChannelID
	m.players[guildID] = p
	m.created = append(m.created, guildID)
	return p, nil
}

func (m *mockRegistry) Destroy(_ context.Context, guildID snowflake.ID) error {
	delete(m.players, guildID)
	m.destroyed = append(m.destroyed, guildID)
	return nil
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	err      error
}

func newMockVoiceStateProvider() *mockVoiceStateProvider {
	return &mockVoiceStateProvider{channels: make(map[snowflake.ID]snowflake.ID)}
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(_, userID snowflake.ID) (*snowflake.ID, error) {
	if m.err != nil {
		return nil, m.err
	}
	channelID, ok := m.channels[userID]
	if !ok {
		return nil, nil
	}
	return &channelID, nil
}

type mockSearcher struct {
	result  *ports.SearchResult
	err     error
	queries []domain.SearchQuery
}

func (m *mockSearcher) Search(_ context.Context, query domain.SearchQuery) (*ports.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockNotificationSender struct {
	sent    []*ports.NowPlayingInfo
	deleted []domain.NowPlayingMessage
	errors  []string
	nextID  snowflake.ID
	sendErr error
}

func (m *mockNotificationSender) SendNowPlaying(
	channelID snowflake.ID,
	info *ports.NowPlayingInfo,
) (domain.NowPlayingMessage, error) {
	if m.sendErr != nil {
		return domain.NowPlayingMessage{}, m.sendErr
	}
	m.nextID++
	m.sent = append(m.sent, info)
	return domain.NowPlayingMessage{ChannelID: channelID, MessageID: m.nextID}, nil
}

func (m *mockNotificationSender) DeleteMessage(msg domain.NowPlayingMessage) error {
	m.deleted = append(m.deleted, msg)
	return nil
}

func (m *mockNotificationSender) SendError(_ snowflake.ID, message string) error {
	m.errors = append(m.errors, message)
	return nil
}

var errUserNotFound = errors.New("user not found")

type mockUserInfoProvider struct {
	users map[snowflake.ID]*ports.UserInfo
}

func (m *mockUserInfoProvider) GetUserInfo(_, userID snowflake.ID) (*ports.UserInfo, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, errUserNotFound
	}
	return user, nil
}
