package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/controller"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

const (
	testGuildID        = snowflake.ID(1)
	testUserID         = snowflake.ID(2)
	testChannelID      = snowflake.ID(3)
	testVoiceChannelID = snowflake.ID(4)
	testBotID          = snowflake.ID(5)
)

var errBackend = errors.New("backend unavailable")

func testTrack(id string) *domain.Track {
	return &domain.Track{
		Encoded:    "encoded-" + id,
		Identifier: id,
		Title:      "Track " + id,
		Author:     "Artist",
		Duration:   3 * time.Minute,
		URI:        "https://example.com/" + id,
	}
}

type fakePlayer struct {
	current  *domain.Track
	upcoming []*domain.Track
	paused   bool
	volume   int
	loop     domain.LoopMode
	filters  domain.FilterSet

	volumeErr error
}

var _ ports.Player = (*fakePlayer)(nil)

func newFakePlayer() *fakePlayer {
	return &fakePlayer{volume: -1}
}

func (f *fakePlayer) GuildID() snowflake.ID        { return testGuildID }
func (f *fakePlayer) VoiceChannelID() snowflake.ID { return testVoiceChannelID }
func (f *fakePlayer) TextChannelID() snowflake.ID  { return testChannelID }
func (f *fakePlayer) Playing() bool                { return f.current != nil && !f.paused }
func (f *fakePlayer) Paused() bool                 { return f.current != nil && f.paused }
func (f *fakePlayer) Volume() int                  { return f.volume }
func (f *fakePlayer) Loop() domain.LoopMode        { return f.loop }
func (f *fakePlayer) Position() time.Duration      { return 0 }
func (f *fakePlayer) Current() *domain.Track       { return f.current }
func (f *fakePlayer) Upcoming() []*domain.Track    { return f.upcoming }
func (f *fakePlayer) QueueSize() int               { return len(f.upcoming) }
func (f *fakePlayer) Filters() domain.FilterSet    { return f.filters }

func (f *fakePlayer) Enqueue(tracks ...*domain.Track) {
	f.upcoming = append(f.upcoming, tracks...)
}

func (f *fakePlayer) Play(_ context.Context) error {
	if f.current == nil && len(f.upcoming) > 0 {
		f.current = f.upcoming[0]
		f.upcoming = f.upcoming[1:]
	}
	return nil
}

func (f *fakePlayer) Pause(_ context.Context, paused bool) error {
	f.paused = paused
	return nil
}

func (f *fakePlayer) Skip(_ context.Context) error {
	f.current = nil
	return f.Play(context.Background())
}

func (f *fakePlayer) Stop(_ context.Context) error {
	f.current = nil
	f.upcoming = nil
	return nil
}

func (f *fakePlayer) SetLoop(mode domain.LoopMode) { f.loop = mode }

func (f *fakePlayer) SetVolume(_ context.Context, volume int) error {
	if f.volumeErr != nil {
		return f.volumeErr
	}
	f.volume = volume
	return nil
}

func (f *fakePlayer) SetFilters(_ context.Context, filters domain.FilterSet) error {
	f.filters = filters
	return nil
}

type fakeRegistry struct {
	players   map[snowflake.ID]*fakePlayer
	destroyed []snowflake.ID
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{players: make(map[snowflake.ID]*fakePlayer)}
}

func (r *fakeRegistry) add(p *fakePlayer) *fakePlayer {
	r.players[testGuildID] = p
	return p
}

func (r *fakeRegistry) Player(guildID snowflake.ID) (ports.Player, bool) {
	p, ok := r.players[guildID]
	if !ok {
		return nil, false
	}
	return p, true
}

func (r *fakeRegistry) Create(
	_ context.Context,
	guildID, _, _ snowflake.ID,
) (ports.Player, error) {
	p := newFakePlayer()
	r.players[guildID] = p
	return p, nil
}

func (r *fakeRegistry) Destroy(_ context.Context, guildID snowflake.ID) error {
	delete(r.players, guildID)
	r.destroyed = append(r.destroyed, guildID)
	return nil
}

type fakeVoiceState struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
}

func (f *fakeVoiceState) GetUserVoiceChannel(_, userID snowflake.ID) (*snowflake.ID, error) {
	channelID, ok := f.channels[userID]
	if !ok {
		return nil, nil
	}
	return &channelID, nil
}

type fakeSearcher struct {
	result  *ports.SearchResult
	err     error
	queries []domain.SearchQuery
}

func (f *fakeSearcher) Search(_ context.Context, query domain.SearchQuery) (*ports.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStarter struct {
	started []controller.StartInput
	err     error
}

func (f *fakeStarter) Start(input controller.StartInput) (*controller.Session, error) {
	f.started = append(f.started, input)
	return nil, f.err
}

type testEnv struct {
	registry *fakeRegistry
	voice    *fakeVoiceState
	searcher *fakeSearcher
	starter  *fakeStarter
	handlers *CommandHandlers
	suggest  *usecases.AutocompleteService
	channels *usecases.VoiceChannelService
}

// newTestEnv wires the command handlers over fakes. The test user sits in
// the test voice channel.
func newTestEnv() *testEnv {
	env := &testEnv{
		registry: newFakeRegistry(),
		voice: &fakeVoiceState{channels: map[snowflake.ID]snowflake.ID{
			testUserID: testVoiceChannelID,
		}},
		searcher: &fakeSearcher{},
		starter:  &fakeStarter{},
	}

	loader := usecases.NewTrackLoaderService(env.searcher, domain.SourceYouTube)
	env.channels = usecases.NewVoiceChannelService(env.registry, env.voice)
	playback := usecases.NewPlaybackService(env.registry, env.channels)
	queue := usecases.NewQueueService(env.channels, loader)
	env.suggest = usecases.NewAutocompleteService(env.registry, loader)

	env.handlers = NewCommandHandlers(env.channels, playback, queue, env.registry, env.starter, "!")
	return env
}

func testRequest(args ...string) Request {
	return Request{
		GuildID:   testGuildID,
		ChannelID: testChannelID,
		UserID:    testUserID,
		Args:      args,
	}
}

func slashInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuildID.String(),
			ChannelID: testChannelID.String(),
			Member:    &discordgo.Member{User: &discordgo.User{ID: testUserID.String()}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func embedOf(t *testing.T, resp *Response) *discordgo.MessageEmbed {
	t.Helper()
	if resp == nil || len(resp.Embeds) != 1 {
		t.Fatalf("expected exactly one embed, got %+v", resp)
	}
	return resp.Embeds[0]
}
