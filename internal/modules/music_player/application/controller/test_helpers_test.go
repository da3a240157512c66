package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

const (
	testGuildID   = snowflake.ID(10)
	testOwnerID   = snowflake.ID(20)
	testOtherID   = snowflake.ID(21)
	testChannelID = snowflake.ID(30)
	testMessageID = snowflake.ID(40)

	replyWait = 2 * time.Second
)

type fakePlayer struct {
	mu       sync.Mutex
	current  *domain.Track
	upcoming []*domain.Track
	paused   bool
	volume   int
	loop     domain.LoopMode
	position time.Duration

	err       error // returned by every mutating call when set
	mutations int
}

var _ ports.Player = (*fakePlayer)(nil)

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		current: &domain.Track{
			Encoded:  "enc",
			Title:    "Song",
			Author:   "Artist",
			Duration: 3 * time.Minute,
		},
		volume: 100,
	}
}

func (f *fakePlayer) GuildID() snowflake.ID        { return testGuildID }
func (f *fakePlayer) VoiceChannelID() snowflake.ID { return 0 }
func (f *fakePlayer) TextChannelID() snowflake.ID  { return testChannelID }

func (f *fakePlayer) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current != nil && !f.paused
}

func (f *fakePlayer) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current != nil && f.paused
}

func (f *fakePlayer) Volume() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *fakePlayer) Loop() domain.LoopMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loop
}

func (f *fakePlayer) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakePlayer) Current() *domain.Track {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakePlayer) Upcoming() []*domain.Track {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Track(nil), f.upcoming...)
}

func (f *fakePlayer) QueueSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upcoming)
}

func (f *fakePlayer) Filters() domain.FilterSet { return domain.FilterSet{} }

func (f *fakePlayer) Enqueue(tracks ...*domain.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upcoming = append(f.upcoming, tracks...)
}

func (f *fakePlayer) mutate(fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.mutations++
	fn()
	return nil
}

func (f *fakePlayer) Play(_ context.Context) error { return f.mutate(func() {}) }

func (f *fakePlayer) Pause(_ context.Context, paused bool) error {
	return f.mutate(func() { f.paused = paused })
}

func (f *fakePlayer) Skip(_ context.Context) error {
	return f.mutate(func() {
		f.current = nil
		if len(f.upcoming) > 0 {
			f.current = f.upcoming[0]
			f.upcoming = f.upcoming[1:]
		}
	})
}

func (f *fakePlayer) Stop(_ context.Context) error {
	return f.mutate(func() {
		f.current = nil
		f.upcoming = nil
	})
}

func (f *fakePlayer) SetLoop(mode domain.LoopMode) {
	_ = f.mutate(func() { f.loop = mode })
}

func (f *fakePlayer) SetVolume(_ context.Context, volume int) error {
	return f.mutate(func() { f.volume = volume })
}

func (f *fakePlayer) SetFilters(_ context.Context, _ domain.FilterSet) error {
	return f.mutate(func() {})
}

func (f *fakePlayer) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

type fakeRegistry struct {
	mu      sync.Mutex
	players map[snowflake.ID]ports.Player
}

func newFakeRegistry(players ...ports.Player) *fakeRegistry {
	r := &fakeRegistry{players: make(map[snowflake.ID]ports.Player)}
	for _, p := range players {
		r.players[p.GuildID()] = p
	}
	return r
}

func (r *fakeRegistry) Player(guildID snowflake.ID) (ports.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[guildID]
	return p, ok
}

func (r *fakeRegistry) Create(_ context.Context, _, _, _ snowflake.ID) (ports.Player, error) {
	return nil, errors.New("not supported")
}

func (r *fakeRegistry) Destroy(_ context.Context, guildID snowflake.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, guildID)
	return nil
}

type fakeView struct {
	mu        sync.Mutex
	renders   []domain.PlaybackState
	clears    int
	renderErr error
}

func (v *fakeView) Render(_ context.Context, state domain.PlaybackState) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.renderErr != nil {
		return v.renderErr
	}
	v.renders = append(v.renders, state)
	return nil
}

func (v *fakeView) Clear(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clears++
	return nil
}

func (v *fakeView) renderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.renders)
}

func (v *fakeView) lastRender() domain.PlaybackState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders[len(v.renders)-1]
}

func (v *fakeView) clearCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clears
}

type fakeViewFactory struct {
	mu    sync.Mutex
	views map[snowflake.ID]*fakeView
}

func newFakeViewFactory() *fakeViewFactory {
	return &fakeViewFactory{views: make(map[snowflake.ID]*fakeView)}
}

func (f *fakeViewFactory) NewView(_, messageID snowflake.ID, _ ports.ControllerStyle) ports.ControllerView {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := &fakeView{}
	f.views[messageID] = v
	return v
}

func (f *fakeViewFactory) view(messageID snowflake.ID) *fakeView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[messageID]
}

type chanReplier struct {
	replies chan string
}

func newChanReplier() *chanReplier {
	return &chanReplier{replies: make(chan string, 1)}
}

func (r *chanReplier) ReplyEphemeral(content string) error {
	r.replies <- content
	return nil
}

type harness struct {
	t       *testing.T
	session *Session
	player  *fakePlayer
	players *fakeRegistry
	view    *fakeView
}

func startSession(t *testing.T, player *fakePlayer, timeout time.Duration) *harness {
	t.Helper()

	players := newFakeRegistry(player)
	view := &fakeView{}
	session := NewSession(SessionConfig{
		GuildID:   testGuildID,
		OwnerID:   testOwnerID,
		MessageID: testMessageID,
		Player:    player,
		Players:   players,
		View:      view,
		Timeout:   timeout,
	})

	go session.Run(context.Background())
	t.Cleanup(func() {
		session.Expire()
		<-session.Done()
	})

	return &harness{t: t, session: session, player: player, players: players, view: view}
}

// press submits a request and waits for its ephemeral reply.
func (h *harness) press(userID snowflake.ID, action domain.ControllerAction) string {
	h.t.Helper()

	replier := newChanReplier()
	if err := h.session.Submit(ActionRequest{Action: action, UserID: userID, Replier: replier}); err != nil {
		h.t.Fatalf("session rejected %s: %v", action, err)
	}

	select {
	case reply := <-replier.replies:
		return reply
	case <-time.After(replyWait):
		h.t.Fatalf("no reply to %s", action)
		return ""
	}
}

func (h *harness) waitDone() {
	h.t.Helper()
	select {
	case <-h.session.Done():
	case <-time.After(replyWait):
		h.t.Fatal("session did not expire")
	}
}
