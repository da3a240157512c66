package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// AudioBackend is the audio node player a GuildPlayer drives.
type AudioBackend interface {
	Play(ctx context.Context, encoded string) error
	Stop(ctx context.Context) error
	Pause(ctx context.Context, paused bool) error
	SetVolume(ctx context.Context, volume int) error
	SetFilters(ctx context.Context, filters domain.FilterSet) error
	Position() time.Duration
	Destroy(ctx context.Context) error
}

// GuildPlayer owns the queue, loop mode and volume of one guild and keeps
// the audio backend in sync with them.
type GuildPlayer struct {
	guildID        snowflake.ID
	voiceChannelID snowflake.ID
	textChannelID  snowflake.ID

	backend  AudioBackend
	observer ports.PlaybackObserver

	mu      sync.Mutex
	queue   *domain.Queue
	paused  bool
	volume  int
	loop    domain.LoopMode
	filters domain.FilterSet
}

var _ ports.Player = (*GuildPlayer)(nil)

// NewGuildPlayer creates an idle player. observer may be nil.
func NewGuildPlayer(
	guildID, voiceChannelID, textChannelID snowflake.ID,
	backend AudioBackend,
	observer ports.PlaybackObserver,
) *GuildPlayer {
	return &GuildPlayer{
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
		textChannelID:  textChannelID,
		backend:        backend,
		observer:       observer,
		queue:          domain.NewQueue(),
		volume:         -1,
	}
}

func (p *GuildPlayer) GuildID() snowflake.ID        { return p.guildID }
func (p *GuildPlayer) VoiceChannelID() snowflake.ID { return p.voiceChannelID }
func (p *GuildPlayer) TextChannelID() snowflake.ID  { return p.textChannelID }

func (p *GuildPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Current() != nil && !p.paused
}

func (p *GuildPlayer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Current() != nil && p.paused
}

func (p *GuildPlayer) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *GuildPlayer) Loop() domain.LoopMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop
}

// Position returns the playback position reported by the audio node.
func (p *GuildPlayer) Position() time.Duration {
	p.mu.Lock()
	playing := p.queue.Current() != nil
	p.mu.Unlock()
	if !playing {
		return 0
	}
	return p.backend.Position()
}

func (p *GuildPlayer) Current() *domain.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Current()
}

func (p *GuildPlayer) Upcoming() []*domain.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Upcoming()
}

func (p *GuildPlayer) QueueSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.UpcomingLen()
}

func (p *GuildPlayer) Filters() domain.FilterSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

func (p *GuildPlayer) Enqueue(tracks ...*domain.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue.Append(tracks...)
}

// Play starts the next queued track if nothing is selected yet.
func (p *GuildPlayer) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.queue.Current() != nil {
		return nil
	}
	track := p.queue.Start()
	if track == nil {
		return nil
	}
	if err := p.unpauseLocked(ctx); err != nil {
		p.queue.Halt()
		return err
	}

	if err := p.backend.Play(ctx, track.Encoded); err != nil {
		p.queue.Halt()
		return fmt.Errorf("failed to play track: %w", err)
	}
	return nil
}

func (p *GuildPlayer) Pause(ctx context.Context, paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.backend.Pause(ctx, paused); err != nil {
		if paused {
			return fmt.Errorf("failed to pause playback: %w", err)
		}
		return fmt.Errorf("failed to resume playback: %w", err)
	}
	p.paused = paused
	return nil
}

// Skip moves to the next track. Track looping is ignored so that a skip
// always leaves the current track.
func (p *GuildPlayer) Skip(ctx context.Context) error {
	p.mu.Lock()
	next := p.queue.Skip(p.loop)
	if next == nil {
		err := p.backend.Stop(ctx)
		p.mu.Unlock()
		p.notifyEnded()
		if err != nil {
			return fmt.Errorf("failed to stop playback: %w", err)
		}
		return nil
	}

	err := p.backend.Play(ctx, next.Encoded)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}
	return nil
}

// Stop ends playback and drops the queue.
func (p *GuildPlayer) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.queue.Clear()
	err := p.backend.Stop(ctx)
	if err == nil {
		err = p.unpauseLocked(ctx)
	}
	p.mu.Unlock()

	p.notifyEnded()
	if err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}
	return nil
}

// unpauseLocked clears a pause left over from a previous track. The audio
// node keeps its pause flag across tracks.
func (p *GuildPlayer) unpauseLocked(ctx context.Context) error {
	if !p.paused {
		return nil
	}
	if err := p.backend.Pause(ctx, false); err != nil {
		return fmt.Errorf("failed to resume playback: %w", err)
	}
	p.paused = false
	return nil
}

func (p *GuildPlayer) SetLoop(mode domain.LoopMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = mode.Normalize()
}

func (p *GuildPlayer) SetVolume(ctx context.Context, volume int) error {
	volume = domain.ClampVolume(volume)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.backend.SetVolume(ctx, volume); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	p.volume = volume
	return nil
}

func (p *GuildPlayer) SetFilters(ctx context.Context, filters domain.FilterSet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.backend.SetFilters(ctx, filters); err != nil {
		return fmt.Errorf("failed to apply filters: %w", err)
	}
	p.filters = filters
	return nil
}

// onTrackEnd advances the queue after the audio node finished a track.
// Events for a track other than the current one are stale and ignored.
func (p *GuildPlayer) onTrackEnd(ctx context.Context, encoded string, reason domain.TrackEndReason) {
	if !reason.ShouldAdvanceQueue() {
		return
	}

	p.mu.Lock()
	current := p.queue.Current()
	if current == nil || current.Encoded != encoded {
		p.mu.Unlock()
		return
	}

	var next *domain.Track
	if reason == domain.TrackEndLoadFailed {
		// A track that failed to load is dropped so no loop mode retries it.
		failed := p.queue.Index()
		p.queue.Skip(p.loop)
		p.queue.RemoveAt(failed)
		next = p.queue.Current()
	} else {
		next = p.queue.Advance(p.loop)
	}
	if next == nil {
		p.mu.Unlock()
		p.notifyEnded()
		return
	}

	err := p.backend.Play(ctx, next.Encoded)
	p.mu.Unlock()
	if err != nil {
		slog.Error("failed to play next track", "guild", p.guildID, "error", err)
		return
	}

	if p.observer != nil {
		p.observer.TrackStarted(p.guildID, p.textChannelID, next)
	}
}

// onTrackException reports a playback failure to the text channel.
func (p *GuildPlayer) onTrackException(message string) {
	if p.observer != nil {
		p.observer.TrackFailed(p.guildID, p.textChannelID, message)
	}
}

// destroy stops the backend player and forgets the queue.
func (p *GuildPlayer) destroy(ctx context.Context) error {
	p.mu.Lock()
	p.queue.Clear()
	p.paused = false
	err := p.backend.Destroy(ctx)
	p.mu.Unlock()

	p.notifyEnded()
	return err
}

func (p *GuildPlayer) notifyEnded() {
	if p.observer != nil {
		p.observer.PlaybackEnded(p.guildID)
	}
}
