package infrastructure

import (
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// DefaultEventBufferSize is the default buffer size of the event channel.
const DefaultEventBufferSize = 100

type playbackEventType string

const (
	eventTrackStarted  playbackEventType = "TrackStarted"
	eventPlaybackEnded playbackEventType = "PlaybackEnded"
	eventTrackFailed   playbackEventType = "TrackFailed"
)

type playbackEvent struct {
	kind          playbackEventType
	guildID       snowflake.ID
	textChannelID snowflake.ID
	track         *domain.Track
	message       string
}

// PlaybackEventBus decouples players from their observers. Events are
// delivered in publish order on a single dispatcher goroutine, so a player
// never waits on Discord while holding its queue.
type PlaybackEventBus struct {
	events chan playbackEvent
	target ports.PlaybackObserver

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var _ ports.PlaybackObserver = (*PlaybackEventBus)(nil)

// NewPlaybackEventBus starts a bus delivering to target.
func NewPlaybackEventBus(target ports.PlaybackObserver, bufferSize int) *PlaybackEventBus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	b := &PlaybackEventBus{
		events: make(chan playbackEvent, bufferSize),
		target: target,
		done:   make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *PlaybackEventBus) TrackStarted(guildID, textChannelID snowflake.ID, track *domain.Track) {
	b.publish(playbackEvent{
		kind:          eventTrackStarted,
		guildID:       guildID,
		textChannelID: textChannelID,
		track:         track,
	})
}

func (b *PlaybackEventBus) PlaybackEnded(guildID snowflake.ID) {
	b.publish(playbackEvent{kind: eventPlaybackEnded, guildID: guildID})
}

func (b *PlaybackEventBus) TrackFailed(guildID, textChannelID snowflake.ID, message string) {
	b.publish(playbackEvent{
		kind:          eventTrackFailed,
		guildID:       guildID,
		textChannelID: textChannelID,
		message:       message,
	})
}

// publish is non-blocking: if the buffer is full, the event is dropped with a warning.
func (b *PlaybackEventBus) publish(event playbackEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", event.kind)
		return
	}

	select {
	case b.events <- event:
		slog.Debug("published event", "type", event.kind, "guild", event.guildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", event.kind, "guild", event.guildID)
	}
}

func (b *PlaybackEventBus) dispatch() {
	defer close(b.done)

	for event := range b.events {
		switch event.kind {
		case eventTrackStarted:
			b.target.TrackStarted(event.guildID, event.textChannelID, event.track)
		case eventPlaybackEnded:
			b.target.PlaybackEnded(event.guildID)
		case eventTrackFailed:
			b.target.TrackFailed(event.guildID, event.textChannelID, event.message)
		}
	}
}

// Close stops accepting events, delivers the ones already queued and waits
// for the dispatcher to exit.
func (b *PlaybackEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.events)
	b.mu.Unlock()

	<-b.done
	slog.Debug("playback event bus closed")
}
