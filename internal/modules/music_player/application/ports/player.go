package ports

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Player is the audio player of a single guild.
type Player interface {
	GuildID() snowflake.ID
	VoiceChannelID() snowflake.ID
	TextChannelID() snowflake.ID

	// Playing reports whether a track is loaded and not paused.
	Playing() bool
	// Paused reports whether a track is loaded and paused.
	Paused() bool
	// Volume returns the volume in [0, 100], or a negative value if unset.
	Volume() int
	Loop() domain.LoopMode
	Position() time.Duration
	// Current returns the playing track, or nil.
	Current() *domain.Track
	// Upcoming returns the tracks queued after the current one.
	Upcoming() []*domain.Track
	QueueSize() int
	Filters() domain.FilterSet

	// Enqueue appends tracks without starting playback.
	Enqueue(tracks ...*domain.Track)
	// Play starts the next queued track if the player is idle.
	Play(ctx context.Context) error
	Pause(ctx context.Context, paused bool) error
	// Skip ends the current track and advances the queue.
	Skip(ctx context.Context) error
	// Stop ends playback and clears the queue without advancing.
	Stop(ctx context.Context) error
	SetLoop(mode domain.LoopMode)
	SetVolume(ctx context.Context, volume int) error
	SetFilters(ctx context.Context, filters domain.FilterSet) error
}

// PlayerRegistry owns the guild players.
type PlayerRegistry interface {
	// Player returns the player of the guild if one exists.
	Player(guildID snowflake.ID) (Player, bool)

	// Create joins the voice channel and returns a new player bound to it.
	Create(ctx context.Context, guildID, voiceChannelID, textChannelID snowflake.ID) (Player, error)

	// Destroy stops the player, leaves voice and forgets the guild.
	Destroy(ctx context.Context, guildID snowflake.ID) error
}

// PlaybackObserver is notified as a player moves through its queue.
type PlaybackObserver interface {
	// TrackStarted is called when the queue advances to a new track on its own.
	TrackStarted(guildID, textChannelID snowflake.ID, track *domain.Track)
	// PlaybackEnded is called when the queue runs out or the player goes away.
	PlaybackEnded(guildID snowflake.ID)
	// TrackFailed is called when the audio node reports a playback error.
	TrackFailed(guildID, textChannelID snowflake.ID, message string)
}
