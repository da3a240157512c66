package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// DefaultPageSize is the number of upcoming tracks shown by the queue listing.
const DefaultPageSize = 10

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	TextChannelID snowflake.ID
	Query         string
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Player       ports.Player
	Tracks       []*domain.Track // tracks added to the queue
	IsPlaylist   bool
	PlaylistName string
	Started      bool // whether playback was started by this call
}

// QueueListInput contains the input for the QueueList use case.
type QueueListInput struct {
	GuildID  snowflake.ID
	PageSize int // Items shown (optional, defaults to 10)
}

// QueueListOutput contains the result of the QueueList use case.
type QueueListOutput struct {
	CurrentTrack  *domain.Track
	Tracks        []*domain.Track // first PageSize upcoming tracks
	Remaining     int             // upcoming tracks not in Tracks
	TotalTracks   int             // current track plus all upcoming
	TotalDuration time.Duration
}

// QueueService handles queue operations.
type QueueService struct {
	voice  *VoiceChannelService
	loader *TrackLoaderService
}

// NewQueueService creates a new QueueService.
func NewQueueService(voice *VoiceChannelService, loader *TrackLoaderService) *QueueService {
	return &QueueService{
		voice:  voice,
		loader: loader,
	}
}

// Play joins the user's voice channel if needed, resolves the query, queues
// the result and starts playback when the player is idle.
func (q *QueueService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	joined, err := q.voice.Join(ctx, JoinInput{
		GuildID:       input.GuildID,
		UserID:        input.UserID,
		TextChannelID: input.TextChannelID,
	})
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Query) == "" {
		return nil, ErrEmptyQuery
	}

	loaded, err := q.loader.LoadTracks(ctx, LoadTracksInput{
		Query:       input.Query,
		RequesterID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	player := joined.Player
	player.Enqueue(loaded.Tracks...)

	output := &PlayOutput{
		Player:       player,
		Tracks:       loaded.Tracks,
		IsPlaylist:   loaded.IsPlaylist,
		PlaylistName: loaded.PlaylistName,
	}

	if !player.Playing() && !player.Paused() {
		if err := player.Play(ctx); err != nil {
			return nil, err
		}
		output.Started = true
	}

	return output, nil
}

// List returns the current track and the first page of upcoming tracks.
func (q *QueueService) List(input QueueListInput) (*QueueListOutput, error) {
	player, ok := q.voice.players.Player(input.GuildID)
	if !ok {
		return nil, ErrNoPlayer
	}

	current := player.Current()
	upcoming := player.Upcoming()
	if current == nil && len(upcoming) == 0 {
		return nil, ErrQueueEmpty
	}

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	shown := upcoming
	if len(shown) > pageSize {
		shown = shown[:pageSize]
	}

	total := len(upcoming)
	if current != nil {
		total++
	}

	return &QueueListOutput{
		CurrentTrack:  current,
		Tracks:        shown,
		Remaining:     len(upcoming) - len(shown),
		TotalTracks:   total,
		TotalDuration: domain.TotalDuration(append([]*domain.Track{current}, upcoming...)...),
	}, nil
}
