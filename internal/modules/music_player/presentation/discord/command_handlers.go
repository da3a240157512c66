package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/controller"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
)

// Request is a music command invocation from either command surface.
type Request struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	UserID    snowflake.ID
	// Args holds the command arguments in order, e.g. the words of a
	// prefix command or the options of a slash command.
	Args []string
}

func (r Request) arg(i int) string {
	if i < len(r.Args) {
		return r.Args[i]
	}
	return ""
}

// Response is the message a command answers with.
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent

	// AttachController binds a controller session of ControllerStyle to the
	// posted message.
	AttachController bool
	ControllerStyle  ports.ControllerStyle
}

// ControllerStarter starts controller sessions on posted messages.
type ControllerStarter interface {
	Start(input controller.StartInput) (*controller.Session, error)
}

// Replies that do not use an embed.
const (
	replyNoPlayer       = "❌ No active player."
	replyNothingPlaying = "❌ Nothing is currently playing."
	replyPaused         = "⏸️ Paused!"
	replyResumed        = "▶️ Resumed!"
	replySkipped        = "⏭️ Skipped!"
	replyStopped        = "🛑 Stopped and disconnected."
)

// CommandHandlers implements the music commands once for both surfaces.
type CommandHandlers struct {
	voiceChannel *usecases.VoiceChannelService
	playback     *usecases.PlaybackService
	queue        *usecases.QueueService
	players      ports.PlayerRegistry
	controllers  ControllerStarter
	prefix       string
}

// NewCommandHandlers creates new CommandHandlers. prefix is shown in help
// and error messages.
func NewCommandHandlers(
	voiceChannel *usecases.VoiceChannelService,
	playback *usecases.PlaybackService,
	queue *usecases.QueueService,
	players ports.PlayerRegistry,
	controllers ControllerStarter,
	prefix string,
) *CommandHandlers {
	return &CommandHandlers{
		voiceChannel: voiceChannel,
		playback:     playback,
		queue:        queue,
		players:      players,
		controllers:  controllers,
		prefix:       prefix,
	}
}

// Play joins the user's channel if needed and queues the query.
func (h *CommandHandlers) Play(ctx context.Context, req Request) (*Response, error) {
	output, err := h.queue.Play(ctx, usecases.PlayInput{
		GuildID:       req.GuildID,
		UserID:        req.UserID,
		TextChannelID: req.ChannelID,
		Query:         strings.Join(req.Args, " "),
	})
	if err != nil {
		return errorResponse(err)
	}

	embed := addedToQueueEmbed(output.Tracks[0])
	if output.IsPlaylist {
		embed = playlistLoadedEmbed(output.PlaylistName, output.Tracks)
	}

	return &Response{
		Embeds:           []*discordgo.MessageEmbed{embed},
		Components:       Controls(controller.ReadSnapshot(output.Player)),
		AttachController: true,
		ControllerStyle:  ports.ControllerCompact,
	}, nil
}

// Pause toggles between paused and playing.
func (h *CommandHandlers) Pause(ctx context.Context, req Request) (*Response, error) {
	output, err := h.playback.TogglePause(ctx, usecases.TogglePauseInput{GuildID: req.GuildID})
	if errors.Is(err, usecases.ErrNoPlayer) {
		return &Response{Content: replyNoPlayer}, nil
	}
	if err != nil {
		return nil, err
	}

	if output.Paused {
		return &Response{Content: replyPaused}, nil
	}
	return &Response{Content: replyResumed}, nil
}

// Skip ends the current track.
func (h *CommandHandlers) Skip(ctx context.Context, req Request) (*Response, error) {
	_, err := h.playback.Skip(ctx, usecases.SkipInput{GuildID: req.GuildID})
	switch {
	case errors.Is(err, usecases.ErrNoPlayer):
		return &Response{Content: replyNoPlayer}, nil
	case errors.Is(err, usecases.ErrNotPlaying):
		return &Response{Content: replyNothingPlaying}, nil
	case err != nil:
		return nil, err
	}

	return &Response{Content: replySkipped}, nil
}

// Stop destroys the player and leaves voice.
func (h *CommandHandlers) Stop(ctx context.Context, req Request) (*Response, error) {
	err := h.voiceChannel.Leave(ctx, usecases.LeaveInput{GuildID: req.GuildID})
	if errors.Is(err, usecases.ErrNoPlayer) {
		return &Response{Content: replyNoPlayer}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Response{Content: replyStopped}, nil
}

// Queue lists the current track and the upcoming ones.
func (h *CommandHandlers) Queue(_ context.Context, req Request) (*Response, error) {
	output, err := h.queue.List(usecases.QueueListInput{GuildID: req.GuildID})
	if err != nil {
		return errorResponse(err)
	}

	return embedResponse(queueEmbed(output)), nil
}

// Volume shows or sets the volume.
func (h *CommandHandlers) Volume(ctx context.Context, req Request) (*Response, error) {
	output, err := h.playback.Volume(ctx, usecases.VolumeInput{
		GuildID: req.GuildID,
		UserID:  req.UserID,
		Level:   req.arg(0),
	})
	if err != nil {
		if _, known := userMessage(err); known {
			return errorResponse(err)
		}
		slog.Warn("failed to set volume", "guild", req.GuildID, "error", err)
		return embedResponse(errorEmbed("Failed to set volume. Please try again.")), nil
	}

	if !output.Changed {
		return embedResponse(currentVolumeEmbed(output.Volume)), nil
	}
	return embedResponse(volumeUpdatedEmbed(output.Volume)), nil
}

// Loop sets the given loop mode or cycles to the next one.
func (h *CommandHandlers) Loop(ctx context.Context, req Request) (*Response, error) {
	output, err := h.playback.SetLoopMode(ctx, usecases.SetLoopModeInput{
		GuildID: req.GuildID,
		Mode:    req.arg(0),
	})
	if err != nil {
		return errorResponse(err)
	}

	return embedResponse(loopUpdatedEmbed(output.Previous, output.Current)), nil
}

// Filter lists the filters, or applies one.
func (h *CommandHandlers) Filter(ctx context.Context, req Request) (*Response, error) {
	if _, ok := h.players.Player(req.GuildID); !ok {
		return errorResponse(usecases.ErrNoPlayer)
	}

	name := req.arg(0)
	if name == "" {
		return embedResponse(filterListEmbed()), nil
	}

	output, err := h.playback.ApplyFilter(ctx, usecases.ApplyFilterInput{
		GuildID: req.GuildID,
		Filter:  name,
		Level:   req.arg(1),
	})
	if errors.Is(err, usecases.ErrUnknownFilter) {
		return embedResponse(errorEmbed(fmt.Sprintf(
			"Unknown filter: `%s`. Run `%sfilter` for a list of filters.",
			strings.ToLower(name), h.prefix,
		))), nil
	}
	if err != nil {
		return errorResponse(err)
	}

	return embedResponse(filterAppliedEmbed(output)), nil
}

// Controller posts the rich controller.
func (h *CommandHandlers) Controller(_ context.Context, req Request) (*Response, error) {
	player, ok := h.players.Player(req.GuildID)
	if !ok {
		return embedResponse(errorEmbed("No music is currently playing!")), nil
	}

	state := controller.ReadSnapshot(player)
	return &Response{
		Embeds:           []*discordgo.MessageEmbed{StatusEmbed(state)},
		Components:       Controls(state),
		AttachController: true,
		ControllerStyle:  ports.ControllerRich,
	}, nil
}

// Help lists the commands.
func (h *CommandHandlers) Help(_ context.Context, _ Request) (*Response, error) {
	return embedResponse(helpEmbed(h.prefix)), nil
}

// AttachController starts a controller session on a posted response.
func (h *CommandHandlers) AttachController(req Request, resp *Response, messageID snowflake.ID) {
	if resp == nil || !resp.AttachController || messageID == 0 {
		return
	}

	_, err := h.controllers.Start(controller.StartInput{
		GuildID:   req.GuildID,
		OwnerID:   req.UserID,
		ChannelID: req.ChannelID,
		MessageID: messageID,
		Style:     resp.ControllerStyle,
	})
	if err != nil {
		slog.Warn("failed to start controller",
			"guild", req.GuildID,
			"message", messageID,
			"error", err,
		)
	}
}

func embedResponse(embed *discordgo.MessageEmbed) *Response {
	return &Response{Embeds: []*discordgo.MessageEmbed{embed}}
}

// errorResponse converts use case errors into an error embed. Errors the
// user cannot act on are returned as is.
func errorResponse(err error) (*Response, error) {
	message, ok := userMessage(err)
	if !ok {
		return nil, err
	}
	return embedResponse(errorEmbed(message)), nil
}

// userMessage maps use case errors to the message shown to the user.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, usecases.ErrNoPlayer):
		return "No active player in this server.", true
	case errors.Is(err, usecases.ErrNotPlaying):
		return "Nothing is currently playing.", true
	case errors.Is(err, usecases.ErrUserNotInVoice):
		return "You need to be in a voice channel to use this command!", true
	case errors.Is(err, usecases.ErrDifferentVoiceChannel):
		return "You must be in the same voice channel as the bot.", true
	case errors.Is(err, usecases.ErrEmptyQuery):
		return "Provide a song name or URL!", true
	case errors.Is(err, usecases.ErrNoResults):
		return "No results found!", true
	case errors.Is(err, usecases.ErrQueueEmpty):
		return "The queue is currently empty.", true
	case errors.Is(err, usecases.ErrInvalidVolume):
		return "Please provide a valid volume number (0-100).", true
	case errors.Is(err, usecases.ErrInvalidLoopMode):
		return "Invalid loop option. Use `off`, `track`, or `queue`.", true
	case errors.Is(err, usecases.ErrInvalidBassBoost):
		return "Bassboost level must be between 0 and 5.", true
	default:
		return "", false
	}
}
