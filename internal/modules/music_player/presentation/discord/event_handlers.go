package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/bot"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
)

const voiceStateTimeout = 10 * time.Second

// EventHandlers handles Discord gateway events for the music player.
type EventHandlers struct {
	botID        snowflake.ID
	voiceChannel *usecases.VoiceChannelService
	autocomplete *AutocompleteHandler
	components   *ComponentHandler
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(
	botID snowflake.ID,
	voiceChannel *usecases.VoiceChannelService,
	autocomplete *AutocompleteHandler,
	components *ComponentHandler,
) *EventHandlers {
	return &EventHandlers{
		botID:        botID,
		voiceChannel: voiceChannel,
		autocomplete: autocomplete,
		components:   components,
	}
}

// HandleVoiceStateUpdate forgets the player when the bot leaves voice.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	// Only handle updates for the bot itself
	if event.UserID != h.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	// An empty channel ID means disconnected
	var newChannelID *snowflake.ID
	if event.ChannelID != "" {
		id, err := snowflake.Parse(event.ChannelID)
		if err != nil {
			slog.Error("failed to parse channel ID in voice state update", "error", err)
			return
		}
		newChannelID = &id
	}

	ctx, cancel := context.WithTimeout(context.Background(), voiceStateTimeout)
	defer cancel()

	if err := h.voiceChannel.HandleBotVoiceStateChange(ctx, usecases.BotVoiceStateChangeInput{
		GuildID:      guildID,
		NewChannelID: newChannelID,
	}); err != nil {
		slog.Error("failed to handle bot voice state change", "guild", guildID, "error", err)
	}
}

// HandleInteractionCreate routes autocomplete requests and controller button
// presses. Slash commands are routed by the bot.
func (h *EventHandlers) HandleInteractionCreate(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	h.handleInteraction(i, bot.NewDiscordResponder(s, i.Interaction))
}

func (h *EventHandlers) handleInteraction(i *discordgo.InteractionCreate, r bot.Responder) {
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		if i.ApplicationCommandData().Name != "play" {
			return
		}
		if err := h.autocomplete.HandlePlay(i, r); err != nil {
			slog.Warn("failed to handle autocomplete", "error", err)
		}
	case discordgo.InteractionMessageComponent:
		if _, err := h.components.HandleComponent(i, r); err != nil {
			slog.Warn("failed to handle controller button",
				"custom_id", i.MessageComponentData().CustomID,
				"error", err,
			)
		}
	}
}
