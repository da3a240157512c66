package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/bot"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
)

const (
	// minSearchLength is the shortest query that triggers a search.
	minSearchLength = 2
	// maxChoiceLength is the Discord limit for choice names and values.
	maxChoiceLength     = 100
	autocompleteTimeout = 3 * time.Second
)

// AutocompleteHandler handles autocomplete requests.
type AutocompleteHandler struct {
	autocomplete *usecases.AutocompleteService
}

// NewAutocompleteHandler creates a new AutocompleteHandler.
func NewAutocompleteHandler(autocomplete *usecases.AutocompleteService) *AutocompleteHandler {
	return &AutocompleteHandler{autocomplete: autocomplete}
}

// HandlePlay suggests tracks for the query option of the play command. An
// empty query suggests the tracks already queued.
func (h *AutocompleteHandler) HandlePlay(i *discordgo.InteractionCreate, r bot.Responder) error {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" && opt.Focused {
			query = opt.StringValue()
			break
		}
	}

	if query != "" && utf8.RuneCountInString(query) < minSearchLength {
		return respondChoices(r, nil)
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return fmt.Errorf("invalid guild ID: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), autocompleteTimeout)
	defer cancel()

	output, err := h.autocomplete.Suggest(ctx, usecases.SuggestInput{
		GuildID: guildID,
		Query:   query,
	})
	if err != nil {
		slog.Debug("failed to search for autocomplete", "query", query, "error", err)
		return respondChoices(r, nil)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(output.Tracks))
	for _, track := range output.Tracks {
		value := track.URI
		if value == "" {
			value = track.Title
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(fmt.Sprintf("🎵 %s - %s", track.Title, track.Author), maxChoiceLength),
			Value: truncate(value, maxChoiceLength),
		})
	}

	return respondChoices(r, choices)
}

func respondChoices(r bot.Responder, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}
