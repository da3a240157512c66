package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/bot"
)

// slashCommand adapts a command to the slash surface.
type slashCommand struct {
	run commandFunc
	// options lists the option names in argument order.
	options []string
	// deferred commands acknowledge first and edit the response when done.
	// Commands that attach a controller must be deferred to learn the
	// message ID.
	deferred bool
}

// SlashHandlers returns the slash command handlers keyed by command name.
func (h *CommandHandlers) SlashHandlers() map[string]bot.InteractionHandler {
	commands := map[string]slashCommand{
		"play":       {run: h.Play, options: []string{"query"}, deferred: true},
		"pause":      {run: h.Pause},
		"skip":       {run: h.Skip},
		"stop":       {run: h.Stop},
		"queue":      {run: h.Queue},
		"volume":     {run: h.Volume, options: []string{"level"}},
		"loop":       {run: h.Loop, options: []string{"mode"}},
		"filter":     {run: h.Filter, options: []string{"effect", "level"}},
		"controller": {run: h.Controller, deferred: true},
		"help":       {run: h.Help},
	}

	handlers := make(map[string]bot.InteractionHandler, len(commands))
	for name, cmd := range commands {
		handlers[name] = h.slashed(cmd)
	}
	return handlers
}

func (h *CommandHandlers) slashed(cmd slashCommand) bot.InteractionHandler {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
		req, err := interactionRequest(i, cmd.options)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if !cmd.deferred {
			resp, err := cmd.run(ctx, req)
			if err != nil {
				return err
			}
			return r.Respond(&discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content:    resp.Content,
					Embeds:     resp.Embeds,
					Components: resp.Components,
				},
			})
		}

		if err := r.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			return fmt.Errorf("failed to defer response: %w", err)
		}

		resp, err := cmd.run(ctx, req)
		if err != nil {
			// The interaction is acknowledged, so the error is reported by editing it.
			slog.Error("failed to handle deferred command", "guild", req.GuildID, "error", err)
			resp = embedResponse(errorEmbed("An error occurred while processing your command."))
		}

		msg, err := r.EditResponse(webhookEdit(resp))
		if err != nil {
			return fmt.Errorf("failed to edit response: %w", err)
		}

		h.AttachController(req, resp, messageID(msg))
		return nil
	}
}

// webhookEdit replaces the deferred placeholder with resp.
func webhookEdit(resp *Response) *discordgo.WebhookEdit {
	edit := &discordgo.WebhookEdit{Content: &resp.Content}
	if resp.Embeds != nil {
		edit.Embeds = &resp.Embeds
	}
	if resp.Components != nil {
		edit.Components = &resp.Components
	}
	return edit
}

// interactionRequest builds a Request from a slash command, taking the
// arguments from the named options.
func interactionRequest(i *discordgo.InteractionCreate, optionNames []string) (Request, error) {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return Request{}, fmt.Errorf("invalid guild ID: %w", err)
	}

	channelID, err := snowflake.Parse(i.ChannelID)
	if err != nil {
		return Request{}, fmt.Errorf("invalid channel ID: %w", err)
	}

	userID, err := snowflake.Parse(interactionUserID(i))
	if err != nil {
		return Request{}, fmt.Errorf("invalid user ID: %w", err)
	}

	values := make(map[string]string)
	for _, opt := range i.ApplicationCommandData().Options {
		values[opt.Name] = optionString(opt)
	}

	args := make([]string, 0, len(optionNames))
	for _, name := range optionNames {
		args = append(args, values[name])
	}
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}

	return Request{
		GuildID:   guildID,
		ChannelID: channelID,
		UserID:    userID,
		Args:      args,
	}, nil
}

func optionString(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionInteger:
		return strconv.FormatInt(opt.IntValue(), 10)
	case discordgo.ApplicationCommandOptionString:
		return opt.StringValue()
	default:
		return fmt.Sprint(opt.Value)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
