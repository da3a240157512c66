package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/bot"
)

// commandTimeout bounds a single command, including joining voice and
// loading tracks.
const commandTimeout = 30 * time.Second

type commandFunc func(ctx context.Context, req Request) (*Response, error)

// MessageCommands returns the prefix commands.
func (h *CommandHandlers) MessageCommands() []bot.MessageCommand {
	return []bot.MessageCommand{
		{Name: "play", Aliases: []string{"p"}, Handler: h.prefixed(h.Play)},
		{Name: "pause", Aliases: []string{"resume"}, Handler: h.prefixed(h.Pause)},
		{Name: "skip", Aliases: []string{"s"}, Handler: h.prefixed(h.Skip)},
		{Name: "stop", Aliases: []string{"disconnect"}, Handler: h.prefixed(h.Stop)},
		{Name: "queue", Aliases: []string{"q"}, Handler: h.prefixed(h.Queue)},
		{Name: "volume", Aliases: []string{"vol", "v"}, Handler: h.prefixed(h.Volume)},
		{Name: "loop", Aliases: []string{"repeat"}, Handler: h.prefixed(h.Loop)},
		{Name: "filter", Aliases: []string{"fx", "effects"}, Handler: h.prefixed(h.Filter)},
		{Name: "controller", Aliases: []string{"ctrl"}, Handler: h.prefixed(h.Controller)},
		{Name: "help", Handler: h.prefixed(h.Help)},
	}
}

// prefixed adapts a command to the prefix surface.
func (h *CommandHandlers) prefixed(run commandFunc) bot.MessageHandler {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate, args []string, r bot.Replier) error {
		req, err := messageRequest(m, args)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		resp, err := run(ctx, req)
		if err != nil {
			return err
		}

		msg, err := r.Reply(&discordgo.MessageSend{
			Content:    resp.Content,
			Embeds:     resp.Embeds,
			Components: resp.Components,
		})
		if err != nil {
			return fmt.Errorf("failed to send reply: %w", err)
		}

		h.AttachController(req, resp, messageID(msg))
		return nil
	}
}

func messageRequest(m *discordgo.MessageCreate, args []string) (Request, error) {
	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		return Request{}, fmt.Errorf("invalid guild ID: %w", err)
	}

	channelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		return Request{}, fmt.Errorf("invalid channel ID: %w", err)
	}

	userID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return Request{}, fmt.Errorf("invalid user ID: %w", err)
	}

	return Request{
		GuildID:   guildID,
		ChannelID: channelID,
		UserID:    userID,
		Args:      args,
	}, nil
}

// messageID returns the ID of a posted message, or 0 if unknown.
func messageID(msg *discordgo.Message) snowflake.ID {
	if msg == nil {
		return 0
	}
	id, err := snowflake.Parse(msg.ID)
	if err != nil {
		return 0
	}
	return id
}
