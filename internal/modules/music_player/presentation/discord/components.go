package discord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/bot"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/controller"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Dispatcher routes button presses to the controller session of a message.
type Dispatcher interface {
	Dispatch(messageID snowflake.ID, req controller.ActionRequest) error
}

// ComponentHandler handles presses on controller buttons.
type ComponentHandler struct {
	dispatcher Dispatcher
}

// NewComponentHandler creates a new ComponentHandler.
func NewComponentHandler(dispatcher Dispatcher) *ComponentHandler {
	return &ComponentHandler{dispatcher: dispatcher}
}

// HandleComponent dispatches a controller button press. It reports whether
// the interaction belonged to the controller.
func (h *ComponentHandler) HandleComponent(i *discordgo.InteractionCreate, r bot.Responder) (bool, error) {
	action, ok := domain.ParseControllerCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return false, nil
	}
	if i.Message == nil {
		return true, fmt.Errorf("component interaction without message")
	}

	messageID, err := snowflake.Parse(i.Message.ID)
	if err != nil {
		return true, fmt.Errorf("invalid message ID: %w", err)
	}

	userID, err := snowflake.Parse(interactionUserID(i))
	if err != nil {
		return true, fmt.Errorf("invalid user ID: %w", err)
	}

	replier := &ephemeralReplier{responder: r}
	err = h.dispatcher.Dispatch(messageID, controller.ActionRequest{
		Action:  action,
		UserID:  userID,
		Replier: replier,
	})
	if err == nil {
		return true, nil
	}

	slog.Debug("rejected controller action", "message", messageID, "action", action, "error", err)
	if errors.Is(err, controller.ErrSessionBusy) {
		return true, replier.ReplyEphemeral(controller.ReplyBusy)
	}
	return true, replier.ReplyEphemeral(controller.ReplyExpired)
}

// ephemeralReplier answers a component interaction with a message only the
// presser can see.
type ephemeralReplier struct {
	responder bot.Responder
}

var _ ports.EphemeralReplier = (*ephemeralReplier)(nil)

func (e *ephemeralReplier) ReplyEphemeral(content string) error {
	return e.responder.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
