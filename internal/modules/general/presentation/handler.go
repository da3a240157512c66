package presentation

import (
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrmusic/internal/bot"
	"github.com/sglre6355/sgrmusic/internal/modules/general/application"
	"github.com/sglre6355/sgrmusic/internal/modules/general/domain"
)

// PingHandler handles the ping command on both surfaces.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler() *PingHandler {
	return &PingHandler{
		interactor: application.NewPingInteractor(),
	}
}

// Handle processes the /ping command and sends the response.
func (h *PingHandler) Handle(
	s *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	result := h.interactor.Execute(heartbeatLatency(s))
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: result.Message(),
		},
	})
}

// HandleMessage processes the ping prefix command.
func (h *PingHandler) HandleMessage(
	s *discordgo.Session,
	_ *discordgo.MessageCreate,
	_ []string,
	r bot.Replier,
) error {
	result := h.interactor.Execute(heartbeatLatency(s))
	_, err := r.Reply(&discordgo.MessageSend{Content: result.Message()})
	return err
}

func heartbeatLatency(s *discordgo.Session) time.Duration {
	if s == nil {
		return 0
	}
	return s.HeartbeatLatency()
}

// MessageSender sends plain messages to a channel.
type MessageSender interface {
	ChannelMessageSend(
		channelID string,
		content string,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// PongHandler handles messages containing the 🏓 emoji.
type PongHandler struct {
	interactor *application.PongInteractor
}

// NewPongHandler creates a new PongHandler.
func NewPongHandler() *PongHandler {
	return &PongHandler{
		interactor: application.NewPongInteractor(),
	}
}

// HandleMessage is the discordgo event handler for MessageCreate events.
func (h *PongHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.respond(s, m)
}

func (h *PongHandler) respond(sender MessageSender, m *discordgo.MessageCreate) {
	// Ignore bots, including the bot itself
	if m.Author == nil || m.Author.Bot {
		return
	}

	result := h.interactor.Execute(m.Content)
	if !result.ShouldRespond {
		return
	}
	if _, err := sender.ChannelMessageSend(m.ChannelID, result.Response); err != nil {
		slog.Error("failed to send message", "channel", m.ChannelID, "error", err)
	}
}

// StatusUpdater updates the gateway presence.
type StatusUpdater interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// PresenceHandler keeps the configured presence applied across reconnects.
type PresenceHandler struct {
	interactor *application.PresenceInteractor
}

// NewPresenceHandler creates a new PresenceHandler.
func NewPresenceHandler(interactor *application.PresenceInteractor) *PresenceHandler {
	return &PresenceHandler{interactor: interactor}
}

// HandleReady reapplies the presence whenever the gateway session is
// (re)established.
func (h *PresenceHandler) HandleReady(s *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		slog.Info("logged in", "user", r.User.String())
	}
	if err := h.Apply(s); err != nil {
		slog.Warn("failed to update presence", "error", err)
	}
}

// Apply publishes the presence through updater.
func (h *PresenceHandler) Apply(updater StatusUpdater) error {
	return h.interactor.Execute(statusPublisher{updater: updater})
}

type statusPublisher struct {
	updater StatusUpdater
}

func (p statusPublisher) UpdatePresence(presence domain.Presence) error {
	data := discordgo.UpdateStatusData{Status: string(presence.Status)}
	if presence.Activity != "" {
		data.Activities = []*discordgo.Activity{
			{Name: presence.Activity, Type: discordgo.ActivityTypeGame},
		}
	}
	return p.updater.UpdateStatusComplex(data)
}
