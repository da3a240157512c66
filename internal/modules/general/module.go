package general

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrmusic/internal/bot"
	"github.com/sglre6355/sgrmusic/internal/modules/general/application"
	"github.com/sglre6355/sgrmusic/internal/modules/general/presentation"
)

func init() {
	bot.Register(&GeneralModule{})
}

var _ bot.MessageCommandModule = (*GeneralModule)(nil)

// GeneralModule provides the ping command and the bot presence.
type GeneralModule struct {
	pingHandler     *presentation.PingHandler
	pongHandler     *presentation.PongHandler
	presenceHandler *presentation.PresenceHandler
}

// Name returns the module name.
func (m *GeneralModule) Name() string {
	return "general"
}

// Commands returns the slash commands for this module.
func (m *GeneralModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Replies with Pong!",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *GeneralModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"ping": m.pingHandler.Handle,
	}
}

// MessageCommands returns the prefix commands for this module.
func (m *GeneralModule) MessageCommands() []bot.MessageCommand {
	return []bot.MessageCommand{
		{Name: "ping", Handler: m.pingHandler.HandleMessage},
	}
}

// EventHandlers returns the event handlers for this module.
func (m *GeneralModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.pongHandler.HandleMessage,
		m.presenceHandler.HandleReady,
	}
}

// Init initializes the module and applies the presence to the open session.
func (m *GeneralModule) Init(deps bot.ModuleDependencies) error {
	status, activity := "dnd", ""
	if deps.Config != nil {
		status, activity = deps.Config.PresenceStatus, deps.Config.PresenceActivity
	}

	presence, err := application.NewPresenceInteractor(status, activity)
	if err != nil {
		return err
	}

	m.pingHandler = presentation.NewPingHandler()
	m.pongHandler = presentation.NewPongHandler()
	m.presenceHandler = presentation.NewPresenceHandler(presence)

	// The Ready event of the first connection fires before handlers are added
	if deps.Session != nil {
		if err := m.presenceHandler.Apply(deps.Session); err != nil {
			slog.Warn("failed to update presence", "error", err)
		}
	}
	return nil
}

// Shutdown cleans up module resources.
func (m *GeneralModule) Shutdown() error {
	return nil
}
