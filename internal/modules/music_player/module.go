package music_player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/bot"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/controller"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/infrastructure"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/presentation/discord"
)

// connectTimeout bounds the initial connection to the Lavalink node.
const connectTimeout = 15 * time.Second

func init() {
	bot.Register(&MusicPlayerModule{})
}

// Compile-time interface checks.
var (
	_ bot.ConfigurableModule   = (*MusicPlayerModule)(nil)
	_ bot.MessageCommandModule = (*MusicPlayerModule)(nil)
)

// MusicPlayerModule provides music playback commands.
type MusicPlayerModule struct {
	config          *Config
	commandHandlers *discord.CommandHandlers
	eventHandlers   *discord.EventHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter
	eventBus        *infrastructure.PlaybackEventBus
	controllers     *controller.Manager
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// Commands returns the slash commands for this module.
func (m *MusicPlayerModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicPlayerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return m.commandHandlers.SlashHandlers()
}

// MessageCommands returns the prefix commands for this module.
func (m *MusicPlayerModule) MessageCommands() []bot.MessageCommand {
	return m.commandHandlers.MessageCommands()
}

// EventHandlers returns the event handlers for this module.
func (m *MusicPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(_ *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.lavalinkAdapter.OnVoiceServerUpdate(event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.lavalinkAdapter.OnVoiceStateUpdate(event)
			m.eventHandlers.HandleVoiceStateUpdate(s, event)
		},
		m.eventHandlers.HandleInteractionCreate,
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init connects to Lavalink and wires the module.
func (m *MusicPlayerModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil || deps.Session.State == nil || deps.Session.State.User == nil {
		return errors.New("music_player requires an open session")
	}

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return fmt.Errorf("invalid bot user ID: %w", err)
	}

	prefix := "!"
	if deps.Config != nil {
		prefix = deps.Config.CommandPrefix
	}

	// Notifications are delivered in order, off the Lavalink event goroutine
	userInfo := infrastructure.NewDiscordUserInfoProvider(deps.Session.State, deps.Session)
	notifications := usecases.NewNotificationService(
		infrastructure.NewNotifier(deps.Session),
		userInfo,
	)
	m.eventBus = infrastructure.NewPlaybackEventBus(
		notifications,
		infrastructure.DefaultEventBufferSize,
	)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	adapter, err := infrastructure.NewLavalinkAdapter(ctx, botID, deps.Session, infrastructure.LavalinkConfig{
		NodeName: m.config.LavalinkNodeName,
		Address:  m.config.Address(),
		Password: m.config.LavalinkPassword,
		Secure:   m.config.LavalinkSecure,
	}, m.eventBus)
	if err != nil {
		m.eventBus.Close()
		return err
	}
	m.lavalinkAdapter = adapter

	voiceState := infrastructure.NewVoiceStateProvider(deps.Session.State)
	trackLoader := usecases.NewTrackLoaderService(
		adapter,
		domain.ParseSearchSource(m.config.DefaultSearchSource),
	)
	voiceChannel := usecases.NewVoiceChannelService(adapter, voiceState)
	playback := usecases.NewPlaybackService(adapter, voiceChannel)
	queue := usecases.NewQueueService(voiceChannel, trackLoader)
	autocomplete := usecases.NewAutocompleteService(adapter, trackLoader)

	m.controllers = controller.NewManager(
		adapter,
		discord.NewMessageViewFactory(deps.Session),
		m.config.ControllerTimeout,
	)

	m.commandHandlers = discord.NewCommandHandlers(
		voiceChannel,
		playback,
		queue,
		adapter,
		m.controllers,
		prefix,
	)
	m.eventHandlers = discord.NewEventHandlers(
		botID,
		voiceChannel,
		discord.NewAutocompleteHandler(autocomplete),
		discord.NewComponentHandler(m.controllers),
	)

	slog.Info("music_player module initialized",
		"node", m.config.LavalinkNodeName,
		"search_source", m.config.DefaultSearchSource,
		"controller_timeout", m.config.ControllerTimeout,
	)

	return nil
}

// Shutdown stops the controllers, then disconnects from Lavalink and drains
// the pending notifications.
func (m *MusicPlayerModule) Shutdown() error {
	if m.controllers != nil {
		m.controllers.Close()
	}
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Close()
	}
	if m.eventBus != nil {
		m.eventBus.Close()
	}
	return nil
}
