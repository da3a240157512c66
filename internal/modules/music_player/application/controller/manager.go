package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
)

var (
	// ErrNoPlayer is returned when a controller is requested for a guild without a player.
	ErrNoPlayer = errors.New("no active player in this server")

	// ErrManagerClosed is returned by Start after Close.
	ErrManagerClosed = errors.New("controller manager is closed")
)

// StartInput describes the message a new controller is bound to.
type StartInput struct {
	GuildID   snowflake.ID
	OwnerID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Style     ports.ControllerStyle
}

// Manager starts controller sessions and routes button presses to them.
type Manager struct {
	players ports.PlayerRegistry
	views   ports.ControllerViewFactory
	timeout time.Duration

	registry *Registry
	ctx      context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewManager creates a Manager whose sessions expire after timeout.
func NewManager(
	players ports.PlayerRegistry,
	views ports.ControllerViewFactory,
	timeout time.Duration,
) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		players:  players,
		views:    views,
		timeout:  timeout,
		registry: NewRegistry(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start binds a new session to an already posted message.
func (m *Manager) Start(input StartInput) (*Session, error) {
	player, ok := m.players.Player(input.GuildID)
	if !ok {
		return nil, ErrNoPlayer
	}

	session := NewSession(SessionConfig{
		GuildID:   input.GuildID,
		OwnerID:   input.OwnerID,
		MessageID: input.MessageID,
		Player:    player,
		Players:   m.players,
		View:      m.views.NewView(input.ChannelID, input.MessageID, input.Style),
		Timeout:   m.timeout,
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}

	m.registry.Put(session)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		session.Run(m.ctx)
		m.registry.Remove(session)
	}()

	slog.Debug("controller session started",
		"guild", input.GuildID,
		"message", input.MessageID,
		"user", input.OwnerID,
	)

	return session, nil
}

// Dispatch routes a button press to the session bound to the message.
// A message without a session reports ErrSessionExpired.
func (m *Manager) Dispatch(messageID snowflake.ID, req ActionRequest) error {
	session, ok := m.registry.Get(messageID)
	if !ok {
		return ErrSessionExpired
	}
	return session.Submit(req)
}

// Close expires every session and waits for their cleanup. Later calls to
// Start fail with ErrManagerClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
}
