package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

const (
	// DefaultTimeout is how long a controller accepts button presses.
	DefaultTimeout = 5 * time.Minute

	requestBuffer  = 16
	cleanupTimeout = 10 * time.Second
)

// Errors returned when a session does not accept a request.
var (
	ErrSessionExpired = errors.New("controller session has expired")
	ErrSessionBusy    = errors.New("controller session is busy")
)

// ActionRequest is a button press routed to a session.
type ActionRequest struct {
	Action  domain.ControllerAction
	UserID  snowflake.ID
	Replier ports.EphemeralReplier
}

// State is the lifecycle state of a session.
type State int

const (
	StateActive State = iota
	StateExpired
)

func (s State) String() string {
	if s == StateExpired {
		return "expired"
	}
	return "active"
}

// SessionConfig binds a session to one message, one user and one player.
type SessionConfig struct {
	GuildID   snowflake.ID
	OwnerID   snowflake.ID
	MessageID snowflake.ID
	Player    ports.Player
	Players   ports.PlayerRegistry
	View      ports.ControllerView
	Timeout   time.Duration // DefaultTimeout if zero
}

// Session is an interactive controller bound to a single message. Requests
// are handled one at a time on the goroutine running Run.
type Session struct {
	guildID   snowflake.ID
	ownerID   snowflake.ID
	messageID snowflake.ID
	player    ports.Player
	players   ports.PlayerRegistry
	view      ports.ControllerView
	timeout   time.Duration

	// loop mirrors the last loop mode written through this session.
	// Only the Run goroutine touches it after construction.
	loop domain.LoopMode

	requests chan ActionRequest
	quit     chan struct{}
	done     chan struct{}
	quitOnce sync.Once

	mu          sync.Mutex
	state       State
	clearOnExit bool
}

// NewSession creates an active session. Call Run to start processing.
func NewSession(cfg SessionConfig) *Session {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	loop := domain.LoopModeOff
	if cfg.Player != nil {
		loop = cfg.Player.Loop().Normalize()
	}

	return &Session{
		guildID:     cfg.GuildID,
		ownerID:     cfg.OwnerID,
		messageID:   cfg.MessageID,
		player:      cfg.Player,
		players:     cfg.Players,
		view:        cfg.View,
		timeout:     timeout,
		loop:        loop,
		requests:    make(chan ActionRequest, requestBuffer),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		state:       StateActive,
		clearOnExit: true,
	}
}

// MessageID returns the id of the bound message.
func (s *Session) MessageID() snowflake.ID {
	return s.messageID
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the session has expired and cleaned up.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Submit queues a request. It returns ErrSessionExpired once the session has
// ended and ErrSessionBusy while its request buffer is full.
func (s *Session) Submit(req ActionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateExpired {
		return ErrSessionExpired
	}

	select {
	case s.requests <- req:
		return nil
	default:
		return ErrSessionBusy
	}
}

// Expire ends the session early. The bound message loses its buttons.
func (s *Session) Expire() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// abandon ends the session without touching the bound message, for when
// another session has taken the message over.
func (s *Session) abandon() {
	s.mu.Lock()
	s.clearOnExit = false
	s.mu.Unlock()
	s.Expire()
}

// Run processes requests until the timeout elapses, the player disappears,
// Expire is called or ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	reason := s.loopRequests(ctx, timer.C)
	s.finish(ctx, reason)
}

func (s *Session) loopRequests(ctx context.Context, timeout <-chan time.Time) string {
	for {
		select {
		case <-ctx.Done():
			return "shutdown"
		case <-s.quit:
			return "expired"
		case <-timeout:
			return "timeout"
		case req := <-s.requests:
			if !s.handle(ctx, req) {
				return "player gone"
			}
		}
	}
}

// handle processes one request and reports whether the session stays active.
func (s *Session) handle(ctx context.Context, req ActionRequest) bool {
	logger := slog.With("guild", s.guildID, "message", s.messageID, "user", req.UserID, "action", req.Action)

	if req.UserID != s.ownerID {
		s.reply(logger, req, ReplyNotOwner)
		return true
	}

	current, ok := s.players.Player(s.guildID)
	if !ok || current != s.player {
		s.reply(logger, req, ReplyPlayerGone)
		return false
	}

	confirmation, err := s.apply(ctx, req.Action)
	if err != nil {
		logger.Warn("controller action failed", "error", err)
		s.reply(logger, req, ReplyActionFailed)
		return true
	}

	if err := s.view.Render(ctx, s.snapshot()); err != nil {
		logger.Warn("failed to update controller message", "error", err)
	}

	s.reply(logger, req, confirmation)
	return true
}

func (s *Session) snapshot() domain.PlaybackState {
	state := ReadSnapshot(s.player)
	state.Loop = s.loop
	return state
}

func (s *Session) reply(logger *slog.Logger, req ActionRequest, content string) {
	if req.Replier == nil {
		return
	}
	if err := req.Replier.ReplyEphemeral(content); err != nil {
		logger.Warn("failed to reply to controller interaction", "error", err)
	}
}

// finish marks the session expired, answers anything still queued and strips
// the buttons from the bound message.
func (s *Session) finish(ctx context.Context, reason string) {
	s.mu.Lock()
	s.state = StateExpired
	strip := s.clearOnExit
	s.mu.Unlock()

	logger := slog.With("guild", s.guildID, "message", s.messageID)
	logger.Debug("controller session ended", "reason", reason)

	for drained := false; !drained; {
		select {
		case req := <-s.requests:
			s.reply(logger, req, ReplyExpired)
		default:
			drained = true
		}
	}

	if !strip {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := s.view.Clear(cleanupCtx); err != nil {
		logger.Warn("could not remove controller buttons", "error", err)
	}
}
