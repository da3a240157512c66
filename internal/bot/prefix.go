package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Per-user prefix command throttle.
const (
	commandRate  rate.Limit = 1
	commandBurst            = 3
)

// PrefixRouter dispatches prefix commands from guild text messages.
type PrefixRouter struct {
	prefix   string
	handlers map[string]MessageHandler

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewPrefixRouter creates a router for commands starting with prefix.
func NewPrefixRouter(prefix string) *PrefixRouter {
	return &PrefixRouter{
		prefix:   prefix,
		handlers: make(map[string]MessageHandler),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Add registers a command under its name and aliases. Names are matched
// case-insensitively.
func (r *PrefixRouter) Add(cmd MessageCommand) error {
	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range names {
		name = strings.ToLower(name)
		if _, ok := r.handlers[name]; ok {
			return fmt.Errorf("duplicate prefix command %q", name)
		}
		r.handlers[name] = cmd.Handler
	}
	return nil
}

// Len returns the number of registered names, aliases included.
func (r *PrefixRouter) Len() int {
	return len(r.handlers)
}

// parse splits content into a command name and its arguments.
// It returns false if content does not start with the prefix.
func (r *PrefixRouter) parse(content string) (string, []string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(content), r.prefix)
	if !ok {
		return "", nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || rest[0] == ' ' {
		return "", nil, false
	}

	return strings.ToLower(fields[0]), fields[1:], true
}

// allow reports whether the user may run another command now.
func (r *PrefixRouter) allow(userID string) bool {
	r.mu.Lock()
	limiter, ok := r.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(commandRate, commandBurst)
		r.limiters[userID] = limiter
	}
	r.mu.Unlock()

	return limiter.Allow()
}

// dispatch runs the handler for m if it is a known command.
// It returns false if the message was ignored.
func (r *PrefixRouter) dispatch(s *discordgo.Session, m *discordgo.MessageCreate, replier Replier) bool {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return false
	}

	name, args, ok := r.parse(m.Content)
	if !ok {
		return false
	}

	handler, ok := r.handlers[name]
	if !ok {
		return false
	}

	if !r.allow(m.Author.ID) {
		slog.Debug("dropped throttled prefix command", "command", name, "user", m.Author.ID)
		return false
	}

	if err := handler(s, m, args, replier); err != nil {
		slog.Error("failed to handle prefix command", "command", name, "error", err)
		replyWithEmbed(replier, "Error", "An error occurred while processing your command.", colorRed)
	}

	return true
}

// HandleMessage is the discordgo event handler for MessageCreate events.
func (r *PrefixRouter) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	r.dispatch(s, m, NewDiscordReplier(s, m.Message))
}

// replyWithEmbed sends an embed reply to a prefix command.
func replyWithEmbed(r Replier, title, description string, color int) {
	_, err := r.Reply(&discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: description,
				Color:       color,
			},
		},
	})
	if err != nil {
		slog.Error("failed to send embed reply", "error", err)
	}
}
