package bot

import "github.com/bwmarrin/discordgo"

// Replier answers a prefix command in the channel it was sent in.
type Replier interface {
	// Reply sends a message referencing the command message and returns it.
	Reply(msg *discordgo.MessageSend) (*discordgo.Message, error)
}

// DiscordReplier implements Replier using a live Discord session.
type DiscordReplier struct {
	session *discordgo.Session
	message *discordgo.Message
}

// NewDiscordReplier creates a new DiscordReplier for the given command message.
func NewDiscordReplier(s *discordgo.Session, m *discordgo.Message) *DiscordReplier {
	return &DiscordReplier{
		session: s,
		message: m,
	}
}

// Reply sends msg as a reply to the command message via Discord API.
func (r *DiscordReplier) Reply(msg *discordgo.MessageSend) (*discordgo.Message, error) {
	if msg.Reference == nil {
		msg.Reference = r.message.Reference()
	}
	return r.session.ChannelMessageSendComplex(r.message.ChannelID, msg)
}

// MockReplier is a test double for Replier.
type MockReplier struct {
	Messages []*discordgo.MessageSend
	// Message is returned by Reply.
	Message *discordgo.Message
	Err     error
}

// Reply records the message for testing.
func (m *MockReplier) Reply(msg *discordgo.MessageSend) (*discordgo.Message, error) {
	m.Messages = append(m.Messages, msg)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Message, nil
}

// Last returns the most recent reply, or nil.
func (m *MockReplier) Last() *discordgo.MessageSend {
	if len(m.Messages) == 0 {
		return nil
	}
	return m.Messages[len(m.Messages)-1]
}
