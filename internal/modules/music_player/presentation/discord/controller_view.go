package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// MessageEditor edits posted channel messages.
type MessageEditor interface {
	ChannelMessageEditComplex(
		m *discordgo.MessageEdit,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// MessageView is a controller bound to a posted channel message.
type MessageView struct {
	editor    MessageEditor
	channelID snowflake.ID
	messageID snowflake.ID
	style     ports.ControllerStyle
}

var _ ports.ControllerView = (*MessageView)(nil)

// Render redraws the controls, and the status embed for rich controllers.
func (v *MessageView) Render(ctx context.Context, state domain.PlaybackState) error {
	components := Controls(state)
	edit := v.edit()
	edit.Components = &components
	if v.style == ports.ControllerRich {
		embeds := []*discordgo.MessageEmbed{StatusEmbed(state)}
		edit.Embeds = &embeds
	}

	_, err := v.editor.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return err
}

// Clear strips the buttons and leaves the rest of the message untouched.
func (v *MessageView) Clear(ctx context.Context) error {
	edit := v.edit()
	edit.Components = &[]discordgo.MessageComponent{}

	_, err := v.editor.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return err
}

func (v *MessageView) edit() *discordgo.MessageEdit {
	return &discordgo.MessageEdit{
		ID:      v.messageID.String(),
		Channel: v.channelID.String(),
	}
}

// MessageViewFactory creates MessageViews for a Discord session.
type MessageViewFactory struct {
	editor MessageEditor
}

var _ ports.ControllerViewFactory = (*MessageViewFactory)(nil)

// NewMessageViewFactory creates a new MessageViewFactory.
func NewMessageViewFactory(editor MessageEditor) *MessageViewFactory {
	return &MessageViewFactory{editor: editor}
}

// NewView binds a view to the given message.
func (f *MessageViewFactory) NewView(
	channelID, messageID snowflake.ID,
	style ports.ControllerStyle,
) ports.ControllerView {
	return &MessageView{
		editor:    f.editor,
		channelID: channelID,
		messageID: messageID,
		style:     style,
	}
}
