package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// ControllerStyle selects how a controller message is rendered.
type ControllerStyle int

const (
	// ControllerCompact renders buttons under an existing reply.
	ControllerCompact ControllerStyle = iota
	// ControllerRich renders the status embed together with the buttons.
	ControllerRich
)

// ControllerView is the chat message a controller session is bound to.
type ControllerView interface {
	// Render redraws the message for the given state.
	Render(ctx context.Context, state domain.PlaybackState) error
	// Clear removes all interactive components from the message.
	Clear(ctx context.Context) error
}

// ControllerViewFactory binds views to posted messages.
type ControllerViewFactory interface {
	NewView(channelID, messageID snowflake.ID, style ControllerStyle) ControllerView
}

// EphemeralReplier answers a single button press privately.
type EphemeralReplier interface {
	ReplyEphemeral(content string) error
}
