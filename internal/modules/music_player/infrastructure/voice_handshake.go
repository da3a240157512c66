package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// voiceUpdate is a complete voice connection update for Lavalink.
type voiceUpdate struct {
	channelID *snowflake.ID
	sessionID string
	token     string
	endpoint  string
}

// voiceHandshake collects the two halves of a voice connection
// (VoiceStateUpdate and VoiceServerUpdate), which Discord may deliver in
// either order. Lavalink rejects partial voice state, so nothing is released
// until both halves are present. After that each new half is released
// together with the latest copy of the other one.
type voiceHandshake struct {
	mu sync.Mutex

	hasState  bool
	channelID *snowflake.ID
	sessionID string

	hasServer bool
	token     string
	endpoint  string

	ready     chan struct{}
	readyOnce sync.Once
}

func newVoiceHandshake() *voiceHandshake {
	return &voiceHandshake{ready: make(chan struct{})}
}

// setState records the voice state half. It returns the complete update
// once the server half has also arrived.
func (h *voiceHandshake) setState(channelID *snowflake.ID, sessionID string) (voiceUpdate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hasState = true
	h.channelID = channelID
	h.sessionID = sessionID
	return h.completeLocked()
}

// setServer records the voice server half. It returns the complete update
// once the state half has also arrived.
func (h *voiceHandshake) setServer(token, endpoint string) (voiceUpdate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hasServer = true
	h.token = token
	h.endpoint = endpoint
	return h.completeLocked()
}

func (h *voiceHandshake) completeLocked() (voiceUpdate, bool) {
	if !h.hasState || !h.hasServer {
		return voiceUpdate{}, false
	}

	update := voiceUpdate{
		channelID: h.channelID,
		sessionID: h.sessionID,
		token:     h.token,
		endpoint:  h.endpoint,
	}

	h.readyOnce.Do(func() { close(h.ready) })
	return update, true
}

// Ready is closed the first time both halves have arrived.
func (h *voiceHandshake) Ready() <-chan struct{} {
	return h.ready
}
