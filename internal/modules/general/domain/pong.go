package domain

import "strings"

const (
	// PongTrigger is the emoji that triggers a pong response.
	PongTrigger  = "🏓"
	pongResponse = "Pong 🏓"
)

// PongResult represents the result of evaluating a message for pong.
type PongResult struct {
	ShouldRespond bool
	Response      string
}

// NewPongResult evaluates content and returns whether to respond.
func NewPongResult(content string) *PongResult {
	if !strings.Contains(content, PongTrigger) {
		return &PongResult{}
	}
	return &PongResult{
		ShouldRespond: true,
		Response:      pongResponse,
	}
}
