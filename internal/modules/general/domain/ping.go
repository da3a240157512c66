package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	// Latency is the gateway heartbeat latency, zero when unknown.
	Latency   time.Duration
	Timestamp time.Time
}

// NewPingResult creates a new PingResult with the given latency.
func NewPingResult(latency time.Duration) *PingResult {
	return &PingResult{
		Latency:   latency,
		Timestamp: time.Now(),
	}
}

// Message returns the reply shown to the user.
func (r *PingResult) Message() string {
	if r.Latency <= 0 {
		return "Pong!"
	}
	return fmt.Sprintf("Pong! (%dms)", r.Latency.Milliseconds())
}
