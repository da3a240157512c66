package application

import (
	"time"

	"github.com/sglre6355/sgrmusic/internal/modules/general/domain"
)

// PingInteractor handles the ping use case.
type PingInteractor struct{}

// NewPingInteractor creates a new PingInteractor.
func NewPingInteractor() *PingInteractor {
	return &PingInteractor{}
}

// Execute performs the ping operation for the measured gateway latency.
func (p *PingInteractor) Execute(latency time.Duration) *domain.PingResult {
	return domain.NewPingResult(latency)
}
