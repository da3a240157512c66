package application

import "github.com/sglre6355/sgrmusic/internal/modules/general/domain"

// PresenceUpdater publishes the bot presence.
type PresenceUpdater interface {
	UpdatePresence(presence domain.Presence) error
}

// PresenceInteractor applies the configured presence.
type PresenceInteractor struct {
	presence domain.Presence
}

// NewPresenceInteractor validates the configured presence.
func NewPresenceInteractor(status, activity string) (*PresenceInteractor, error) {
	presence, err := domain.NewPresence(status, activity)
	if err != nil {
		return nil, err
	}
	return &PresenceInteractor{presence: presence}, nil
}

// Presence returns the configured presence.
func (p *PresenceInteractor) Presence() domain.Presence {
	return p.presence
}

// Execute publishes the configured presence.
func (p *PresenceInteractor) Execute(updater PresenceUpdater) error {
	return updater.UpdatePresence(p.presence)
}
