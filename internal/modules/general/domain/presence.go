package domain

import (
	"fmt"
	"strings"
)

// Status is the online status shown next to the bot.
type Status string

const (
	StatusOnline    Status = "online"
	StatusIdle      Status = "idle"
	StatusDND       Status = "dnd"
	StatusInvisible Status = "invisible"
)

// ParseStatus converts a configured status name to a Status.
func ParseStatus(name string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(name))); s {
	case StatusOnline, StatusIdle, StatusDND, StatusInvisible:
		return s, nil
	default:
		return "", fmt.Errorf("unknown presence status %q", name)
	}
}

// Presence is the status and "Playing" activity of the bot.
type Presence struct {
	Status Status
	// Activity is omitted when empty.
	Activity string
}

// NewPresence validates the configured status and activity.
func NewPresence(status, activity string) (Presence, error) {
	s, err := ParseStatus(status)
	if err != nil {
		return Presence{}, err
	}
	return Presence{
		Status:   s,
		Activity: strings.TrimSpace(activity),
	}, nil
}
