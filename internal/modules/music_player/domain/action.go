package domain

import "strings"

// ControllerAction identifies a button of the music controller.
type ControllerAction string

const (
	ActionPlayPause  ControllerAction = "play_pause"
	ActionSkip       ControllerAction = "skip"
	ActionStop       ControllerAction = "stop"
	ActionLoop       ControllerAction = "loop"
	ActionVolumeDown ControllerAction = "vol_down"
	ActionVolumeUp   ControllerAction = "vol_up"
)

// ControllerCustomIDPrefix namespaces controller button custom ids.
const ControllerCustomIDPrefix = "music:"

// CustomID returns the component custom id of the action.
func (a ControllerAction) CustomID() string {
	return ControllerCustomIDPrefix + string(a)
}

// IsValid reports whether a is one of the known actions.
func (a ControllerAction) IsValid() bool {
	switch a {
	case ActionPlayPause, ActionSkip, ActionStop, ActionLoop, ActionVolumeDown, ActionVolumeUp:
		return true
	default:
		return false
	}
}

// ParseControllerCustomID extracts the action from a component custom id.
func ParseControllerCustomID(customID string) (ControllerAction, bool) {
	raw, ok := strings.CutPrefix(customID, ControllerCustomIDPrefix)
	if !ok {
		return "", false
	}
	action := ControllerAction(raw)
	return action, action.IsValid()
}
