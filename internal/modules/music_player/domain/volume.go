package domain

import (
	"strconv"
	"strings"
)

const (
	MinVolume     = 0
	MaxVolume     = 100 // highest settable volume
	DefaultVolume = 100
	VolumeStep    = 10

	// VolumeDisplayCeiling is the scale of the rich status volume meter.
	// It is deliberately above MaxVolume.
	VolumeDisplayCeiling = 150
)

// ClampVolume bounds a volume to [MinVolume, MaxVolume].
func ClampVolume(v int) int {
	return max(MinVolume, min(MaxVolume, v))
}

// AdjustVolume applies a signed delta to the current volume and clamps the result.
// A negative current volume means unset and is treated as DefaultVolume.
func AdjustVolume(current, delta int) int {
	if current < 0 {
		current = DefaultVolume
	}
	return ClampVolume(current + delta)
}

// ParseVolume parses user input such as "55" or "55%" and clamps it.
// Returns false if the input has no leading integer.
func ParseVolume(input string) (int, bool) {
	input = strings.TrimSuffix(strings.TrimSpace(input), "%")

	end := 0
	if end < len(input) && (input[end] == '-' || input[end] == '+') {
		end++
	}
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}

	v, err := strconv.Atoi(input[:end])
	if err != nil {
		return 0, false
	}
	return ClampVolume(v), true
}
