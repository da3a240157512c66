package domain

import "strings"

// Filter names an audio effect that can be applied to a player.
type Filter string

const (
	FilterBassBoost Filter = "bassboost"
	FilterNightcore Filter = "nightcore"
	FilterVaporwave Filter = "vaporwave"
	FilterEightD    Filter = "8d"
	FilterClear     Filter = "clear"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterBassBoost, FilterNightcore, FilterVaporwave, FilterEightD, FilterClear}

const (
	EqualizerBands   = 15
	MaxBassBoost     = 5
	DefaultBassBoost = 2

	bassBoostBands    = 3
	bassBoostGainStep = 0.2

	NightcoreRate = 1.5

	VaporwaveSpeed = 0.8
	VaporwavePitch = 0.9
	VaporwaveRate  = 1.0

	EightDRotationHz = 0.2
)

// ParseFilter parses a filter name case-insensitively.
func ParseFilter(name string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Filters {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// ValidBassBoost reports whether level is an accepted bass boost level.
func ValidBassBoost(level int) bool {
	return level >= 0 && level <= MaxBassBoost
}

// Timescale holds playback speed, pitch and rate multipliers.
type Timescale struct {
	Speed float64
	Pitch float64
	Rate  float64
}

// FilterSet is the set of effects active on a player.
// Nightcore and vaporwave both drive the timescale and exclude each other.
type FilterSet struct {
	BassBoost int // 0 disables
	Nightcore bool
	Vaporwave bool
	EightD    bool
}

// IsZero reports whether no effect is active.
func (f FilterSet) IsZero() bool {
	return f == FilterSet{}
}

// WithBassBoost returns a copy with the bass boost level set.
func (f FilterSet) WithBassBoost(level int) FilterSet {
	f.BassBoost = max(0, min(MaxBassBoost, level))
	return f
}

// ToggleNightcore returns a copy with nightcore flipped.
func (f FilterSet) ToggleNightcore() FilterSet {
	f.Nightcore = !f.Nightcore
	if f.Nightcore {
		f.Vaporwave = false
	}
	return f
}

// ToggleVaporwave returns a copy with vaporwave flipped.
func (f FilterSet) ToggleVaporwave() FilterSet {
	f.Vaporwave = !f.Vaporwave
	if f.Vaporwave {
		f.Nightcore = false
	}
	return f
}

// ToggleEightD returns a copy with the 8D rotation flipped.
func (f FilterSet) ToggleEightD() FilterSet {
	f.EightD = !f.EightD
	return f
}

// EqualizerGains returns the gain of each equalizer band, or nil when the
// bass boost is disabled.
func (f FilterSet) EqualizerGains() []float64 {
	if f.BassBoost <= 0 {
		return nil
	}
	gains := make([]float64, EqualizerBands)
	for i := 0; i < bassBoostBands; i++ {
		gains[i] = float64(f.BassBoost) * bassBoostGainStep
	}
	return gains
}

// Timescale returns the timescale effect, or nil when none is active.
func (f FilterSet) Timescale() *Timescale {
	switch {
	case f.Nightcore:
		return &Timescale{Speed: 1.0, Pitch: 1.0, Rate: NightcoreRate}
	case f.Vaporwave:
		return &Timescale{Speed: VaporwaveSpeed, Pitch: VaporwavePitch, Rate: VaporwaveRate}
	default:
		return nil
	}
}

// RotationHz returns the 8D rotation frequency, or zero when disabled.
func (f FilterSet) RotationHz() float64 {
	if f.EightD {
		return EightDRotationHz
	}
	return 0
}
