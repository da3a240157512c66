package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Volume meter layout.
const (
	controllerVolumeDots = 8
	// Dots after this index turn yellow, or red above the settable maximum.
	controllerVolumeGreenDots = 6
	volumeCommandDots         = 10
	volumeRingStep            = 25
)

const (
	dotGreen  = "🟢"
	dotYellow = "🟡"
	dotRed    = "🔴"
	dotEmpty  = "⚫"
)

var volumeRings = []string{"◯", "◔", "◑", "◕", "●"}

// formatClock renders d as m:ss. Minutes are not wrapped into hours.
func formatClock(d time.Duration) string {
	totalSeconds := max(0, int(d/time.Second))
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// formatTrackLength renders a queue entry duration, or "Unknown" if it has none.
func formatTrackLength(track *domain.Track) string {
	if track.IsStream {
		return "LIVE"
	}
	if track.Duration <= 0 {
		return "Unknown"
	}
	return formatClock(track.Duration)
}

// formatTotalDuration renders a queue total as "Xh Ym" or "Xm".
func formatTotalDuration(d time.Duration) string {
	if d <= 0 {
		return "Unknown"
	}

	totalMinutes := int(d / time.Minute)
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// controllerVolumeRing picks the ring glyph of the controller volume meter.
func controllerVolumeRing(volume int) string {
	switch {
	case volume <= 0:
		return volumeRings[0]
	case volume <= 30:
		return volumeRings[1]
	case volume <= 60:
		return volumeRings[2]
	case volume <= 90:
		return volumeRings[3]
	default:
		return volumeRings[4]
	}
}

// controllerVolumeDisplay renders the controller volume meter scaled against
// domain.VolumeDisplayCeiling.
func controllerVolumeDisplay(volume int) string {
	filled := min(volume*controllerVolumeDots/domain.VolumeDisplayCeiling, controllerVolumeDots)

	var dots strings.Builder
	for i := range controllerVolumeDots {
		switch {
		case i >= filled:
			dots.WriteString(dotEmpty)
		case i < controllerVolumeGreenDots:
			dots.WriteString(dotGreen)
		case volume <= domain.MaxVolume:
			dots.WriteString(dotYellow)
		default:
			dots.WriteString(dotRed)
		}
	}

	return fmt.Sprintf("%s **%d%%**\n%s", controllerVolumeRing(volume), volume, dots.String())
}

// volumeDisplay renders the volume command meter on the settable scale.
func volumeDisplay(volume int) string {
	ring := volumeRings[max(0, min(volume/volumeRingStep, len(volumeRings)-1))]
	filled := min(volume*volumeCommandDots/domain.MaxVolume, volumeCommandDots)

	return fmt.Sprintf("%s **%d%%**\n%s%s",
		ring,
		volume,
		strings.Repeat(dotGreen, max(0, filled)),
		strings.Repeat(dotEmpty, volumeCommandDots-max(0, filled)),
	)
}

// volumeEmoji picks the speaker glyph for a volume.
func volumeEmoji(volume int) string {
	switch {
	case volume <= 0:
		return "🔇"
	case volume <= 30:
		return "🔈"
	case volume <= 70:
		return "🔉"
	default:
		return "🔊"
	}
}

// trackLink renders a track title as a markdown link when it has a URI.
func trackLink(title, uri string) string {
	if uri == "" {
		return "**" + title + "**"
	}
	return fmt.Sprintf("[%s](%s)", title, uri)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
