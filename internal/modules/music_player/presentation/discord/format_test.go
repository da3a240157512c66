package discord

import (
	"testing"
	"time"

	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59*time.Second + 900*time.Millisecond, "0:59"},
		{3*time.Minute + 5*time.Second, "3:05"},
		{75 * time.Minute, "75:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatClock(tt.d); got != tt.want {
				t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatTrackLength(t *testing.T) {
	tests := []struct {
		name  string
		track *domain.Track
		want  string
	}{
		{"known", &domain.Track{Duration: 185 * time.Second}, "3:05"},
		{"unknown", &domain.Track{}, "Unknown"},
		{"stream", &domain.Track{IsStream: true, Duration: time.Hour}, "LIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTrackLength(tt.track); got != tt.want {
				t.Errorf("formatTrackLength() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTotalDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "Unknown"},
		{59 * time.Second, "0m"},
		{42 * time.Minute, "42m"},
		{2*time.Hour + 5*time.Minute + 30*time.Second, "2h 5m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatTotalDuration(tt.d); got != tt.want {
				t.Errorf("formatTotalDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestControllerVolumeDisplay(t *testing.T) {
	tests := []struct {
		volume int
		want   string
	}{
		{0, "◯ **0%**\n⚫⚫⚫⚫⚫⚫⚫⚫"},
		{30, "◔ **30%**\n🟢⚫⚫⚫⚫⚫⚫⚫"},
		{60, "◑ **60%**\n🟢🟢🟢⚫⚫⚫⚫⚫"},
		{90, "◕ **90%**\n🟢🟢🟢🟢⚫⚫⚫⚫"},
		{100, "● **100%**\n🟢🟢🟢🟢🟢⚫⚫⚫"},
		{120, "● **120%**\n🟢🟢🟢🟢🟢🟢⚫⚫"},
		{140, "● **140%**\n🟢🟢🟢🟢🟢🟢🔴⚫"},
		{150, "● **150%**\n🟢🟢🟢🟢🟢🟢🔴🔴"},
		{200, "● **200%**\n🟢🟢🟢🟢🟢🟢🔴🔴"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := controllerVolumeDisplay(tt.volume); got != tt.want {
				t.Errorf("controllerVolumeDisplay(%d) = %q, want %q", tt.volume, got, tt.want)
			}
		})
	}
}

func TestVolumeDisplay(t *testing.T) {
	tests := []struct {
		volume int
		want   string
	}{
		{0, "◯ **0%**\n⚫⚫⚫⚫⚫⚫⚫⚫⚫⚫"},
		{24, "◯ **24%**\n🟢🟢⚫⚫⚫⚫⚫⚫⚫⚫"},
		{55, "◑ **55%**\n🟢🟢🟢🟢🟢⚫⚫⚫⚫⚫"},
		{100, "● **100%**\n🟢🟢🟢🟢🟢🟢🟢🟢🟢🟢"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := volumeDisplay(tt.volume); got != tt.want {
				t.Errorf("volumeDisplay(%d) = %q, want %q", tt.volume, got, tt.want)
			}
		})
	}
}

func TestVolumeEmoji(t *testing.T) {
	tests := []struct {
		volume int
		want   string
	}{
		{0, "🔇"},
		{30, "🔈"},
		{31, "🔉"},
		{70, "🔉"},
		{71, "🔊"},
	}

	for _, tt := range tests {
		if got := volumeEmoji(tt.volume); got != tt.want {
			t.Errorf("volumeEmoji(%d) = %q, want %q", tt.volume, got, tt.want)
		}
	}
}

func TestTrackLink(t *testing.T) {
	if got := trackLink("Song", "https://example.com"); got != "[Song](https://example.com)" {
		t.Errorf("unexpected link %q", got)
	}
	if got := trackLink("Song", ""); got != "**Song**" {
		t.Errorf("unexpected bold title %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept %q", got)
	}
	if got := truncate("ああああああ", 5); got != "ああ..." {
		t.Errorf("truncate() = %q, want %q", got, "ああ...")
	}
}
