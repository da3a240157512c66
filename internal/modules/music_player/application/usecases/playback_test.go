package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

const (
	testGuildID        = snowflake.ID(1)
	testUserID         = snowflake.ID(2)
	testTextChannelID  = snowflake.ID(3)
	testVoiceChannelID = snowflake.ID(4)
)

func newTestPlaybackService() (*PlaybackService, *mockRegistry, *mockVoiceStateProvider) {
	registry := newMockRegistry()
	voiceState := newMockVoiceStateProvider()
	voice := NewVoiceChannelService(registry, voiceState)
	return NewPlaybackService(registry, voice), registry, voiceState
}

func TestPlaybackService_TogglePause(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*mockRegistry)
		wantErr    error
		wantPaused bool
	}{
		{
			name: "pauses a playing player",
			setup: func(m *mockRegistry) {
				p := m.add(newMockPlayer(testGuildID, testVoiceChannelID))
				p.current = mockTrack("1")
			},
			wantPaused: true,
		},
		{
			name: "resumes a paused player",
			setup: func(m *mockRegistry) {
				p := m.add(newMockPlayer(testGuildID, testVoiceChannelID))
				p.current = mockTrack("1")
				p.paused = true
			},
			wantPaused: false,
		},
		{
			name: "resumes a player without a track",
			setup: func(m *mockRegistry) {
				p := m.add(newMockPlayer(testGuildID, testVoiceChannelID))
				p.paused = true
			},
			wantPaused: false,
		},
		{
			name:    "no player",
			wantErr: ErrNoPlayer,
		},
		{
			name: "audio player error",
			setup: func(m *mockRegistry) {
				p := m.add(newMockPlayer(testGuildID, testVoiceChannelID))
				p.current = mockTrack("1")
				p.pauseErr = errors.New("pause failed")
			},
			wantErr: errors.New("pause failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, registry, _ := newTestPlaybackService()
			if tt.setup != nil {
				tt.setup(registry)
			}

			out, err := service.TogglePause(context.Background(), TogglePauseInput{GuildID: testGuildID})

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error() {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Paused != tt.wantPaused {
				t.Errorf("expected paused=%v, got %v", tt.wantPaused, out.Paused)
			}
			if got := registry.players[testGuildID].paused; got != tt.wantPaused {
				t.Errorf("expected player paused=%v, got %v", tt.wantPaused, got)
			}
		})
	}
}

func TestPlaybackService_Skip(t *testing.T) {
	t.Run("skips the current track", func(t *testing.T) {
		service, registry, _ := newTestPlaybackService()
		p := registry.add(newMockPlayer(testGuildID, testVoiceChannelID))
		p.current = mockTrack("1")
		p.upcoming = []*domain.Track{mockTrack("2")}

		out, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.SkippedTrack.Title != "Track 1" {
			t.Errorf("expected skipped Track 1, got %q", out.SkippedTrack.Title)
		}
		if p.skipCalls != 1 {
			t.Errorf("expected 1 skip call, got %d", p.skipCalls)
		}
	})

	t.Run("nothing playing", func(t *testing.T) {
		service, registry, _ := newTestPlaybackService()
		p := registry.add(newMockPlayer(testGuildID, testVoiceChannelID))

		_, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
		if !errors.Is(err, ErrNotPlaying) {
			t.Errorf("expected ErrNotPlaying, got %v", err)
		}
		if p.skipCalls != 0 {
			t.Error("expected no skip call")
		}
	})

	t.Run("no player", func(t *testing.T) {
		service, _, _ := newTestPlaybackService()

		_, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
		if !errors.Is(err, ErrNoPlayer) {
			t.Errorf("expected ErrNoPlayer, got %v", err)
		}
	})
}

func TestPlaybackService_SetLoopMode(t *testing.T) {
	tests := []struct {
		name         string
		initial      domain.LoopMode
		mode         string
		wantPrevious domain.LoopMode
		wantCurrent  domain.LoopMode
		wantErr      error
	}{
		{
			name:         "cycles from off",
			initial:      domain.LoopModeOff,
			wantPrevious: domain.LoopModeOff,
			wantCurrent:  domain.LoopModeTrack,
		},
		{
			name:         "cycles from queue",
			initial:      domain.LoopModeQueue,
			wantPrevious: domain.LoopModeQueue,
			wantCurrent:  domain.LoopModeOff,
		},
		{
			name:         "unknown mode is treated as off",
			initial:      domain.LoopMode(7),
			wantPrevious: domain.LoopModeOff,
			wantCurrent:  domain.LoopModeTrack,
		},
		{
			name:         "sets explicit mode",
			initial:      domain.LoopModeOff,
			mode:         "queue",
			wantPrevious: domain.LoopModeOff,
			wantCurrent:  domain.LoopModeQueue,
		},
		{
			name:    "invalid mode",
			mode:    "forever",
			wantErr: ErrInvalidLoopMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, registry, _ := newTestPlaybackService()
			p := registry.add(newMockPlayer(testGuildID, testVoiceChannelID))
			p.loop = tt.initial

			out, err := service.SetLoopMode(context.Background(), SetLoopModeInput{
				GuildID: testGuildID,
				Mode:    tt.mode,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if p.loop != tt.initial {
					t.Error("expected loop mode to be unchanged")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Previous != tt.wantPrevious || out.Current != tt.wantCurrent {
				t.Errorf("got %v -> %v, want %v -> %v", out.Previous, out.Current, tt.wantPrevious, tt.wantCurrent)
			}
			if p.loop != tt.wantCurrent {
				t.Errorf("expected player loop %v, got %v", tt.wantCurrent, p.loop)
			}
		})
	}
}

func TestPlaybackService_Volume(t *testing.T) {
	otherChannelID := snowflake.ID(99)

	tests := []struct {
		name        string
		level       string
		userChannel *snowflake.ID
		noPlayer    bool
		volume      int
		volumeErr   error
		wantErr     error
		wantVolume  int
		wantChanged bool
	}{
		{
			name:        "reads current volume",
			userChannel: ptr(testVoiceChannelID),
			volume:      40,
			wantVolume:  40,
		},
		{
			name:        "unset volume reads as default",
			userChannel: ptr(testVoiceChannelID),
			volume:      -1,
			wantVolume:  domain.DefaultVolume,
		},
		{
			name:        "sets percentage",
			level:       "55%",
			userChannel: ptr(testVoiceChannelID),
			volume:      100,
			wantVolume:  55,
			wantChanged: true,
		},
		{
			name:        "clamps high values",
			level:       "500",
			userChannel: ptr(testVoiceChannelID),
			volume:      100,
			wantVolume:  100,
			wantChanged: true,
		},
		{
			name:        "invalid number",
			level:       "loud",
			userChannel: ptr(testVoiceChannelID),
			wantErr:     ErrInvalidVolume,
		},
		{
			name:    "user not in voice",
			level:   "50",
			wantErr: ErrUserNotInVoice,
		},
		{
			name:        "no player",
			level:       "50",
			userChannel: ptr(testVoiceChannelID),
			noPlayer:    true,
			wantErr:     ErrNoPlayer,
		},
		{
			name:        "different channel",
			level:       "50",
			userChannel: ptr(otherChannelID),
			wantErr:     ErrDifferentVoiceChannel,
		},
		{
			name:        "audio player error",
			level:       "50",
			userChannel: ptr(testVoiceChannelID),
			volumeErr:   errors.New("node unavailable"),
			wantErr:     errors.New("node unavailable"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, registry, voiceState := newTestPlaybackService()
			if tt.userChannel != nil {
				voiceState.channels[testUserID] = *tt.userChannel
			}
			if !tt.noPlayer {
				p := registry.add(newMockPlayer(testGuildID, testVoiceChannelID))
				p.volume = tt.volume
				p.volumeErr = tt.volumeErr
			}

			out, err := service.Volume(context.Background(), VolumeInput{
				GuildID: testGuildID,
				UserID:  testUserID,
				Level:   tt.level,
			})

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) && !errors.Is(err, tt.volumeErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Volume != tt.wantVolume || out.Changed != tt.wantChanged {
				t.Errorf("got volume=%d changed=%v, want volume=%d changed=%v",
					out.Volume, out.Changed, tt.wantVolume, tt.wantChanged)
			}
		})
	}
}

func TestPlaybackService_ApplyFilter(t *testing.T) {
	tests := []struct {
		name        string
		initial     domain.FilterSet
		filter      string
		level       string
		wantErr     error
		wantFilters domain.FilterSet
	}{
		{
			name:        "bass boost default level",
			filter:      "bassboost",
			wantFilters: domain.FilterSet{BassBoost: domain.DefaultBassBoost},
		},
		{
			name:        "bass boost explicit level",
			filter:      "bassboost",
			level:       "5",
			wantFilters: domain.FilterSet{BassBoost: 5},
		},
		{
			name:    "bass boost out of range",
			filter:  "bassboost",
			level:   "6",
			wantErr: ErrInvalidBassBoost,
		},
		{
			name:    "bass boost not a number",
			filter:  "bassboost",
			level:   "max",
			wantErr: ErrInvalidBassBoost,
		},
		{
			name:        "nightcore toggles on",
			filter:      "nightcore",
			wantFilters: domain.FilterSet{Nightcore: true},
		},
		{
			name:        "vaporwave replaces nightcore",
			initial:     domain.FilterSet{Nightcore: true},
			filter:      "vaporwave",
			wantFilters: domain.FilterSet{Vaporwave: true},
		},
		{
			name:        "8d toggles off",
			initial:     domain.FilterSet{EightD: true, BassBoost: 1},
			filter:      "8d",
			wantFilters: domain.FilterSet{BassBoost: 1},
		},
		{
			name:        "clear resets everything",
			initial:     domain.FilterSet{EightD: true, BassBoost: 3, Nightcore: true},
			filter:      "clear",
			wantFilters: domain.FilterSet{},
		},
		{
			name:    "unknown filter",
			filter:  "reverb",
			wantErr: ErrUnknownFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, registry, _ := newTestPlaybackService()
			p := registry.add(newMockPlayer(testGuildID, testVoiceChannelID))
			p.filters = tt.initial

			out, err := service.ApplyFilter(context.Background(), ApplyFilterInput{
				GuildID: testGuildID,
				Filter:  tt.filter,
				Level:   tt.level,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				if p.filters != tt.initial {
					t.Error("expected filters to be unchanged")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Filters != tt.wantFilters {
				t.Errorf("expected filters %+v, got %+v", tt.wantFilters, out.Filters)
			}
			if p.filters != tt.wantFilters {
				t.Errorf("expected player filters %+v, got %+v", tt.wantFilters, p.filters)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
