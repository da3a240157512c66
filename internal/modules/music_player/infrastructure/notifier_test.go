package infrastructure

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

type fakeMessageSender struct {
	embeds  []*discordgo.MessageEmbed
	deleted []string
	sendErr error
}

func (f *fakeMessageSender) ChannelMessageSendEmbed(
	channelID string,
	embed *discordgo.MessageEmbed,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{ID: "555", ChannelID: channelID}, nil
}

func (f *fakeMessageSender) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	return nil
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNotifier_SendNowPlaying(t *testing.T) {
	sender := &fakeMessageSender{}
	notifier := NewNotifier(sender)

	msg, err := notifier.SendNowPlaying(testTextChannelID, &ports.NowPlayingInfo{
		Identifier:         "abc",
		Title:              "Song",
		Author:             "Artist",
		Duration:           "3:00",
		URI:                "https://soundcloud.com/a/b",
		ArtworkURL:         "https://i1.sndcdn.com/art.jpg",
		SourceName:         "soundcloud",
		RequesterName:      "alice",
		RequesterAvatarURL: "https://cdn.discordapp.com/a.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.NowPlayingMessage{ChannelID: testTextChannelID, MessageID: 555}
	if msg != want {
		t.Errorf("expected %+v, got %+v", want, msg)
	}

	wantEmbed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: "Now Playing on SoundCloud"},
		Title:  "Song",
		URL:    "https://soundcloud.com/a/b",
		Color:  0xff5500,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎤 Author", Value: "Artist", Inline: true},
			{Name: "⏱ Duration", Value: "3:00", Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Requested by alice",
			IconURL: "https://cdn.discordapp.com/a.png",
		},
		Image: &discordgo.MessageEmbedImage{URL: "https://i1.sndcdn.com/art.jpg"},
	}
	if diff := cmp.Diff(wantEmbed, sender.embeds[0]); diff != "" {
		t.Errorf("embed mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifier_SendNowPlayingStream(t *testing.T) {
	sender := &fakeMessageSender{}
	notifier := NewNotifier(sender)

	_, err := notifier.SendNowPlaying(testTextChannelID, &ports.NowPlayingInfo{
		Title:    "Radio",
		Author:   "Station",
		Duration: "LIVE",
		IsStream: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embed := sender.embeds[0]
	if len(embed.Fields) != 1 {
		t.Errorf("expected no duration field for streams, got %d fields", len(embed.Fields))
	}
	if embed.Footer != nil {
		t.Error("expected no footer without a requester")
	}
	if embed.Image != nil {
		t.Error("expected no image without artwork")
	}
}

func TestNotifier_SendNowPlayingError(t *testing.T) {
	notifier := NewNotifier(&fakeMessageSender{sendErr: errors.New("missing access")})

	if _, err := notifier.SendNowPlaying(testTextChannelID, &ports.NowPlayingInfo{Title: "Song"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNotifier_DeleteAndError(t *testing.T) {
	sender := &fakeMessageSender{}
	notifier := NewNotifier(sender)

	if err := notifier.DeleteMessage(domain.NowPlayingMessage{ChannelID: 3, MessageID: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.deleted) != 1 || sender.deleted[0] != "3/9" {
		t.Errorf("unexpected deletes %v", sender.deleted)
	}

	if err := notifier.SendError(testTextChannelID, "boom"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &discordgo.MessageEmbed{Title: "❌ Error", Description: "boom", Color: colorError}
	if diff := cmp.Diff(want, sender.embeds[0]); diff != "" {
		t.Errorf("embed mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifier_YouTubeThumbnailIsCached(t *testing.T) {
	var mu sync.Mutex
	var requests []string

	notifier := NewNotifier(&fakeMessageSender{})
	notifier.httpClient.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		requests = append(requests, r.URL.String())
		mu.Unlock()

		status := http.StatusNotFound
		if strings.HasSuffix(r.URL.Path, "/sddefault.jpg") {
			status = http.StatusOK
		}
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}, nil
	})

	const want = "https://img.youtube.com/vi/vid/sddefault.jpg"
	for range 2 {
		if got := notifier.thumbnail(domain.TrackSourceYouTube, "vid", "fallback"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}

	if len(requests) != 2 {
		t.Errorf("expected 2 requests for the first lookup only, got %v", requests)
	}
}

func TestNotifier_TwitchThumbnailFallback(t *testing.T) {
	notifier := NewNotifier(&fakeMessageSender{})
	notifier.httpClient.Transport = roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("offline")
	})

	const artwork = "https://static-cdn.jtvnw.net/previews-ttv/live_user_x-440x248.jpg"
	if got := notifier.thumbnail(domain.TrackSourceTwitch, "x", artwork); got != artwork {
		t.Errorf("expected fallback artwork, got %s", got)
	}
}
