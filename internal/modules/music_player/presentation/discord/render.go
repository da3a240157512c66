package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Embed colors.
const (
	colorSuccess    = 0x57f287
	colorError      = 0xed4245
	colorController = 0x3498db
	colorInfo       = domain.DefaultEmbedColor
)

const (
	controllerTitle = "🎵 Music Controller"
	botFooter       = "🎵 Music Bot"
	nothingPlaying  = "Nothing playing"
)

// Controls renders the two button rows of a controller.
func Controls(state domain.PlaybackState) []discordgo.MessageComponent {
	playPause := "▶ Play"
	if state.Playing() {
		playPause = "⏸ Pause"
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    playPause,
					Style:    discordgo.PrimaryButton,
					CustomID: domain.ActionPlayPause.CustomID(),
				},
				discordgo.Button{
					Label:    "⏭ Skip",
					Style:    discordgo.SuccessButton,
					CustomID: domain.ActionSkip.CustomID(),
				},
				discordgo.Button{
					Label:    "⏹ Stop",
					Style:    discordgo.DangerButton,
					CustomID: domain.ActionStop.CustomID(),
				},
				discordgo.Button{
					Label:    "🔁 Loop: " + state.Loop.Normalize().String(),
					Style:    discordgo.SecondaryButton,
					CustomID: domain.ActionLoop.CustomID(),
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🔉 -10",
					Style:    discordgo.SecondaryButton,
					CustomID: domain.ActionVolumeDown.CustomID(),
				},
				discordgo.Button{
					Label:    "🔊 +10",
					Style:    discordgo.SecondaryButton,
					CustomID: domain.ActionVolumeUp.CustomID(),
				},
			},
		},
	}
}

// StatusEmbed renders the rich controller status. It carries no timestamp,
// so equal states render equal embeds.
func StatusEmbed(state domain.PlaybackState) *discordgo.MessageEmbed {
	nowPlaying := nothingPlaying
	if state.Track != nil {
		nowPlaying = fmt.Sprintf("**%s**\n*by %s*", state.Track.Title, state.Track.Author)
	}

	var status string
	switch state.Status {
	case domain.StatusPlaying:
		status = "🟢 Playing"
	case domain.StatusPaused:
		status = "🟡 Paused"
	default:
		status = "🔴 Stopped"
	}

	embed := &discordgo.MessageEmbed{
		Title: controllerTitle,
		Color: colorController,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎵 Now Playing", Value: nowPlaying},
			{
				Name:   "⏱️ Progress",
				Value:  formatClock(state.Position) + " / " + formatClock(state.Duration()),
				Inline: true,
			},
			{Name: "🔊 Volume", Value: controllerVolumeDisplay(state.Volume), Inline: true},
			{Name: "🔁 Repeat", Value: state.Loop.Normalize().Title(), Inline: true},
			{Name: "📋 Queue", Value: fmt.Sprintf("%d track(s)", state.QueueSize), Inline: true},
			{Name: "▶️ Status", Value: status, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: botFooter},
	}

	if state.Track != nil && state.Track.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: state.Track.ArtworkURL}
	}

	return embed
}

func errorEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Error",
		Description: message,
		Color:       colorError,
	}
}

func infoEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorInfo,
	}
}

func thumbnail(url string) *discordgo.MessageEmbedThumbnail {
	if url == "" {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: url}
}

// addedToQueueEmbed announces a single queued track.
func addedToQueueEmbed(track *domain.Track) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       track.Title,
		URL:         track.URI,
		Description: "🎶 Added to Queue",
		Color:       colorSuccess,
		Thumbnail:   thumbnail(track.ArtworkURL),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⏱ Duration", Value: track.FormattedDuration(), Inline: true},
			{Name: "🎤 Author", Value: track.Author, Inline: true},
		},
	}
}

// playlistLoadedEmbed announces a queued playlist.
func playlistLoadedEmbed(name string, tracks []*domain.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "✅ Success",
		Description: fmt.Sprintf("📀 Loaded **%d** tracks from `%s`", len(tracks), name),
		Color:       colorSuccess,
	}
	if len(tracks) > 0 {
		embed.Thumbnail = thumbnail(tracks[0].ArtworkURL)
	}
	return embed
}

// queueEmbed lists the current track and the first page of upcoming tracks.
func queueEmbed(output *usecases.QueueListOutput) *discordgo.MessageEmbed {
	var sb strings.Builder

	if current := output.CurrentTrack; current != nil {
		fmt.Fprintf(&sb, "🎶 **Now Playing:**\n%s `%s`\n\n",
			trackLink(current.Title, current.URI), formatTrackLength(current))
	}

	if len(output.Tracks) > 0 {
		sb.WriteString("**Up Next:**\n")
		for i, track := range output.Tracks {
			fmt.Fprintf(&sb, "`%d.` %s `%s`\n", i+1, trackLink(track.Title, track.URI), formatTrackLength(track))
		}
		if output.Remaining > 0 {
			fmt.Fprintf(&sb, "\n...and %d more track(s)", output.Remaining)
		}
	} else {
		sb.WriteString("*No upcoming tracks*")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Current Queue",
		Description: sb.String(),
		Color:       colorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d track(s) • Total duration: %s",
				output.TotalTracks, formatTotalDuration(output.TotalDuration)),
		},
	}
	if output.CurrentTrack != nil {
		embed.Thumbnail = thumbnail(output.CurrentTrack.ArtworkURL)
	}
	return embed
}

func currentVolumeEmbed(volume int) *discordgo.MessageEmbed {
	return infoEmbed("🔊 Current Volume", "Current volume:\n"+volumeDisplay(volume))
}

func volumeUpdatedEmbed(volume int) *discordgo.MessageEmbed {
	return infoEmbed(volumeEmoji(volume)+" Volume Updated", "Volume set to:\n"+volumeDisplay(volume))
}

func loopUpdatedEmbed(previous, current domain.LoopMode) *discordgo.MessageEmbed {
	return infoEmbed("🔁 Loop Mode Updated",
		fmt.Sprintf("Loop mode changed from **%s** ➝ **%s**", previous, current))
}

func filterListEmbed() *discordgo.MessageEmbed {
	return infoEmbed("🎛️ Available Filters", strings.Join([]string{
		fmt.Sprintf("`%s <level>` - boost bass (0–%d)", domain.FilterBassBoost, domain.MaxBassBoost),
		fmt.Sprintf("`%s` - enable/disable nightcore", domain.FilterNightcore),
		fmt.Sprintf("`%s` - enable/disable vaporwave", domain.FilterVaporwave),
		fmt.Sprintf("`%s` - enable/disable 8D rotation", domain.FilterEightD),
		fmt.Sprintf("`%s` - reset all filters", domain.FilterClear),
	}, "\n"))
}

func filterAppliedEmbed(output *usecases.ApplyFilterOutput) *discordgo.MessageEmbed {
	state := func(on bool) string {
		if on {
			return "**enabled**"
		}
		return "**disabled**"
	}

	var description string
	switch output.Filter {
	case domain.FilterBassBoost:
		description = fmt.Sprintf("Bassboost set to **%d**", output.Filters.BassBoost)
	case domain.FilterNightcore:
		description = "Nightcore " + state(output.Filters.Nightcore)
		if output.Filters.Nightcore {
			description += fmt.Sprintf(" (rate %.1f)", domain.NightcoreRate)
		}
	case domain.FilterVaporwave:
		description = "Vaporwave " + state(output.Filters.Vaporwave)
	case domain.FilterEightD:
		description = "8D effect " + state(output.Filters.EightD)
	case domain.FilterClear:
		return infoEmbed("🎶 Filters Cleared", "All filters have been reset.")
	}

	return infoEmbed("🎶 Filter Applied", description)
}

// helpEmbed lists the prefix commands.
func helpEmbed(prefix string) *discordgo.MessageEmbed {
	lines := []string{
		"`%splay <song>` - Play a song",
		"`%spause` - Pause/Resume playback",
		"`%sskip` - Skip current song",
		"`%sstop` - Stop and disconnect",
		"`%squeue` - Show queue",
		"`%svolume [0-100]` - Show or set the volume",
		"`%sloop [off|track|queue]` - Set or cycle the loop mode",
		"`%sfilter [name] [level]` - Apply an audio filter",
		"`%scontroller` - Open the music controller",
		"`%shelp` - Show this message",
	}
	for i, line := range lines {
		lines[i] = fmt.Sprintf(line, prefix)
	}

	return &discordgo.MessageEmbed{
		Title:       "📖 Help Menu",
		Description: strings.Join(lines, "\n"),
		Color:       colorController,
		Footer:      &discordgo.MessageEmbedFooter{Text: botFooter},
	}
}
