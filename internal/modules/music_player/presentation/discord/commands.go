package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrmusic/internal/modules/music_player/domain"
)

// Commands returns all slash commands for the music player module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:         "play",
			Description:  "Play a track from URL or search",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "query",
					Description:  "URL or search term",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:         "pause",
			Description:  "Pause or resume playback",
			DMPermission: boolPtr(false),
		},
		{
			Name:         "skip",
			Description:  "Skip the current track",
			DMPermission: boolPtr(false),
		},
		{
			Name:         "stop",
			Description:  "Stop playback and disconnect",
			DMPermission: boolPtr(false),
		},
		{
			Name:         "queue",
			Description:  "Show the current music queue",
			DMPermission: boolPtr(false),
		},
		{
			Name:         "volume",
			Description:  "Show or set the volume",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "level",
					Description: "Volume to set (omit to show the current volume)",
					Required:    false,
					MinValue:    floatPtr(domain.MinVolume),
					MaxValue:    domain.MaxVolume,
				},
			},
		},
		{
			Name:         "loop",
			Description:  "Set the loop mode (or cycle through modes if no option provided)",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "Loop mode to set (omit to cycle through modes)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Off", Value: "off"},
						{Name: "Track", Value: "track"},
						{Name: "Queue", Value: "queue"},
					},
				},
			},
		},
		{
			Name:         "filter",
			Description:  "Apply or clear an audio filter",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "effect",
					Description: "Filter to apply",
					Required:    true,
					Choices:     filterChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "level",
					Description: "Bass boost level",
					Required:    false,
					MinValue:    floatPtr(0),
					MaxValue:    domain.MaxBassBoost,
				},
			},
		},
		{
			Name:         "controller",
			Description:  "Open the music controller",
			DMPermission: boolPtr(false),
		},
		{
			Name:        "help",
			Description: "List the music commands",
		},
	}
}

func filterChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := map[domain.Filter]string{
		domain.FilterBassBoost: "Bass boost",
		domain.FilterNightcore: "Nightcore",
		domain.FilterVaporwave: "Vaporwave",
		domain.FilterEightD:    "8D",
		domain.FilterClear:     "Clear",
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Filters))
	for _, filter := range domain.Filters {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  names[filter],
			Value: string(filter),
		})
	}
	return choices
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}
