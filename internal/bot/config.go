package bot

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	// ClientID is the application ID used to register slash commands.
	// The gateway user ID is used when empty.
	ClientID string `env:"CLIENT_ID"`

	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
	LogLevel      string `env:"LOG_LEVEL"      envDefault:"info"`

	PresenceStatus   string `env:"PRESENCE_STATUS"   envDefault:"dnd"`
	PresenceActivity string `env:"PRESENCE_ACTIVITY" envDefault:"music | !help"`
}

// LoadConfig loads configuration from environment variables, reading a .env
// file in the working directory first if one exists.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.CommandPrefix) == "" {
		return nil, errors.New("COMMAND_PREFIX must not be blank")
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// loadDotEnv loads variables from path without overriding ones already set.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
