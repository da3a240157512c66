package music_player

import (
	"net"
	"strconv"
	"time"
)

// Config holds the music player module configuration.
type Config struct {
	LavalinkHost      string        `env:"LAVALINK_HOST"         envDefault:"localhost"`
	LavalinkPort      uint16        `env:"LAVALINK_PORT,required"`
	LavalinkPassword  string        `env:"LAVALINK_PASSWORD,notEmpty"`
	LavalinkSecure    bool          `env:"LAVALINK_SECURE"       envDefault:"false"`
	LavalinkNodeName  string        `env:"LAVALINK_NODE_NAME"    envDefault:"main"`
	ControllerTimeout time.Duration `env:"CONTROLLER_TIMEOUT"    envDefault:"5m"`
	// DefaultSearchSource is used for queries that are not links, e.g.
	// "youtube", "youtubemusic" or "soundcloud".
	DefaultSearchSource string `env:"DEFAULT_SEARCH_SOURCE" envDefault:"youtube"`
}

// Address returns the host:port of the Lavalink node.
func (c *Config) Address() string {
	return net.JoinHostPort(c.LavalinkHost, strconv.Itoa(int(c.LavalinkPort)))
}
