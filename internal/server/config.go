package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// Config is the runtime configuration of a Server
type Config struct {
	Address         string
	Rooms           []string
	StartingCredits int
	RoundTimeout    time.Duration // 0 leaves rounds unbounded
	Seed            int64         // 0 picks a time based seed
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Address:         ":8080",
		Rooms:           append([]string(nil), game.DefaultRooms...),
		StartingCredits: game.DefaultStartingCredits,
	}
}

// ServerConfig represents the complete HCL configuration file
type ServerConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Game   *GameSettings   `hcl:"game,block"`
	Rooms  []RoomConfig    `hcl:"room,block"`
}

// ServerSettings contains process-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains table rules
type GameSettings struct {
	StartingCredits int    `hcl:"starting_credits,optional"`
	RoundTimeout    string `hcl:"round_timeout,optional"`
	Seed            int64  `hcl:"seed,optional"`
}

// RoomConfig seeds a room at startup
type RoomConfig struct {
	Name string `hcl:"name,label"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseServerConfig(filename, src)
}

// ParseServerConfig decodes HCL source
func ParseServerConfig(filename string, src []byte) (*ServerConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *ServerConfig) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.StartingCredits == 0 {
		c.Game.StartingCredits = game.DefaultStartingCredits
	}

	if len(c.Rooms) == 0 {
		for _, name := range game.DefaultRooms {
			c.Rooms = append(c.Rooms, RoomConfig{Name: name})
		}
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Game.StartingCredits <= 0 {
		return fmt.Errorf("starting credits must be positive")
	}
	if _, err := c.roundTimeout(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, room := range c.Rooms {
		if room.Name == "" {
			return fmt.Errorf("room name must not be empty")
		}
		if seen[room.Name] {
			return fmt.Errorf("room %q configured twice", room.Name)
		}
		seen[room.Name] = true
	}

	return nil
}

func (c *ServerConfig) roundTimeout() (time.Duration, error) {
	if c.Game.RoundTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Game.RoundTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid round_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("round_timeout must not be negative")
	}
	return d, nil
}

// Runtime converts the file configuration into a server Config.
// Call Validate first.
func (c *ServerConfig) Runtime() Config {
	timeout, _ := c.roundTimeout()
	rooms := make([]string, 0, len(c.Rooms))
	for _, room := range c.Rooms {
		rooms = append(rooms, room.Name)
	}
	return Config{
		Address:         c.Server.Address,
		Rooms:           rooms,
		StartingCredits: c.Game.StartingCredits,
		RoundTimeout:    timeout,
		Seed:            c.Game.Seed,
	}
}
