package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func TestParseServerConfig(t *testing.T) {
	src := []byte(`
server {
  address   = ":9090"
  log_level = "debug"
}

game {
  starting_credits = 500
  round_timeout    = "90s"
  seed             = 42
}

room "High Rollers" {}
room "Penny Slots" {}
`)

	cfg, err := ParseServerConfig("blackjack.hcl", src)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Config{
		Address:         ":9090",
		Rooms:           []string{"High Rollers", "Penny Slots"},
		StartingCredits: 500,
		RoundTimeout:    90 * time.Second,
		Seed:            42,
	}, cfg.Runtime())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestParseServerConfigDefaults(t *testing.T) {
	cfg, err := ParseServerConfig("empty.hcl", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	rt := cfg.Runtime()
	assert.Equal(t, DefaultConfig(), rt)
	assert.Equal(t, game.DefaultRooms, rt.Rooms)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Zero(t, rt.RoundTimeout)
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
}

func TestLoadServerConfigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte("game {\n  starting_credits = 250\n}\n"), 0o600))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Runtime().StartingCredits)
	assert.Equal(t, ":8080", cfg.Runtime().Address)
}

func TestParseServerConfigSyntaxError(t *testing.T) {
	_, err := ParseServerConfig("bad.hcl", []byte(`server {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")

	_, err = ParseServerConfig("bad.hcl", []byte(`server { port = 1 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
		errMsg string
	}{
		{"log level", func(c *ServerConfig) { c.Server.LogLevel = "loud" }, "invalid log level"},
		{"credits", func(c *ServerConfig) { c.Game.StartingCredits = -5 }, "starting credits must be positive"},
		{"timeout syntax", func(c *ServerConfig) { c.Game.RoundTimeout = "soon" }, "invalid round_timeout"},
		{"timeout negative", func(c *ServerConfig) { c.Game.RoundTimeout = "-1m" }, "must not be negative"},
		{"empty room", func(c *ServerConfig) { c.Rooms = append(c.Rooms, RoomConfig{}) }, "room name must not be empty"},
		{"duplicate room", func(c *ServerConfig) { c.Rooms = append(c.Rooms, RoomConfig{Name: "Room 1"}) }, "configured twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
