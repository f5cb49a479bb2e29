package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/server"
)

func TestServerCmdOverridesConfig(t *testing.T) {
	seed := int64(99)
	timeout := 45 * time.Second
	cmd := &ServerCmd{
		Addr:            ":9999",
		LogLevel:        "debug",
		Seed:            &seed,
		StartingCredits: 200,
		RoundTimeout:    &timeout,
	}

	cfg := server.DefaultServerConfig()
	cmd.applyOverrides(cfg)
	require.NoError(t, cfg.Validate())

	rt := cfg.Runtime()
	assert.Equal(t, ":9999", rt.Address)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, int64(99), rt.Seed)
	assert.Equal(t, 200, rt.StartingCredits)
	assert.Equal(t, 45*time.Second, rt.RoundTimeout)
}

func TestServerCmdKeepsConfigWithoutFlags(t *testing.T) {
	cfg, err := server.ParseServerConfig("test.hcl", []byte(`
server {
  address = ":7000"
}
game {
  round_timeout = "2m"
}
`))
	require.NoError(t, err)

	(&ServerCmd{}).applyOverrides(cfg)
	rt := cfg.Runtime()
	assert.Equal(t, ":7000", rt.Address)
	assert.Equal(t, 2*time.Minute, rt.RoundTimeout)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}
