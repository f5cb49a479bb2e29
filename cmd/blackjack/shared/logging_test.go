package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	logger, err := SetupLogger("warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	_, err = SetupLogger("chatty")
	assert.Error(t, err)
}

func TestSetupFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	logger, closeLog, err := SetupFileLogger(path)
	require.NoError(t, err)

	logger.Info("Connected", "room", "Room 1")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Connected")
	assert.Contains(t, string(data), "room=\"Room 1\"")
}
