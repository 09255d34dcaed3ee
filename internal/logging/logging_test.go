package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutPathDiscards(t *testing.T) {
	logger, closer, err := New("", "debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ucpcal.log")
	logger, closer, err := New(path, "warn")
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "cal.txt").Msg("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"file":"cal.txt"`)
	assert.Contains(t, string(data), `"message":"shown"`)
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ucpcal.log")
	logger, closer, err := New(path, "shouting")
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewUnwritablePath(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "missing", "ucpcal.log"), "info")
	assert.Error(t, err)
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)
	logger.Debug().Int("events", 3).Msg("loaded")
	assert.Contains(t, buf.String(), `"events":3`)
	assert.Contains(t, buf.String(), `"time":`)
}
