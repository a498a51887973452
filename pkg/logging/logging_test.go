package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-picker/pkg/config"
)

func TestNew_FileAppendsLogfmt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "picker.log")

	l, closeFn, err := New(config.LogConfig{Level: "debug", File: p})
	require.NoError(t, err)
	l.Debug("activated", "id", "a1")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=activated")
	assert.Contains(t, string(data), "id=a1")

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNew_LevelFilters(t *testing.T) {
	p := filepath.Join(t.TempDir(), "picker.log")

	l, closeFn, err := New(config.LogConfig{Level: "warn", File: p})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_EmptyFileDiscards(t *testing.T) {
	l, closeFn, err := New(config.LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
	assert.NoError(t, closeFn())
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}
