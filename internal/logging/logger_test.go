package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pokemart.log")
	logger, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug("catalog loaded")
	logger.Info("cart saved")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "catalog loaded", entry["message"])
	require.Equal(t, "DEBUG", entry["severity"])
	require.Contains(t, entry, "timestamp")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pokemart.log")
	logger, err := New("loud", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(b), "hidden")
	require.Contains(t, string(b), "shown")
}

func TestOrNop(t *testing.T) {
	t.Parallel()
	require.NotNil(t, OrNop(nil))
}
