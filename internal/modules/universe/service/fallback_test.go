package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWatchlist(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadWatchlistFile(t *testing.T) {
	path := writeWatchlist(t, "symbols:\n  - BTCUSDT\n  - ETHUSDT\n")

	syms, err := LoadWatchlistFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, syms)
}

func TestLoadWatchlistFileMissing(t *testing.T) {
	_, err := LoadWatchlistFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWatchlistFileEmpty(t *testing.T) {
	path := writeWatchlist(t, "symbols: []\n")

	_, err := LoadWatchlistFile(path)
	assert.Error(t, err)
}
