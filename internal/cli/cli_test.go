package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lazypower/tastequest/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against an isolated database.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	configPath = ""
	historyLimit = 20

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("TASTEQUEST_STORAGE_PATH", filepath.Join(t.TempDir(), "tq.db"))
	t.Setenv("TASTEQUEST_LOGGING_LEVEL", "error")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tastequest dev"), out)
}

func TestDeckCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "deck")
	require.NoError(t, err)
	assert.Contains(t, out, "McDonald's")
	assert.Contains(t, out, "MATCH")

	out, err = run(t, "deck", "--json")
	require.NoError(t, err)
	var cards []engine.Card
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	assert.Len(t, cards, 5)
}

func TestDecidePersistsAcrossInvocations(t *testing.T) {
	isolate(t)

	out, err := run(t, "decide", "1", "like")
	require.NoError(t, err)
	assert.Contains(t, out, "energy: 99.0")

	out, err = run(t, "decide", "2", "skip")
	require.NoError(t, err)
	assert.Contains(t, out, "energy: 98.5  decisions: 2")

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "decisions: 2")
	assert.Contains(t, out, "favorites: 1")

	out, err = run(t, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Fast Food (60)")

	out, err = run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "skip")
	assert.Contains(t, out, "like")
}

func TestDecideCommandErrors(t *testing.T) {
	isolate(t)
	_, err := run(t, "decide", "1", "superlike")
	assert.ErrorIs(t, err, engine.ErrInvalidDecision)

	_, err = run(t, "decide", "404", "like")
	assert.ErrorIs(t, err, engine.ErrUnknownItem)
}

func TestUnlockAndResetCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "unlock", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "already unlocked")

	_, err = run(t, "decide", "3", "wishlist")
	require.NoError(t, err)

	out, err = run(t, "reset", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "profile reset")
	assert.Contains(t, out, "stats reset")

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "decisions: 0")

	_, err = run(t, "reset", "everything")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	isolate(t)
	_, err := run(t, "decide", "1", "like")
	require.NoError(t, err)

	out, err := run(t, "history", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "like")

	_, err = run(t, "history", "--limit=-1")
	assert.ErrorContains(t, err, "--limit must be at least 1")

	_, err = run(t, "history", "-n", "0")
	assert.Error(t, err)
}

func TestMapCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "map")
	require.NoError(t, err)
	assert.Contains(t, out, "unlocked 5/5")
	assert.Contains(t, out, "treasure")
}

func TestBadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("TASTEQUEST_STORAGE_DRIVER", "mongo")
	_, err := run(t, "stats")
	assert.Error(t, err)
}
