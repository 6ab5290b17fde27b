package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aide/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// TestCommands runs one session against a fresh data directory. Commands
// share package-level flag state, so the steps run in order.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--dir", dir, "--non-interactive"}
	with := func(args ...string) []string {
		return append(append([]string(nil), args...), base...)
	}

	out, err := run(t, with("config", "set", "database_url", "postgres://a")...)
	require.NoError(t, err)
	assert.Contains(t, out, "database_url")

	out, err = run(t, with("config", "get", "DATABASE_URL")...)
	require.NoError(t, err)
	assert.Equal(t, "postgres://a\n", out)

	_, err = run(t, with("config", "get", "databse_url")...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = run(t, with("task", "create", "write_report")...)
	require.NoError(t, err)
	_, err = run(t, with("task", "priority", "write_report", "1")...)
	require.NoError(t, err)
	_, err = run(t, with("task", "priority", "write_report", "high")...)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	out, err = run(t, with("task", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "write_report")

	out, err = run(t, with("note", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "task_log")

	_, err = run(t, with("note", "add", "task_log", "shipped v1")...)
	require.NoError(t, err)
	out, err = run(t, with("search", "SHIPPED")...)
	require.NoError(t, err)
	assert.Contains(t, out, "shipped v1")
	out, err = run(t, with("search", "shpd")...)
	require.NoError(t, err)
	assert.Contains(t, out, "shipped v1")

	out, err = run(t, with("index", "suggest", "config", "databse_url")...)
	require.NoError(t, err)
	assert.Contains(t, out, "database_url")

	out, err = run(t, with("index", "stats")...)
	require.NoError(t, err)
	assert.Contains(t, out, "config")
	assert.Contains(t, out, "CACHED")

	// Last: --yes accepts the suggestion.
	out, err = run(t, with("config", "get", "databse_url", "--yes")...)
	require.NoError(t, err)
	assert.Equal(t, "postgres://a\n", out)
}
