package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryByLayout(t *testing.T) {
	dbPath := populateCatalog(t)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"chunks", "--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "/mnt/storage/data/train/chunk_0007-of-0100.parquet")
	assert.NotContains(t, output, "settings.yaml")
	assert.Contains(t, output, "1 resolution(s)")
}

func TestHistoryBySession(t *testing.T) {
	dbPath := populateCatalog(t)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--session", "session-b"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result HistoryResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "session-b", result.SessionToken)
	require.Len(t, result.Resolutions, 1)
	assert.Equal(t, "config", result.Resolutions[0].Layout)
	assert.Equal(t, "/project/config/settings.yaml", result.Resolutions[0].Path)
}

func TestHistoryUnknownLayoutIsEmpty(t *testing.T) {
	dbPath := populateCatalog(t)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"ghost", "--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0 resolution(s)")
}

func TestHistoryRequiresLayoutOrSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--session")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
