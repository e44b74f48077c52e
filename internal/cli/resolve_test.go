package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/latepath/internal/expr"
)

func TestResolveText(t *testing.T) {
	layoutsDir := createTestLayouts(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewResolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		layoutsDir, "chunks",
		"--bind", "root=/mnt/storage",
		"--bind", "dataset=train",
		"--bind", "idx=7",
		"--bind", "total=100",
	})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "/mnt/storage/data/train/chunk_0007-of-0100.parquet\n", buf.String())
}

func TestResolveJSON(t *testing.T) {
	layoutsDir := createTestLayouts(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewResolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		layoutsDir, "config",
		"--bind", "root=/project",
	})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result ResolveResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "config", result.Layout)
	assert.Equal(t, "/project/config/settings.yaml", result.Path)
}

func TestResolveRebase(t *testing.T) {
	layoutsDir := createTestLayouts(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewResolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{layoutsDir, "config", "--rebase", "/tmp/test"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test/config/settings.yaml\n", buf.String())
}

func TestResolveMissingParams(t *testing.T) {
	layoutsDir := createTestLayouts(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewResolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{layoutsDir, "chunks", "--bind", "root=/mnt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Error [MISSING_PARAM]")
	// All missing parameters are reported, not just the first
	assert.Contains(t, buf.String(), "dataset")
	assert.Contains(t, buf.String(), "idx")
	assert.Contains(t, buf.String(), "total")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestResolveInvalidBindFlag(t *testing.T) {
	layoutsDir := createTestLayouts(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewResolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{layoutsDir, "chunks", "--bind", "no-equals-sign"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --bind flag")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestResolveRecordsToCatalog(t *testing.T) {
	layoutsDir := createTestLayouts(t)
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewResolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		layoutsDir, "config",
		"--bind", "root=/project",
		"--db", dbPath,
		"--session", "cli-session",
	})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result ResolveResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Len(t, result.ResolutionID, 64)
	assert.Equal(t, "cli-session", result.SessionToken)
	assert.Equal(t, int64(1), result.Seq)

	// The recorded resolution is visible through the history command
	histBuf := &bytes.Buffer{}
	histCmd := NewHistoryCommand(&RootOptions{Format: "text"})
	histCmd.SetOut(histBuf)
	histCmd.SetArgs([]string{"config", "--db", dbPath})

	require.NoError(t, histCmd.Execute())
	assert.Contains(t, histBuf.String(), "/project/config/settings.yaml")
	assert.Contains(t, histBuf.String(), "1 resolution(s)")
}

func TestParseBindings(t *testing.T) {
	bindings, err := parseBindings([]string{"root=/mnt", "idx=7", "name=a=b"})
	require.NoError(t, err)

	assert.Equal(t, expr.NewString("/mnt"), bindings["root"])
	assert.Equal(t, expr.NewInt(7), bindings["idx"])
	// Everything after the first '=' is the value
	assert.Equal(t, expr.NewString("a=b"), bindings["name"])

	_, err = parseBindings([]string{"=value"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")
}

func TestParseDecimal(t *testing.T) {
	n, ok := parseDecimal("0042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = parseDecimal("")
	assert.False(t, ok)

	_, ok = parseDecimal("-7")
	assert.False(t, ok)

	_, ok = parseDecimal("7b")
	assert.False(t, ok)
}
