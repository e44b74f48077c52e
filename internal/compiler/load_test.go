package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayoutFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirBasic(t *testing.T) {
	dir := t.TempDir()
	writeLayoutFile(t, dir, "layouts.cue", `package layouts

layout: chunks: {
	description: "sharded dataset chunks"
	base: {param: "root"}
	parts: [
		{literal: "data"},
		{param: "dataset"},
	]
}

layout: config: {
	base: {param: "root"}
	parts: [{literal: "config"}, {literal: "settings.yaml"}]
}
`)

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.FileCount)
	assert.Len(t, result.Layouts, 2)
	require.NotNil(t, result.Layout("chunks"))
	assert.Equal(t, "sharded dataset chunks", result.Layout("chunks").Description)
	assert.Nil(t, result.Layout("missing"))
}

func TestLoadDirNotFound(t *testing.T) {
	_, errs := LoadDir(filepath.Join(t.TempDir(), "nope"), LoadModeFailFast)

	require.Len(t, errs, 1)
	var loadErr *LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadDirNoCUEFiles(t *testing.T) {
	dir := t.TempDir()
	writeLayoutFile(t, dir, "readme.txt", "not a layout")

	_, errs := LoadDir(dir, LoadModeFailFast)

	require.Len(t, errs, 1)
	var loadErr *LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, ErrCodeNoFiles, loadErr.Code)
}

func TestLoadDirCollectsCompileErrors(t *testing.T) {
	dir := t.TempDir()
	writeLayoutFile(t, dir, "layouts.cue", `package layouts

layout: good: {
	parts: [{literal: "x"}]
}

layout: bad: {
	parts: [{param: ""}]
}
`)

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.NotNil(t, result)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, ErrCodeBuild, loadErr.Code)
	assert.Contains(t, loadErr.Message, "layout.bad")

	assert.Len(t, result.Layouts, 1)
	assert.NotNil(t, result.Layout("good"))
}

func TestLoadDirNoLayouts(t *testing.T) {
	dir := t.TempDir()
	writeLayoutFile(t, dir, "other.cue", `package layouts

other: {x: 1}`)

	_, errs := LoadDir(dir, LoadModeCollectAll)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no layouts")
}

func TestFindCUEFilesRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeLayoutFile(t, dir, "a.cue", "layout: a: {parts: [{literal: \"x\"}]}")
	writeLayoutFile(t, sub, "b.cue", "layout: b: {parts: [{literal: \"y\"}]}")
	writeLayoutFile(t, dir, "ignore.txt", "")

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
