package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestLayouts writes a layouts.cue file with the chunks and config
// layouts used across harness tests, returning the directory.
func createTestLayouts(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "layouts")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := `package layouts

layout: chunks: {
	description: "sharded dataset chunks"
	base: {param: "root"}
	parts: [
		{literal: "data"},
		{param: "dataset"},
		{template: [
			{text: "chunk_"},
			{param: "idx", format: "04d"},
			{text: "-of-"},
			{param: "total", format: "04d"},
			{text: ".parquet"},
		]},
	]
}

layout: config: {
	description: "application settings file"
	base: {param: "root"}
	parts: [{literal: "config"}, {literal: "settings.yaml"}]
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layouts.cue"), []byte(content), 0o644))
	return dir
}
