package catalog

import (
	"path/filepath"
	"testing"

	"github.com/roach88/latepath/internal/compiler"
)

// createTestCatalog creates a new on-disk catalog for testing.
func createTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// createTestLayout creates a layout with minimal required fields.
func createTestLayout(name string) *compiler.Layout {
	return &compiler.Layout{
		Name: name,
		Base: &compiler.Part{Param: "root"},
		Parts: []compiler.Part{
			{Literal: "data"},
			{Param: "dataset"},
		},
	}
}
