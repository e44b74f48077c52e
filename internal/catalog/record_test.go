package catalog

import (
	"testing"

	"github.com/roach88/latepath/internal/expr"
)

func TestResolutionID_Deterministic(t *testing.T) {
	bindings := expr.Bindings{
		"root": expr.NewString("/mnt"),
		"idx":  expr.NewInt(7),
	}

	id1, err := ResolutionID("chunks", bindings, "/mnt/chunk_0007", 1)
	if err != nil {
		t.Fatalf("ResolutionID() failed: %v", err)
	}
	id2, err := ResolutionID("chunks", bindings, "/mnt/chunk_0007", 1)
	if err != nil {
		t.Fatalf("ResolutionID() failed: %v", err)
	}

	if id1 != id2 {
		t.Errorf("same inputs produced different IDs: %q vs %q", id1, id2)
	}
	if len(id1) != 64 {
		t.Errorf("ID length = %d, expected 64 hex chars", len(id1))
	}
}

func TestResolutionID_SensitiveToInputs(t *testing.T) {
	bindings := expr.Bindings{"root": expr.NewString("/mnt")}

	base, err := ResolutionID("chunks", bindings, "/mnt/a", 1)
	if err != nil {
		t.Fatalf("ResolutionID() failed: %v", err)
	}

	variants := []struct {
		name     string
		layout   string
		bindings expr.Bindings
		path     string
		seq      int64
	}{
		{"different layout", "config", bindings, "/mnt/a", 1},
		{"different bindings", "chunks", expr.Bindings{"root": expr.NewString("/x")}, "/mnt/a", 1},
		{"different path", "chunks", bindings, "/mnt/b", 1},
		{"different seq", "chunks", bindings, "/mnt/a", 2},
	}

	for _, v := range variants {
		id, err := ResolutionID(v.layout, v.bindings, v.path, v.seq)
		if err != nil {
			t.Fatalf("ResolutionID(%s) failed: %v", v.name, err)
		}
		if id == base {
			t.Errorf("%s: ID collision with base", v.name)
		}
	}
}

func TestHashWithDomain_SeparatesDomains(t *testing.T) {
	data := []byte(`{"a":1}`)

	h1 := hashWithDomain("latepath/resolution/v1", data)
	h2 := hashWithDomain("latepath/other/v1", data)

	if h1 == h2 {
		t.Error("different domains produced identical hashes")
	}
}

func TestUUIDv7Generator_ProducesUniqueTokens(t *testing.T) {
	gen := UUIDv7Generator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := gen.Generate()
		if len(token) != 36 {
			t.Fatalf("token %q has length %d, expected 36", token, len(token))
		}
		if seen[token] {
			t.Fatalf("duplicate token: %q", token)
		}
		seen[token] = true
	}
}

func TestFixedGenerator_ReturnsTokensInOrder(t *testing.T) {
	gen := NewFixedGenerator("t-1", "t-2")

	if got := gen.Generate(); got != "t-1" {
		t.Errorf("first Generate() = %q, expected t-1", got)
	}
	if got := gen.Generate(); got != "t-2" {
		t.Errorf("second Generate() = %q, expected t-2", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic when tokens exhausted")
		}
	}()
	gen.Generate()
}
