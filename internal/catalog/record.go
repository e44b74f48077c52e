package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/latepath/internal/expr"
)

// Domain prefix for content-addressed resolution identity.
// Version suffix enables future algorithm migration.
const DomainResolution = "latepath/resolution/v1"

// Resolution is the provenance record of one performed resolution: which
// layout, with which bindings, produced which path, and when in logical
// time.
type Resolution struct {
	ID           string        `json:"id"`
	SessionToken string        `json:"session_token"`
	Layout       string        `json:"layout"`
	Bindings     expr.Bindings `json:"bindings"`
	Path         string        `json:"path"`
	Seq          int64         `json:"seq"`
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ResolutionID computes the content-addressed ID for a resolution.
// The ID is stable across restarts given the same inputs: the same layout,
// bindings, path, and seq always hash to the same ID. Session tokens are
// excluded so the same logical resolution keeps its identity across runs.
func ResolutionID(layout string, bindings expr.Bindings, path string, seq int64) (string, error) {
	obj := map[string]any{
		"layout":   layout,
		"bindings": bindings,
		"path":     path,
		"seq":      seq,
	}

	canonical, err := expr.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ResolutionID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainResolution, canonical), nil
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time. This is helpful for debugging and trace
// visualization.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined session tokens for testing.
//
// This enables deterministic test execution and golden trace comparison.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics if all tokens have been consumed. This is a fail-fast approach to
// catch test misconfiguration.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
