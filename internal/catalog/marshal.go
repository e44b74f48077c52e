package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/latepath/internal/expr"
)

// marshalBindings serializes bindings to canonical JSON per RFC 8785 so
// the stored text is deterministic and hashable.
func marshalBindings(b expr.Bindings) (string, error) {
	if b == nil {
		b = expr.Bindings{}
	}
	data, err := expr.MarshalCanonical(b)
	if err != nil {
		return "", fmt.Errorf("marshal bindings: %w", err)
	}
	return string(data), nil
}

// unmarshalBindings parses a stored bindings column back into typed
// binding values via Bindings.UnmarshalJSON, which rejects anything
// outside the sealed value family.
func unmarshalBindings(data string) (expr.Bindings, error) {
	var bindings expr.Bindings
	if err := json.Unmarshal([]byte(data), &bindings); err != nil {
		return nil, fmt.Errorf("unmarshal bindings: %w", err)
	}
	return bindings, nil
}
