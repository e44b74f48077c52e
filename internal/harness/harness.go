// Package harness provides a conformance testing framework for layout
// resolution.
//
// Scenarios are YAML files that name layout directories, a sequence of
// resolution steps, and assertions over the resulting trace. Each scenario
// runs against a fresh in-memory catalog with a fixed session token, so
// repeated runs produce byte-identical traces for golden comparison.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/latepath/internal/catalog"
	"github.com/roach88/latepath/internal/compiler"
	"github.com/roach88/latepath/internal/expr"
)

// DefaultSessionToken is used when a scenario does not fix its own token.
const DefaultSessionToken = "test-session-default"

// Harness is the scenario execution engine.
type Harness struct {
	catalog      *catalog.Catalog
	layouts      map[string]*compiler.Layout
	logger       *slog.Logger
	sessionToken string
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory catalog for isolation.
//
// Execution flow:
//  1. Create fresh in-memory catalog
//  2. Load and compile layouts from the scenario's layout directories
//  3. Execute steps, validating expect clauses and recording provenance
//  4. Evaluate assertions against the trace
//  5. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	cat, err := catalog.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory catalog: %w", err)
	}
	defer cat.Close()

	sessionToken := scenario.SessionToken
	if sessionToken == "" {
		sessionToken = DefaultSessionToken
	}

	h := &Harness{
		catalog:      cat,
		layouts:      make(map[string]*compiler.Layout),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
		sessionToken: sessionToken,
	}

	ctx := context.Background()

	// Load layout declarations
	for _, dir := range scenario.Layouts {
		loaded, errs := compiler.LoadDir(dir, compiler.LoadModeCollectAll)
		if len(errs) > 0 {
			return nil, fmt.Errorf("failed to load layouts from %s: %w", dir, errs[0])
		}
		for i := range loaded.Layouts {
			layout := loaded.Layouts[i]
			if _, exists := h.layouts[layout.Name]; exists {
				return nil, fmt.Errorf("duplicate layout %q across scenario layout dirs", layout.Name)
			}
			h.layouts[layout.Name] = &layout
			if err := cat.SaveLayout(ctx, &layout); err != nil {
				return nil, fmt.Errorf("failed to save layout %q: %w", layout.Name, err)
			}
		}
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("failed to execute step %d: %w", i, err)
		}
	}

	// Evaluate assertions against the result
	actx := &AssertionContext{Layouts: h.layouts}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep resolves one step's layout and validates its expect clause.
// The trace seq is the 1-based step number, so traces are deterministic
// regardless of how many resolutions reach the catalog.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) error {
	seq := int64(i + 1)

	layout, ok := h.layouts[step.Layout]
	if !ok {
		return fmt.Errorf("unknown layout %q", step.Layout)
	}

	bindings, err := convertBindings(step.Bindings)
	if err != nil {
		return fmt.Errorf("failed to convert bindings: %w", err)
	}

	path, resolveErr := h.resolve(layout, step, bindings)
	if resolveErr != nil {
		code := errorCode(resolveErr)
		result.AddErrorTrace(step.Layout, step.Bindings, code, seq)

		if step.ExpectError == "" {
			result.AddError(fmt.Sprintf("step %d: unexpected error [%s]: %v", i, code, resolveErr))
		} else if step.ExpectError != code {
			result.AddError(fmt.Sprintf("step %d: expected error %s, got %s", i, step.ExpectError, code))
		}

		h.logger.Info("step failed to resolve",
			"step", i,
			"layout", step.Layout,
			"error_code", code,
		)
		return nil
	}

	record, err := h.catalog.RecordResolution(ctx, h.sessionToken, step.Layout, bindings, path)
	if err != nil {
		return fmt.Errorf("failed to record resolution: %w", err)
	}

	result.AddResolutionTrace(step.Layout, step.Bindings, path, seq)

	if step.ExpectError != "" {
		result.AddError(fmt.Sprintf("step %d: expected error %s, resolved to %q", i, step.ExpectError, path))
	} else if path != step.Expect {
		result.AddError(fmt.Sprintf("step %d: resolved to %q, expected %q", i, path, step.Expect))
	}

	h.logger.Info("step resolved",
		"step", i,
		"layout", step.Layout,
		"path", path,
		"resolution_id", record.ID,
	)
	return nil
}

// resolve builds the step's expression, applying an optional rebase, and
// materializes it against the bindings.
func (h *Harness) resolve(layout *compiler.Layout, step Step, bindings expr.Bindings) (string, error) {
	if step.Rebase != "" {
		rp, err := layout.BuildRelative()
		if err != nil {
			return "", err
		}
		return rp.Rebase(expr.NewLiteral(step.Rebase)).Resolve(bindings)
	}

	e, err := layout.Build()
	if err != nil {
		return "", err
	}
	return expr.Resolve(e, bindings)
}

// errorCode extracts the structured error code, or "UNKNOWN".
func errorCode(err error) string {
	var ee *expr.Error
	if errors.As(err, &ee) {
		return string(ee.Code)
	}
	return "UNKNOWN"
}

// convertBindings converts YAML-parsed binding values to typed values.
// Strings and integers only: floats, bools, and nulls are rejected the same
// way the binding value family rejects them.
func convertBindings(raw map[string]interface{}) (expr.Bindings, error) {
	bindings := make(expr.Bindings, len(raw))
	for name, val := range raw {
		switch v := val.(type) {
		case string:
			bindings[name] = expr.NewString(v)
		case int:
			bindings[name] = expr.NewInt(int64(v))
		case int64:
			bindings[name] = expr.NewInt(v)
		case float64:
			// YAML may parse numbers as float64; accept exact integers only
			if v == float64(int64(v)) {
				bindings[name] = expr.NewInt(int64(v))
			} else {
				return nil, fmt.Errorf("binding %q: floats are forbidden: %v", name, v)
			}
		case nil:
			return nil, fmt.Errorf("binding %q: null values are forbidden", name)
		default:
			return nil, fmt.Errorf("binding %q: unsupported type %T", name, val)
		}
	}
	return bindings, nil
}
