package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/latepath/internal/compiler"
	"github.com/roach88/latepath/internal/expr"
)

// AssertionContext carries what assertions need beyond the trace itself.
type AssertionContext struct {
	Layouts map[string]*compiler.Layout
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		switch event.Type {
		case "resolution":
			fmt.Fprintf(&buf, "  [%d] %s -> %s\n", i+1, event.Layout, event.Path)
		case "error":
			fmt.Fprintf(&buf, "  [%d] %s !! %s\n", i+1, event.Layout, event.ErrorCode)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs all assertions and returns failure messages.
// All assertions are evaluated; failures do not short-circuit.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string

	for i, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertParams:
			err = assertParams(assertion, actx)
		case AssertResolved:
			err = assertResolved(result.Trace, assertion)
		case AssertStepCount:
			err = assertStepCount(result.Trace, assertion)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return failures
}

// assertParams checks a layout's required parameter names against the
// expected sorted list.
func assertParams(assertion Assertion, actx *AssertionContext) error {
	layout, ok := actx.Layouts[assertion.Layout]
	if !ok {
		return &AssertionError{
			Type:     AssertParams,
			Expected: fmt.Sprintf("layout %q loaded", assertion.Layout),
			Actual:   "layout not found",
		}
	}

	e, err := layout.Build()
	if err != nil {
		return fmt.Errorf("build layout %q: %w", assertion.Layout, err)
	}

	got := expr.RequiredParams(e).Names()
	if !slices.Equal(got, assertion.Params) {
		return &AssertionError{
			Type:     AssertParams,
			Expected: fmt.Sprintf("params %v", assertion.Params),
			Actual:   fmt.Sprintf("params %v", got),
		}
	}
	return nil
}

// assertResolved checks that a path appears among the trace's resolutions.
func assertResolved(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Type == "resolution" && event.Path == assertion.Path {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertResolved,
		Expected: fmt.Sprintf("path %q in trace", assertion.Path),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertStepCount checks the total number of trace events.
func assertStepCount(trace []TraceEvent, assertion Assertion) error {
	if len(trace) != assertion.Count {
		return &AssertionError{
			Type:     AssertStepCount,
			Expected: fmt.Sprintf("%d steps", assertion.Count),
			Actual:   fmt.Sprintf("%d steps", len(trace)),
			Trace:    trace,
		}
	}
	return nil
}
