package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios load layout declarations, resolve them against bindings, and
// assert on the resulting paths and trace.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Layouts lists directories of CUE layout files to compile and load.
	// Paths are relative to the scenario file location.
	Layouts []string `yaml:"layouts"`

	// Steps contains the resolutions to perform, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace.
	// Supported types: params, resolved, step_count
	Assertions []Assertion `yaml:"assertions"`

	// SessionToken is an optional fixed session token for deterministic
	// tests. If empty, defaults to "test-session-default" for golden file
	// comparison.
	SessionToken string `yaml:"session_token,omitempty"`
}

// Step resolves one layout against a set of bindings.
type Step struct {
	// Layout names the layout to resolve.
	Layout string `yaml:"layout"`

	// Bindings maps parameter names to values. Strings and integers only.
	Bindings map[string]interface{} `yaml:"bindings"`

	// Rebase optionally replaces the layout's base with a literal path
	// before resolving. The layout must declare a base.
	Rebase string `yaml:"rebase,omitempty"`

	// Expect is the exact path the resolution must produce.
	// Mutually exclusive with ExpectError.
	Expect string `yaml:"expect,omitempty"`

	// ExpectError is the error code the resolution must fail with
	// (e.g. "MISSING_PARAM"). Mutually exclusive with Expect.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the execution trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "params": Check a layout's required parameter names
	// - "resolved": Check a path appears in the trace
	// - "step_count": Check the number of executed steps
	Type string `yaml:"type"`

	// Layout is the layout name (used by params).
	Layout string `yaml:"layout,omitempty"`

	// Params are the expected parameter names in sorted order (used by params).
	Params []string `yaml:"params,omitempty"`

	// Path is the expected resolved path (used by resolved).
	Path string `yaml:"path,omitempty"`

	// Count is the expected number of steps (used by step_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertParams    = "params"
	AssertResolved  = "resolved"
	AssertStepCount = "step_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving layout directories relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve layout dirs relative to base path BEFORE validation
	for i, dir := range scenario.Layouts {
		if !filepath.IsAbs(dir) && basePath != "" {
			scenario.Layouts[i] = filepath.Join(basePath, dir)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Layouts) == 0 {
		return fmt.Errorf("layouts list is required and must be non-empty")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	// Validate layout directories exist
	for _, dir := range s.Layouts {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("layout directory not found: %s", dir)
		}
	}

	// Validate steps
	for i, step := range s.Steps {
		if step.Layout == "" {
			return fmt.Errorf("steps[%d]: layout is required", i)
		}
		if step.Bindings == nil {
			return fmt.Errorf("steps[%d]: bindings is required (use empty map if no bindings)", i)
		}
		if step.Expect == "" && step.ExpectError == "" {
			return fmt.Errorf("steps[%d]: expect or expect_error is required", i)
		}
		if step.Expect != "" && step.ExpectError != "" {
			return fmt.Errorf("steps[%d]: expect and expect_error are mutually exclusive", i)
		}
	}

	// Validate assertions
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertParams:
		if a.Layout == "" {
			return fmt.Errorf("assertions[%d]: layout is required for params", index)
		}
		if len(a.Params) == 0 {
			return fmt.Errorf("assertions[%d]: params list is required for params", index)
		}
	case AssertResolved:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for resolved", index)
		}
	case AssertStepCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for step_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
