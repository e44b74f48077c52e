package harness

// TraceEvent records the outcome of one scenario step.
type TraceEvent struct {
	Type      string      `json:"type"` // "resolution" or "error"
	Layout    string      `json:"layout"`
	Bindings  interface{} `json:"bindings,omitempty"`
	Path      string      `json:"path,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	Seq       int64       `json:"seq"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every step matched its expect clause and all assertions held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddResolutionTrace adds a successful resolution to the trace.
func (r *Result) AddResolutionTrace(layout string, bindings interface{}, path string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:     "resolution",
		Layout:   layout,
		Bindings: bindings,
		Path:     path,
		Seq:      seq,
	})
}

// AddErrorTrace adds a failed resolution to the trace.
func (r *Result) AddErrorTrace(layout string, bindings interface{}, errorCode string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:      "error",
		Layout:    layout,
		Bindings:  bindings,
		ErrorCode: errorCode,
		Seq:       seq,
	})
}
