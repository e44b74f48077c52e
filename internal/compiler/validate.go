package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/latepath/internal/expr"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedType = "E100" // unsupported type for validation

	// Layout errors (E101-E109)
	ErrLayoutNameEmpty   = "E101" // layout name is required
	ErrLayoutNoParts     = "E102" // at least one part required
	ErrPartAmbiguous     = "E103" // part must have exactly one kind
	ErrFragmentAmbiguous = "E104" // fragment must be text or param, not both
	ErrInvalidFormatSpec = "E105" // format spec does not parse
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates a compiled layout against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(v any) []ValidationError {
	switch l := v.(type) {
	case *Layout:
		return validateLayout(l)
	case Layout:
		return validateLayout(&l)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type: %T", v),
			Code:    ErrUnsupportedType,
		}}
	}
}

// validateLayout validates a layout's structure. CompileLayout enforces the
// same rules at parse time; Validate covers layouts assembled in Go.
func validateLayout(l *Layout) []ValidationError {
	var errs []ValidationError

	// E101: name is required
	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "layout name is required and must be non-empty",
			Code:    ErrLayoutNameEmpty,
		})
	}

	// E102: at least one part required
	if len(l.Parts) == 0 {
		errs = append(errs, ValidationError{
			Field:   "parts",
			Message: "at least one part is required",
			Code:    ErrLayoutNoParts,
		})
	}

	if l.Base != nil {
		errs = append(errs, validatePart(*l.Base, "base")...)
	}
	for i, part := range l.Parts {
		errs = append(errs, validatePart(part, fmt.Sprintf("parts[%d]", i))...)
	}

	return errs
}

// validatePart checks that a part has exactly one kind and that template
// fragments are well-formed.
func validatePart(p Part, fieldPath string) []ValidationError {
	var errs []ValidationError

	kinds := 0
	if p.Literal != "" {
		kinds++
	}
	if p.Param != "" {
		kinds++
	}
	if len(p.Template) > 0 {
		kinds++
	}

	// E103: exactly one of literal, param, template. An all-empty part is
	// indistinguishable from an empty literal and rejected the same way.
	if kinds != 1 {
		errs = append(errs, ValidationError{
			Field:   fieldPath,
			Message: "part must have exactly one of literal, param, or template",
			Code:    ErrPartAmbiguous,
		})
		return errs
	}

	for i, f := range p.Template {
		fragPath := fmt.Sprintf("%s.template[%d]", fieldPath, i)

		// E104: text and param are mutually exclusive, and one is required
		if (f.Text != "") == (f.Param != "") {
			errs = append(errs, ValidationError{
				Field:   fragPath,
				Message: "fragment must have exactly one of text or param",
				Code:    ErrFragmentAmbiguous,
			})
			continue
		}

		// E105: format only applies to param fragments, and must parse
		if f.Format != "" {
			if f.Param == "" {
				errs = append(errs, ValidationError{
					Field:   fragPath,
					Message: "format requires a param fragment",
					Code:    ErrInvalidFormatSpec,
				})
			} else if err := expr.CheckFormatSpec(f.Format); err != nil {
				errs = append(errs, ValidationError{
					Field:   fragPath,
					Message: fmt.Sprintf("invalid format spec %q", f.Format),
					Code:    ErrInvalidFormatSpec,
				})
			}
		}
	}

	return errs
}
