package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/latepath/internal/expr"
)

// Fragment is one piece of a template part: either literal text or a
// parameter interpolation with an optional format spec.
type Fragment struct {
	Text   string `json:"text,omitempty"`
	Param  string `json:"param,omitempty"`
	Format string `json:"format,omitempty"`
}

// Part is one segment of a layout path. Exactly one of Literal, Param, or
// Template is set.
type Part struct {
	Literal  string     `json:"literal,omitempty"`
	Param    string     `json:"param,omitempty"`
	Template []Fragment `json:"template,omitempty"`
}

// Layout is the compiled form of a CUE layout declaration.
type Layout struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Base, when present, anchors the layout so it can be rebased without
	// touching the parts below it.
	Base  *Part  `json:"base,omitempty"`
	Parts []Part `json:"parts"`

	// Suffix and FileName are final-component rewrites applied after the
	// parts are joined. Empty means absent.
	Suffix   string `json:"suffix,omitempty"`
	FileName string `json:"filename,omitempty"`
}

// CompileLayout parses a CUE value into a Layout.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the layout struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`layout: chunks: { ... }`)
//	l, err := CompileLayout(v.LookupPath(cue.ParsePath("layout.chunks")))
func CompileLayout(v cue.Value) (*Layout, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	layout := &Layout{}

	// Layout name comes from the struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		layout.Name = labels[len(labels)-1].String()
	}

	// Description is optional
	descVal := v.LookupPath(cue.ParsePath("description"))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		layout.Description = desc
	}

	// Base is optional - a single part the layout can be rebased against
	baseVal := v.LookupPath(cue.ParsePath("base"))
	if baseVal.Exists() {
		base, err := parsePart(baseVal)
		if err != nil {
			return nil, err
		}
		layout.Base = &base
	}

	// Parts are required, at least one
	partsVal := v.LookupPath(cue.ParsePath("parts"))
	if !partsVal.Exists() {
		return nil, &CompileError{
			Field:   "parts",
			Message: "parts list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := partsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		part, err := parsePart(iter.Value())
		if err != nil {
			return nil, err
		}
		layout.Parts = append(layout.Parts, part)
	}
	if len(layout.Parts) == 0 {
		return nil, &CompileError{
			Field:   "parts",
			Message: "at least one part is required",
			Pos:     partsVal.Pos(),
		}
	}

	// Suffix rewrite (optional)
	suffixVal := v.LookupPath(cue.ParsePath("suffix"))
	if suffixVal.Exists() {
		suffix, err := suffixVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if suffix == "" {
			return nil, &CompileError{
				Field:   "suffix",
				Message: "suffix rewrite must be non-empty",
				Pos:     suffixVal.Pos(),
			}
		}
		layout.Suffix = suffix
	}

	// Filename rewrite (optional)
	nameVal := v.LookupPath(cue.ParsePath("filename"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if name == "" {
			return nil, &CompileError{
				Field:   "filename",
				Message: "filename rewrite must be non-empty",
				Pos:     nameVal.Pos(),
			}
		}
		layout.FileName = name
	}

	return layout, nil
}

// parsePart parses a single layout part.
// Exactly one of literal, param, or template must be present.
func parsePart(v cue.Value) (Part, error) {
	var part Part

	litVal := v.LookupPath(cue.ParsePath("literal"))
	paramVal := v.LookupPath(cue.ParsePath("param"))
	tmplVal := v.LookupPath(cue.ParsePath("template"))

	kinds := 0
	for _, kv := range []cue.Value{litVal, paramVal, tmplVal} {
		if kv.Exists() {
			kinds++
		}
	}
	if kinds != 1 {
		return part, &CompileError{
			Field:   "part",
			Message: "part must have exactly one of literal, param, or template",
			Pos:     v.Pos(),
		}
	}

	switch {
	case litVal.Exists():
		lit, err := litVal.String()
		if err != nil {
			return part, formatCUEError(err)
		}
		part.Literal = lit
	case paramVal.Exists():
		name, err := paramVal.String()
		if err != nil {
			return part, formatCUEError(err)
		}
		if name == "" {
			return part, &CompileError{
				Field:   "param",
				Message: "param name must be non-empty",
				Pos:     paramVal.Pos(),
			}
		}
		part.Param = name
	default:
		fragments, err := parseTemplate(tmplVal)
		if err != nil {
			return part, err
		}
		part.Template = fragments
	}

	return part, nil
}

// parseTemplate parses a template part's fragment list.
func parseTemplate(v cue.Value) ([]Fragment, error) {
	var fragments []Fragment

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		fragVal := iter.Value()

		textVal := fragVal.LookupPath(cue.ParsePath("text"))
		paramVal := fragVal.LookupPath(cue.ParsePath("param"))

		switch {
		case textVal.Exists() && paramVal.Exists():
			return nil, &CompileError{
				Field:   "template",
				Message: "fragment cannot have both text and param",
				Pos:     fragVal.Pos(),
			}
		case textVal.Exists():
			text, err := textVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			fragments = append(fragments, Fragment{Text: text})
		case paramVal.Exists():
			name, err := paramVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			if name == "" {
				return nil, &CompileError{
					Field:   "template",
					Message: "fragment param name must be non-empty",
					Pos:     paramVal.Pos(),
				}
			}
			frag := Fragment{Param: name}

			formatVal := fragVal.LookupPath(cue.ParsePath("format"))
			if formatVal.Exists() {
				format, err := formatVal.String()
				if err != nil {
					return nil, formatCUEError(err)
				}
				if specErr := expr.CheckFormatSpec(format); specErr != nil {
					return nil, &CompileError{
						Field:   "template",
						Message: fmt.Sprintf("invalid format spec %q: %v", format, specErr),
						Pos:     formatVal.Pos(),
					}
				}
				frag.Format = format
			}
			fragments = append(fragments, frag)
		default:
			return nil, &CompileError{
				Field:   "template",
				Message: "fragment must have text or param",
				Pos:     fragVal.Pos(),
			}
		}
	}

	if len(fragments) == 0 {
		return nil, &CompileError{
			Field:   "template",
			Message: "template must have at least one fragment",
			Pos:     v.Pos(),
		}
	}

	return fragments, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
