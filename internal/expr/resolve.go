package expr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Bindings maps parameter names to concrete values.
type Bindings map[string]Value

// UnmarshalJSON parses a JSON object into typed binding values. Strings
// become StringValue, integers IntValue; floats, nulls, and nested
// structures are rejected, matching the sealed value family.
func (b *Bindings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(Bindings, len(raw))
	for name, v := range raw {
		switch tv := v.(type) {
		case string:
			out[name] = NewString(tv)
		case json.Number:
			n, err := tv.Int64()
			if err != nil {
				return fmt.Errorf("binding %q is not an integer: %w", name, err)
			}
			out[name] = NewInt(n)
		default:
			return fmt.Errorf("unsupported binding value for %q: %T", name, v)
		}
	}
	*b = out
	return nil
}

// Resolve materializes an expression into a concrete path string.
//
// Missing parameters are detected up front against RequiredParams, so the
// returned MISSING_PARAM error names every absent parameter rather than
// just the first one encountered. Partial results are never returned.
func Resolve(e Expr, bindings Bindings) (string, error) {
	if missing := missingParams(RequiredParams(e), bindings); len(missing) > 0 {
		return "", NewMissingParamError(missing...)
	}
	return resolveExpr(e, bindings)
}

// missingParams returns required names absent from bindings, sorted.
func missingParams(required ParamSet, bindings Bindings) []string {
	var missing []string
	for _, name := range required.Names() {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func resolveExpr(e Expr, bindings Bindings) (string, error) {
	switch v := e.(type) {
	case Literal:
		return string(v), nil

	case Param:
		val, ok := bindings[string(v)]
		if !ok {
			return "", NewMissingParamError(string(v))
		}
		return defaultString(val), nil

	case Join:
		left, err := resolveExpr(v.Left, bindings)
		if err != nil {
			return "", err
		}
		right, err := resolveExpr(v.Right, bindings)
		if err != nil {
			return "", err
		}
		return filepath.Join(left, right), nil

	case Template:
		var b strings.Builder
		for _, f := range v {
			switch frag := f.(type) {
			case Text:
				b.WriteString(string(frag))
			case Interp:
				val, ok := bindings[frag.Name]
				if !ok {
					return "", NewMissingParamError(frag.Name)
				}
				s, err := formatValue(val, frag.Spec)
				if err != nil {
					return "", err
				}
				b.WriteString(s)
			}
		}
		return b.String(), nil

	case WithSuffix:
		base, err := resolveExpr(v.Base, bindings)
		if err != nil {
			return "", err
		}
		return replaceSuffix(base, v.Suffix), nil

	case WithName:
		base, err := resolveExpr(v.Base, bindings)
		if err != nil {
			return "", err
		}
		return replaceName(base, v.Name), nil

	default:
		return "", fmt.Errorf("unknown expression type: %T", e)
	}
}

// replaceSuffix rewrites the suffix of the final path component. Everything
// from the last '.' onward is replaced; a component with no '.' gets the
// suffix appended. A leading dot is part of the name, not a suffix boundary,
// so ".bashrc" has no suffix to replace.
func replaceSuffix(p, suffix string) string {
	dir, file := filepath.Split(p)
	if idx := strings.LastIndexByte(file, '.'); idx > 0 {
		return dir + file[:idx] + suffix
	}
	return dir + file + suffix
}

// replaceName rewrites the final path component.
func replaceName(p, name string) string {
	dir, _ := filepath.Split(p)
	return dir + name
}
