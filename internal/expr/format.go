package expr

import (
	"fmt"
	"strconv"
)

// The format mini-language is deliberately narrow: [0][width][verb], where
// verb is 'd' (integer, right-aligned, optional zero padding) or 's'
// (string, left-aligned). An empty spec means the value's default string
// form. Anything else is an INVALID_FORMAT error. This keeps template
// behavior portable instead of dragging in a general formatting engine.

type formatSpec struct {
	zeroPad bool
	width   int
	verb    byte // 'd', 's', or 0 for value-default
}

func parseFormatSpec(spec string) (formatSpec, error) {
	var fs formatSpec
	i := 0
	if i < len(spec) && spec[i] == '0' {
		fs.zeroPad = true
		i++
	}
	start := i
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	if i > start {
		w, err := strconv.Atoi(spec[start:i])
		if err != nil {
			return fs, newFormatError(spec, "invalid width")
		}
		fs.width = w
	}
	if i < len(spec) {
		switch spec[i] {
		case 'd', 's':
			fs.verb = spec[i]
			i++
		default:
			return fs, newFormatError(spec, fmt.Sprintf("unsupported verb %q", string(spec[i])))
		}
	}
	if i != len(spec) {
		return fs, newFormatError(spec, "trailing characters after verb")
	}
	return fs, nil
}

// CheckFormatSpec reports whether spec is well-formed under the format
// mini-language. Returns nil for the empty spec.
func CheckFormatSpec(spec string) error {
	_, err := parseFormatSpec(spec)
	return err
}

// formatValue renders a binding value according to a format spec.
func formatValue(v Value, spec string) (string, error) {
	if spec == "" {
		return defaultString(v), nil
	}
	fs, err := parseFormatSpec(spec)
	if err != nil {
		return "", err
	}

	verb := fs.verb
	if verb == 0 {
		// Bare width: align by value kind, like a numeric vs string default.
		switch v.(type) {
		case IntValue:
			verb = 'd'
		default:
			verb = 's'
		}
	}

	switch verb {
	case 'd':
		n, ok := v.(IntValue)
		if !ok {
			return "", newFormatError(spec, "verb 'd' requires an integer value")
		}
		if fs.zeroPad {
			return fmt.Sprintf("%0*d", fs.width, int64(n)), nil
		}
		return fmt.Sprintf("%*d", fs.width, int64(n)), nil
	case 's':
		return fmt.Sprintf("%-*s", fs.width, defaultString(v)), nil
	default:
		return "", newFormatError(spec, "unsupported verb")
	}
}
