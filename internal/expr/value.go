package expr

import "strconv"

// Value is a sealed interface over binding value types.
// Only StringValue and IntValue implement it. There is no float value:
// path components built from floats are not deterministic across
// formatting, and nothing in a path template needs one.
type Value interface {
	bindingValue() // Sealed - only these types implement it
}

// StringValue is a string binding value.
type StringValue string

func (StringValue) bindingValue() {}

// IntValue is an integer binding value. Always int64.
type IntValue int64

func (IntValue) bindingValue() {}

// NewString creates a StringValue.
func NewString(s string) StringValue {
	return StringValue(s)
}

// NewInt creates an IntValue.
func NewInt(n int64) IntValue {
	return IntValue(n)
}

// defaultString renders a value with no format spec applied.
func defaultString(v Value) string {
	switch val := v.(type) {
	case StringValue:
		return string(val)
	case IntValue:
		return strconv.FormatInt(int64(val), 10)
	default:
		// Unreachable for sealed values; keep the zero string rather than
		// panic so resolution errors stay explicit.
		return ""
	}
}
