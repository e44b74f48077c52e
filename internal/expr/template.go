package expr

// Fragment is a sealed interface over template fragments.
// Only Text and Interp implement it.
type Fragment interface {
	templateFragment() // Sealed - only these types implement it
}

// Text is a literal text fragment inside a template.
type Text string

func (Text) templateFragment() {}

// Interp is a parameter interpolation fragment inside a template.
// Spec is the optional format spec applied to the bound value; empty means
// the value's default string form.
type Interp struct {
	Name string
	Spec string
}

func (Interp) templateFragment() {}

// Template is an interpolated single-segment expression such as
// "chunk_{idx:04d}-of-{total:04d}.parquet". The fragment list is never
// empty and never contains two adjacent Text fragments.
type Template []Fragment

func (Template) pathExpr() {}

// NewTemplate constructs a template from ordered fragments, merging
// adjacent text fragments during construction.
func NewTemplate(fragments ...Fragment) (Template, error) {
	if len(fragments) == 0 {
		return nil, newConstructionError("template requires at least one fragment")
	}

	merged := make(Template, 0, len(fragments))
	for _, f := range fragments {
		switch frag := f.(type) {
		case Text:
			if n := len(merged); n > 0 {
				if prev, ok := merged[n-1].(Text); ok {
					merged[n-1] = prev + frag
					continue
				}
			}
			merged = append(merged, frag)
		case Interp:
			if frag.Name == "" {
				return nil, newConstructionError("template interpolation requires a param name")
			}
			merged = append(merged, frag)
		default:
			return nil, newConstructionError("unknown template fragment type")
		}
	}
	return merged, nil
}

// MustTemplate is like NewTemplate but panics on error.
// Use only in tests or when fragments are known to be valid.
func MustTemplate(fragments ...Fragment) Template {
	t, err := NewTemplate(fragments...)
	if err != nil {
		panic(err)
	}
	return t
}
