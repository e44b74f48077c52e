package expr

import "sort"

// ParamSet is an unordered set of parameter names.
type ParamSet map[string]struct{}

// NewParamSet creates a set from the given names.
func NewParamSet(names ...string) ParamSet {
	s := make(ParamSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts a name into the set.
func (s ParamSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s ParamSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set containing names from both sets.
func (s ParamSet) Union(other ParamSet) ParamSet {
	out := make(ParamSet, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Names returns the names in sorted order.
func (s ParamSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RequiredParams returns the distinct parameter names reachable from e.
// Literals contribute nothing; folding only ever removes pure-literal
// structure, so it can never make a required parameter disappear.
func RequiredParams(e Expr) ParamSet {
	s := make(ParamSet)
	collectParams(e, s)
	return s
}

func collectParams(e Expr, into ParamSet) {
	switch v := e.(type) {
	case Literal:
		// no params
	case Param:
		into.Add(string(v))
	case Join:
		collectParams(v.Left, into)
		collectParams(v.Right, into)
	case Template:
		for _, f := range v {
			if interp, ok := f.(Interp); ok {
				into.Add(interp.Name)
			}
		}
	case WithSuffix:
		collectParams(v.Base, into)
	case WithName:
		collectParams(v.Base, into)
	}
}
