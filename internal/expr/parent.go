package expr

import "strings"

// Parent returns the structural parent of an expression.
//
// Parent simplification: for Join(left, right) where right denotes a single
// trailing segment, the result is exactly left - the trailing segment is
// removed structurally, never replaced with an empty placeholder. A
// multi-segment literal strips its last component. A bare Param, Template,
// or single-segment literal has no parent segment and fails with a
// NO_PARENT error.
func Parent(e Expr) (Expr, error) {
	switch v := e.(type) {
	case Literal:
		return literalParent(v)

	case Param:
		return nil, newNoParentError("param " + string(v))

	case Template:
		// A template always denotes exactly one segment.
		return nil, newNoParentError("template")

	case Join:
		p, err := Parent(v.Right)
		if err != nil {
			if IsNoParent(err) {
				// Right side is a single trailing segment; drop it.
				return v.Left, nil
			}
			return nil, err
		}
		return NewJoin(v.Left, p), nil

	case WithSuffix:
		// Suffix replacement only touches the final component, which the
		// parent strips anyway.
		return Parent(v.Base)

	case WithName:
		return Parent(v.Base)

	default:
		return nil, newNoParentError("unknown expression")
	}
}

func literalParent(v Literal) (Expr, error) {
	s := string(v)
	if s == Separator {
		return nil, newNoParentError("root")
	}
	idx := strings.LastIndex(s, Separator)
	switch {
	case idx < 0:
		return nil, newNoParentError("single segment " + s)
	case idx == 0:
		return Literal(Separator), nil
	default:
		return Literal(s[:idx]), nil
	}
}
