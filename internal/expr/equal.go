package expr

// Equal reports deep structural equality of two expressions.
//
// Because constructors keep trees in normal form, folded results can be
// compared against directly-constructed expectations, e.g.
// Equal(NewJoin(NewLiteral("a"), NewLiteral("b")), NewLiteral("a/b")).
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Literal:
		bv, ok := b.(Literal)
		return ok && av == bv
	case Param:
		bv, ok := b.(Param)
		return ok && av == bv
	case Join:
		bv, ok := b.(Join)
		return ok && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case Template:
		bv, ok := b.(Template)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case WithSuffix:
		bv, ok := b.(WithSuffix)
		return ok && av.Suffix == bv.Suffix && Equal(av.Base, bv.Base)
	case WithName:
		bv, ok := b.(WithName)
		return ok && av.Name == bv.Name && Equal(av.Base, bv.Base)
	default:
		return false
	}
}
