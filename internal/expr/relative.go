package expr

import "path/filepath"

// RelativePath pairs a base expression with a relative expression,
// preserving the relation so the base can be swapped later.
//
// It is not an Expr variant: the base/relative boundary is a first-class
// seam that rebasing must not fold across.
type RelativePath struct {
	Base     Expr
	Relative Expr
}

// NewRelativePath creates a relative path from two independently built
// expression trees.
func NewRelativePath(base, relative Expr) RelativePath {
	return RelativePath{Base: base, Relative: relative}
}

// Expr returns the full path expression, base joined with relative.
func (p RelativePath) Expr() Expr {
	return NewJoin(p.Base, p.Relative)
}

// Rebase returns an equivalent path under a different base.
//
// Only the base is replaced; the relative tree is shared unchanged and no
// folding is performed across the boundary, even when the new base and the
// relative side's leading segment could combine.
func (p RelativePath) Rebase(newBase Expr) RelativePath {
	return RelativePath{Base: newBase, Relative: p.Relative}
}

// RequiredParams returns the union of the base and relative param sets.
func (p RelativePath) RequiredParams() ParamSet {
	return RequiredParams(p.Base).Union(RequiredParams(p.Relative))
}

// Resolve materializes the path by resolving base and relative and joining
// the two resulting strings. Missing parameters from either side are
// reported together.
func (p RelativePath) Resolve(bindings Bindings) (string, error) {
	if missing := missingParams(p.RequiredParams(), bindings); len(missing) > 0 {
		return "", NewMissingParamError(missing...)
	}
	base, err := resolveExpr(p.Base, bindings)
	if err != nil {
		return "", err
	}
	relative, err := resolveExpr(p.Relative, bindings)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, relative), nil
}
