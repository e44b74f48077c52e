package compiler

import (
	"github.com/roach88/latepath/internal/expr"
)

// Build compiles the layout into a single path expression: the parts joined
// in order under the base (when present), with the suffix and filename
// rewrites applied to the final component.
func (l *Layout) Build() (expr.Expr, error) {
	rel, err := l.buildRelative()
	if err != nil {
		return nil, err
	}
	if l.Base == nil {
		return rel, nil
	}
	base, err := partExpr(*l.Base)
	if err != nil {
		return nil, err
	}
	return expr.NewJoin(base, rel), nil
}

// BuildRelative compiles the layout into a rebasable path. The base/relative
// boundary is preserved so callers can swap the base without rebuilding the
// parts below it. Fails when the layout declares no base.
func (l *Layout) BuildRelative() (expr.RelativePath, error) {
	if l.Base == nil {
		return expr.RelativePath{}, &CompileError{
			Field:   "base",
			Message: "layout declares no base to rebase against",
		}
	}
	base, err := partExpr(*l.Base)
	if err != nil {
		return expr.RelativePath{}, err
	}
	rel, err := l.buildRelative()
	if err != nil {
		return expr.RelativePath{}, err
	}
	return expr.NewRelativePath(base, rel), nil
}

// buildRelative joins the parts and applies the rewrites, without the base.
func (l *Layout) buildRelative() (expr.Expr, error) {
	var joined expr.Expr
	for _, part := range l.Parts {
		e, err := partExpr(part)
		if err != nil {
			return nil, err
		}
		if joined == nil {
			joined = e
		} else {
			joined = expr.NewJoin(joined, e)
		}
	}
	if l.Suffix != "" {
		joined = expr.NewWithSuffix(joined, l.Suffix)
	}
	if l.FileName != "" {
		joined = expr.NewWithName(joined, l.FileName)
	}
	return joined, nil
}

// partExpr converts a single part into its expression node.
func partExpr(p Part) (expr.Expr, error) {
	switch {
	case p.Param != "":
		param, err := expr.NewParam(p.Param)
		if err != nil {
			return nil, err
		}
		return param, nil
	case len(p.Template) > 0:
		fragments := make([]expr.Fragment, 0, len(p.Template))
		for _, f := range p.Template {
			if f.Param != "" {
				fragments = append(fragments, expr.Interp{Name: f.Param, Spec: f.Format})
			} else {
				fragments = append(fragments, expr.Text(f.Text))
			}
		}
		tmpl, err := expr.NewTemplate(fragments...)
		if err != nil {
			return nil, err
		}
		return tmpl, nil
	default:
		return expr.NewLiteral(p.Literal), nil
	}
}
