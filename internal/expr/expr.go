package expr

import (
	"path/filepath"
)

// Separator is the platform path separator used when joining segments.
const Separator = string(filepath.Separator)

// Expr is a sealed interface over path expression nodes.
// Only Literal, Param, Join, Template, WithSuffix, and WithName implement it.
//
// Use the New* constructors rather than struct literals: the constructors
// apply the normalization rules (constant folding, suffix chain collapse,
// template text merging) that every operation in this package assumes.
type Expr interface {
	pathExpr() // Sealed - only these types implement it
}

// Literal is a concrete path segment or fragment.
type Literal string

func (Literal) pathExpr() {}

// Param is a named slot filled from bindings at resolution time.
// The name is the parameter's identity: the same name anywhere in a tree
// refers to the same logical parameter.
type Param string

func (Param) pathExpr() {}

// Join concatenates two sub-expressions with a path separator boundary.
// Constructors never produce a Join whose operands are both literals.
type Join struct {
	Left  Expr
	Right Expr
}

func (Join) pathExpr() {}

// WithSuffix replaces the suffix of the base expression's final component.
// The replacement is purely textual and applied after the base is resolved.
// At most one WithSuffix wrapper exists on any chain of suffix replacements.
type WithSuffix struct {
	Base   Expr
	Suffix string
}

func (WithSuffix) pathExpr() {}

// WithName replaces the final component of the base expression.
type WithName struct {
	Base Expr
	Name string
}

func (WithName) pathExpr() {}

// NewLiteral creates a literal path expression.
func NewLiteral(text string) Literal {
	return Literal(text)
}

// NewParam creates a named parameter expression.
// The name must be non-empty; it is the identity key used by bindings.
func NewParam(name string) (Param, error) {
	if name == "" {
		return "", newConstructionError("param name must be non-empty")
	}
	return Param(name), nil
}

// MustParam is like NewParam but panics on error.
// Use only in tests or when the name is known to be valid.
func MustParam(name string) Param {
	p, err := NewParam(name)
	if err != nil {
		panic(err)
	}
	return p
}

// NewJoin joins two expressions with the path separator.
//
// Constant folding: when both operands are literals the result is a single
// literal, not a Join. The rule fires on the immediate operands of every
// call, so chained joins over literals collapse to one node with no
// intermediate Join surviving.
func NewJoin(left, right Expr) Expr {
	if l, ok := left.(Literal); ok {
		if r, ok := right.(Literal); ok {
			return Literal(filepath.Join(string(l), string(r)))
		}
	}
	return Join{Left: left, Right: right}
}

// NewWithSuffix replaces the suffix of base's final resolved component.
//
// Suffix chain collapse: applying NewWithSuffix to a WithSuffix node
// replaces its suffix field rather than nesting, so only the most recent
// suffix survives structurally. A literal base is folded immediately.
func NewWithSuffix(base Expr, suffix string) Expr {
	switch b := base.(type) {
	case WithSuffix:
		return WithSuffix{Base: b.Base, Suffix: suffix}
	case Literal:
		return Literal(replaceSuffix(string(b), suffix))
	}
	return WithSuffix{Base: base, Suffix: suffix}
}

// NewWithName replaces the final component of base with name.
func NewWithName(base Expr, name string) Expr {
	return WithName{Base: base, Name: name}
}
