// Package expr provides deferred path expressions with late binding.
//
// Expressions are built programmatically from literals, named parameters,
// and formatted template fragments, then resolved to a concrete path string
// once bindings are supplied. Nothing in this package touches the
// filesystem; the only platform collaborator is the path separator.
//
// The Expr variant family is sealed and normalized at construction time:
//   - Joining two literals folds them into one literal, at every
//     construction step, so deep chains collapse fully.
//   - Replacing the suffix of a WithSuffix node replaces the suffix field
//     in place; the tree never nests two WithSuffix wrappers.
//   - Adjacent text fragments in a template are merged during construction.
//
// Because normalization happens in constructors and every value is
// immutable afterward, trees are always in normal form, structural equality
// is meaningful, and concurrent readers need no synchronization.
package expr
