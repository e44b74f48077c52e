// Package compiler turns CUE layout declarations into path expression
// trees.
//
// A layout is a structured description of a deferred path: an ordered list
// of parts (literal text, named parameters, or formatted templates), an
// optional base expression, and optional suffix or filename rewrites.
// Layouts are declared in CUE and compiled with the CUE Go API directly;
// there is no string grammar for expressions.
package compiler
