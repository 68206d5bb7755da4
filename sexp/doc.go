// Package sexp provides cursor-style navigation over balanced expressions
// in Lisp-family source held in a buffer: move across one expression
// forward or backward, step into or out of list structure, and back up
// over reader shorthand prefixes. Comments and strings are honored, not
// treated as structure.
package sexp
