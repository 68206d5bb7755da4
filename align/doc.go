// Package align right-aligns the value column of key/value couples (let
// bindings, hash pairs, keyword arguments) or collapses that alignment
// back to single-space separation.
package align
