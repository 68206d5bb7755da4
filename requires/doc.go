// Package requires locates top-level require forms in a buffer, parses
// them into a structured representation, and can splice them out while
// recording where replacement text belongs.
//
// Only forms whose opening delimiter sits in column 0 are matched. Forms
// nested inside module or submodule structure are intentionally left
// alone; see HasSubmoduleForms for the caller-facing warning that covers
// the gap.
package requires
