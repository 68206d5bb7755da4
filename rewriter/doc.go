// Package rewriter talks to the external require-rewriter service and
// splices its answers back into the buffer. The service owns all semantic
// decisions, such as what racket/base provides or which requires go
// unused. The engine treats it as opaque: one request out, one reply back.
package rewriter
