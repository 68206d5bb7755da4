package rewriter

import "github.com/google/uuid"

// Op selects the analysis the collaborator performs on the collected
// require forms.
type Op string

const (
	OpTidy Op = "tidy"
	OpTrim Op = "trim"
	OpBase Op = "base"
)

// Request is the message sent over the wire, one per operation. Requires
// carries the serialized forms; Path names the source file for the
// analyses that need to read the whole program (trim, base).
type Request struct {
	ID       uuid.UUID `json:"id"`
	Op       Op        `json:"op"`
	Path     string    `json:"path,omitempty"`
	Requires []string  `json:"requires"`
}

// Reply carries the serialized replacement require block. An empty Block
// means delete only, nothing to insert. SyntaxError reports that the
// source does not parse, in which case the buffer must stay untouched.
type Reply struct {
	ID          uuid.UUID `json:"id"`
	Block       string    `json:"block"`
	SyntaxError bool      `json:"syntaxError,omitempty"`
	Error       string    `json:"error,omitempty"`
}
