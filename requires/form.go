package requires

import "strings"

// Keyword is the head token that introduces an import form.
const Keyword = "require"

// Form is one top-level require form: the keyword head plus its specs in
// source order.
type Form struct {
	Keyword string
	Specs   []Spec
}

// Spec is one entry inside a require form: either a bare module-path-like
// token (Atom set) or a tagged modifier sub-form such as (for-syntax ...)
// or (only-in ...) (List set, first element the tag). String atoms keep
// their quotes, so relative paths like "util.rkt" round-trip.
type Spec struct {
	Atom string
	List []Spec
}

func (s Spec) IsList() bool { return s.Atom == "" && s.List != nil }

// Tag returns the head token of a modifier sub-form, or "" for atoms.
func (s Spec) Tag() string {
	if !s.IsList() || len(s.List) == 0 {
		return ""
	}
	return s.List[0].Atom
}

func (f Form) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(f.Keyword)
	for _, s := range f.Specs {
		sb.WriteByte(' ')
		s.appendTo(&sb)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (s Spec) appendTo(sb *strings.Builder) {
	if !s.IsList() {
		sb.WriteString(s.Atom)
		return
	}
	sb.WriteByte('(')
	for i, child := range s.List {
		if i > 0 {
			sb.WriteByte(' ')
		}
		child.appendTo(sb)
	}
	sb.WriteByte(')')
}
