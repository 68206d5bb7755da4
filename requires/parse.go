package requires

import (
	"fmt"
	"unicode"
)

// Parse reads the text of one require form into its structured shape. The
// text is expected to be exactly one balanced form, as delivered by the
// locator.
func Parse(text string) (Form, error) {
	r := &reader{src: []rune(text)}
	r.skip()
	open, ok := r.next()
	if !ok || !isOpenDelim(open) {
		return Form{}, fmt.Errorf("parse require form: expected opening delimiter")
	}
	r.skip()
	head := r.atom()
	if head == "" {
		return Form{}, fmt.Errorf("parse require form: missing keyword head")
	}

	form := Form{Keyword: head}
	for {
		r.skip()
		c, ok := r.peek()
		if !ok {
			return Form{}, fmt.Errorf("parse require form: unterminated form")
		}
		if isCloseDelim(c) {
			r.next()
			return form, nil
		}
		spec, err := r.spec()
		if err != nil {
			return Form{}, err
		}
		form.Specs = append(form.Specs, spec)
	}
}

type reader struct {
	src []rune
	i   int
}

func (r *reader) peek() (rune, bool) {
	if r.i >= len(r.src) {
		return 0, false
	}
	return r.src[r.i], true
}

func (r *reader) next() (rune, bool) {
	c, ok := r.peek()
	if ok {
		r.i++
	}
	return c, ok
}

func (r *reader) skip() {
	for r.i < len(r.src) {
		c := r.src[r.i]
		if unicode.IsSpace(c) {
			r.i++
			continue
		}
		if c == ';' {
			for r.i < len(r.src) && r.src[r.i] != '\n' {
				r.i++
			}
			continue
		}
		if c == '#' && r.i+1 < len(r.src) && r.src[r.i+1] == '|' {
			r.skipBlockComment()
			continue
		}
		return
	}
}

// skipBlockComment consumes a #|...|# comment, nesting included. An
// unterminated comment runs to the end of the input.
func (r *reader) skipBlockComment() {
	depth := 0
	for r.i < len(r.src) {
		if r.src[r.i] == '#' && r.i+1 < len(r.src) && r.src[r.i+1] == '|' {
			r.i += 2
			depth++
			continue
		}
		if r.src[r.i] == '|' && r.i+1 < len(r.src) && r.src[r.i+1] == '#' {
			r.i += 2
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		r.i++
	}
}

func (r *reader) spec() (Spec, error) {
	c, ok := r.peek()
	if !ok {
		return Spec{}, fmt.Errorf("parse require form: unexpected end of input")
	}
	if isOpenDelim(c) {
		r.next()
		list := []Spec{}
		for {
			r.skip()
			c, ok := r.peek()
			if !ok {
				return Spec{}, fmt.Errorf("parse require form: unterminated sub-form")
			}
			if isCloseDelim(c) {
				r.next()
				return Spec{List: list}, nil
			}
			child, err := r.spec()
			if err != nil {
				return Spec{}, err
			}
			list = append(list, child)
		}
	}
	if c == '"' {
		return Spec{Atom: r.str()}, nil
	}
	atom := r.atom()
	if atom == "" {
		return Spec{}, fmt.Errorf("parse require form: stray character %q", c)
	}
	return Spec{Atom: atom}, nil
}

// atom consumes a symbol-like token; reader prefixes such as the quote in
// 'my-module stay part of the token text.
func (r *reader) atom() string {
	start := r.i
	for r.i < len(r.src) {
		c := r.src[r.i]
		if unicode.IsSpace(c) || isOpenDelim(c) || isCloseDelim(c) || c == ';' || c == '"' {
			break
		}
		r.i++
	}
	return string(r.src[start:r.i])
}

// str consumes a string literal, quotes and escapes included.
func (r *reader) str() string {
	start := r.i
	r.i++ // opening quote
	for r.i < len(r.src) {
		c := r.src[r.i]
		if c == '\\' && r.i+1 < len(r.src) {
			r.i += 2
			continue
		}
		r.i++
		if c == '"' {
			break
		}
	}
	return string(r.src[start:r.i])
}

func isOpenDelim(c rune) bool  { return c == '(' || c == '[' || c == '{' }
func isCloseDelim(c rune) bool { return c == ')' || c == ']' || c == '}' }
