package sexp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iw2rmb/lispedit/buffer"
)

// ScanError reports that no balanced structure exists at the point a
// navigation primitive expected one: a delimiter with no match, an
// enclosing list that is not there, an atom where a list was required.
// Loops built on the cursor treat it as "no more structure here", never as
// a fatal condition.
type ScanError struct {
	Op  string
	Pos int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: no balanced expression at offset %d", e.Op, e.Pos)
}

const (
	openers = "([{"
	closers = ")]}"

	// Reader shorthand that attaches to the following expression: quote,
	// quasiquote, unquote, unquote-splicing, dispatch and the dotted-pair
	// dot.
	prefixes = "'`,.#@"
)

type class uint8

const (
	classCode class = iota
	classComment
	classString
	classChar
)

// Cursor navigates a buffer by balanced expressions, moving the buffer's
// current position. It classifies the text once per text version so that
// delimiters inside comments, strings and character literals never count
// as structure, in either scan direction.
type Cursor struct {
	buf     *buffer.Buffer
	text    []rune
	classes []class
	version uint64
	synced  bool
}

func New(buf *buffer.Buffer) *Cursor {
	return &Cursor{buf: buf}
}

// ForwardSexp moves the position forward across exactly one balanced
// expression, skipping whitespace and comments before it. Reader prefixes
// are crossed together with the expression they quote.
func (c *Cursor) ForwardSexp() error {
	c.sync()
	i := c.skipForward(c.buf.Pos())
	i = c.skipPrefixForward(i)
	if i >= len(c.text) {
		return &ScanError{Op: "forward-sexp", Pos: i}
	}

	switch {
	case c.classes[i] == classString:
		for i < len(c.text) && c.classes[i] == classString {
			i++
		}
		c.buf.SetPos(i)
		return nil
	case c.classes[i] == classChar:
		c.buf.SetPos(c.atomEnd(i))
		return nil
	case isOpen(c.text[i]):
		end, err := c.matchForward(i)
		if err != nil {
			return err
		}
		c.buf.SetPos(end)
		return nil
	case isClose(c.text[i]):
		// The containing expression ends here.
		return &ScanError{Op: "forward-sexp", Pos: i}
	default:
		c.buf.SetPos(c.atomEnd(i))
		return nil
	}
}

// BackwardSexp moves the position backward across exactly one balanced
// expression and then over any reader prefixes immediately before it, so
// 'foo is one span, not two.
func (c *Cursor) BackwardSexp() error {
	c.sync()
	i := c.skipBackward(c.buf.Pos())
	if i == 0 {
		return &ScanError{Op: "backward-sexp", Pos: 0}
	}
	j := i - 1

	var start int
	switch {
	case c.classes[j] == classString:
		for j >= 0 && c.classes[j] == classString {
			j--
		}
		start = j + 1
	case c.classes[j] == classCode && isClose(c.text[j]):
		var err error
		start, err = c.matchBackward(j)
		if err != nil {
			return err
		}
	case c.classes[j] == classCode && isOpen(c.text[j]):
		// The containing expression begins here.
		return &ScanError{Op: "backward-sexp", Pos: j}
	default:
		for j >= 0 && c.isAtomAt(j) {
			j--
		}
		start = j + 1
		if start == i {
			return &ScanError{Op: "backward-sexp", Pos: i}
		}
	}

	c.buf.SetPos(c.prefixStart(start))
	return nil
}

// DownList moves forward into the next nested list, landing just past its
// opening delimiter. Atoms on the way are crossed; a closing delimiter
// means the enclosing list holds no further sublist.
func (c *Cursor) DownList() error {
	c.sync()
	for j := c.buf.Pos(); j < len(c.text); j++ {
		if c.classes[j] != classCode {
			continue
		}
		r := c.text[j]
		if isOpen(r) {
			c.buf.SetPos(j + 1)
			return nil
		}
		if isClose(r) {
			return &ScanError{Op: "down-list", Pos: j}
		}
	}
	return &ScanError{Op: "down-list", Pos: len(c.text)}
}

// UpList moves forward out of the enclosing list, landing just past its
// closing delimiter. At top level there is nothing to leave.
func (c *Cursor) UpList() error {
	c.sync()
	var stack []rune
	for j := c.buf.Pos(); j < len(c.text); j++ {
		if c.classes[j] != classCode {
			continue
		}
		r := c.text[j]
		if isOpen(r) {
			stack = append(stack, closerFor(r))
			continue
		}
		if !isClose(r) {
			continue
		}
		if len(stack) == 0 {
			c.buf.SetPos(j + 1)
			return nil
		}
		if stack[len(stack)-1] != r {
			return &ScanError{Op: "up-list", Pos: j}
		}
		stack = stack[:len(stack)-1]
	}
	return &ScanError{Op: "up-list", Pos: len(c.text)}
}

// BackwardPrefix moves the position back over any reader prefix characters
// immediately before it. It is how callers widen a span to include
// shorthand markers after landing at an expression start.
func (c *Cursor) BackwardPrefix() {
	c.sync()
	c.buf.SetPos(c.prefixStart(c.buf.Pos()))
}

func (c *Cursor) sync() {
	if c.synced && c.version == c.buf.TextVersion() {
		return
	}
	c.text = []rune(c.buf.Text())
	c.classes = classify(c.text)
	c.version = c.buf.TextVersion()
	c.synced = true
}

// skipForward advances past whitespace and comments. Strings and character
// literals stop it: they are content.
func (c *Cursor) skipForward(i int) int {
	for i < len(c.text) {
		switch {
		case c.classes[i] == classComment:
			i++
		case c.classes[i] == classCode && unicode.IsSpace(c.text[i]):
			i++
		default:
			return i
		}
	}
	return i
}

func (c *Cursor) skipBackward(i int) int {
	for i > 0 {
		k := i - 1
		switch {
		case c.classes[k] == classComment:
			i--
		case c.classes[k] == classCode && unicode.IsSpace(c.text[k]):
			i--
		default:
			return i
		}
	}
	return i
}

// skipPrefixForward crosses quote/quasiquote/unquote/splicing marks and
// the dispatch forms #' #` #, that precede an expression. The dispatch
// char before an opener stays put so the delimiter walk sees the opener.
func (c *Cursor) skipPrefixForward(i int) int {
	for i < len(c.text) && c.classes[i] == classCode {
		r := c.text[i]
		if r == '\'' || r == '`' || r == ',' || r == '@' {
			i++
			continue
		}
		if r == '#' && i+1 < len(c.text) && c.classes[i+1] == classCode {
			next := c.text[i+1]
			if next == '\'' || next == '`' || next == ',' {
				i += 2
				continue
			}
			if isOpen(next) {
				return i + 1
			}
		}
		break
	}
	return i
}

func (c *Cursor) prefixStart(i int) int {
	for i > 0 && c.classes[i-1] == classCode && isPrefix(c.text[i-1]) {
		i--
	}
	return i
}

// atomEnd scans to the end of the atom starting at i. Character literals
// flow into their trailing name runes, so #\space is one atom.
func (c *Cursor) atomEnd(i int) int {
	for i < len(c.text) {
		if c.classes[i] == classChar {
			i++
			continue
		}
		if c.classes[i] == classCode && isAtomRune(c.text[i]) {
			i++
			continue
		}
		break
	}
	return i
}

func (c *Cursor) isAtomAt(j int) bool {
	if c.classes[j] == classChar {
		return true
	}
	return c.classes[j] == classCode && isAtomRune(c.text[j])
}

func (c *Cursor) matchForward(i int) (int, error) {
	var stack []rune
	for j := i; j < len(c.text); j++ {
		if c.classes[j] != classCode {
			continue
		}
		r := c.text[j]
		if isOpen(r) {
			stack = append(stack, closerFor(r))
			continue
		}
		if !isClose(r) {
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != r {
			return 0, &ScanError{Op: "forward-sexp", Pos: j}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return j + 1, nil
		}
	}
	return 0, &ScanError{Op: "forward-sexp", Pos: i}
}

func (c *Cursor) matchBackward(j int) (int, error) {
	var stack []rune
	for k := j; k >= 0; k-- {
		if c.classes[k] != classCode {
			continue
		}
		r := c.text[k]
		if isClose(r) {
			stack = append(stack, openerFor(r))
			continue
		}
		if !isOpen(r) {
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != r {
			return 0, &ScanError{Op: "backward-sexp", Pos: k}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return k, nil
		}
	}
	return 0, &ScanError{Op: "backward-sexp", Pos: 0}
}

// classify assigns every rune a syntactic class in one forward pass: line
// comments, nestable #| |# block comments, strings with escapes, and #\
// character literals. Everything else is code.
func classify(text []rune) []class {
	cls := make([]class, len(text))
	for i := 0; i < len(text); {
		r := text[i]
		switch {
		case r == ';':
			for i < len(text) && text[i] != '\n' {
				cls[i] = classComment
				i++
			}
		case r == '#' && i+1 < len(text) && text[i+1] == '|':
			depth := 0
			for i < len(text) {
				if text[i] == '#' && i+1 < len(text) && text[i+1] == '|' {
					cls[i], cls[i+1] = classComment, classComment
					i += 2
					depth++
					continue
				}
				if text[i] == '|' && i+1 < len(text) && text[i+1] == '#' {
					cls[i], cls[i+1] = classComment, classComment
					i += 2
					depth--
					if depth == 0 {
						break
					}
					continue
				}
				cls[i] = classComment
				i++
			}
		case r == '#' && i+1 < len(text) && text[i+1] == '\\':
			cls[i], cls[i+1] = classChar, classChar
			i += 2
			if i < len(text) {
				cls[i] = classChar
				i++
			}
		case r == '"':
			cls[i] = classString
			i++
			for i < len(text) {
				cls[i] = classString
				if text[i] == '\\' && i+1 < len(text) {
					cls[i+1] = classString
					i += 2
					continue
				}
				if text[i] == '"' {
					i++
					break
				}
				i++
			}
		default:
			cls[i] = classCode
			i++
		}
	}
	return cls
}

func isOpen(r rune) bool   { return strings.ContainsRune(openers, r) }
func isClose(r rune) bool  { return strings.ContainsRune(closers, r) }
func isPrefix(r rune) bool { return strings.ContainsRune(prefixes, r) }

// isAtomRune reports whether r can be part of a symbol, number or boolean
// token. Quote marks terminate atoms because they prefix the next one.
func isAtomRune(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	switch r {
	case ';', '"', '\'', '`', ',':
		return false
	}
	return !isOpen(r) && !isClose(r)
}

func closerFor(open rune) rune {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func openerFor(close rune) rune {
	switch close {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}
