package buffer

import "strings"

// ReadText returns the text covered by s.
func (b *Buffer) ReadText(s Span) string {
	s = b.clampSpan(s)
	if s.IsEmpty() {
		return ""
	}
	start, _ := b.PosFromOffset(s.Start)
	end, _ := b.PosFromOffset(s.End)

	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[row]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

// Insert places text at off. The current position shifts right when it
// sits at or after the insertion point, so a position parked at the start
// of an expression keeps pointing at it.
func (b *Buffer) Insert(off int, text string) {
	if text == "" {
		return
	}
	off = clampInt(off, 0, b.Len())
	b.splice(Span{Start: off, End: off}, text)

	n := len([]rune(text))
	if b.pos >= off {
		b.pos += n
	}
}

// Delete removes the text covered by s. A current position inside s
// collapses to s.Start; positions after s shift left.
func (b *Buffer) Delete(s Span) {
	s = b.clampSpan(s)
	if s.IsEmpty() {
		return
	}
	b.splice(s, "")

	switch {
	case b.pos >= s.End:
		b.pos -= s.Len()
	case b.pos > s.Start:
		b.pos = s.Start
	}
}

func (b *Buffer) clampSpan(s Span) Span {
	s = s.Normalize()
	max := b.Len()
	return Span{
		Start: clampInt(s.Start, 0, max),
		End:   clampInt(s.End, 0, max),
	}
}

// splice is the single edit primitive: it replaces s with text and bumps
// the text version. Position bookkeeping belongs to the callers.
func (b *Buffer) splice(s Span, text string) {
	start, _ := b.PosFromOffset(s.Start)
	end, _ := b.PosFromOffset(s.End)

	prefix := append([]rune(nil), b.lines[start.Row][:start.Col]...)
	suffix := append([]rune(nil), b.lines[end.Row][end.Col:]...)

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	if len(parts) == 1 {
		line := append(prefix, []rune(parts[0])...)
		repl = append(repl, append(line, suffix...))
	} else {
		repl = append(repl, append(prefix, []rune(parts[0])...))
		for i := 1; i < len(parts)-1; i++ {
			repl = append(repl, []rune(parts[i]))
		}
		last := []rune(parts[len(parts)-1])
		repl = append(repl, append(last, suffix...))
	}

	out := make([][]rune, 0, start.Row+len(repl)+(len(b.lines)-end.Row-1))
	out = append(out, b.lines[:start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[end.Row+1:]...)
	b.lines = out
	b.textVersion++
}
