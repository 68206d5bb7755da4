package buffer

import "strings"

// IndentRigidly shifts the indentation of every continuation line of s by
// delta columns. A continuation line is one whose start lies after s.Start
// and at or before s.End. Blank lines keep their (empty) indentation, and negative
// deltas never eat past existing leading whitespace. This is the re-flow
// primitive applied after a structural edit moves the first line of a
// multi-line expression.
func (b *Buffer) IndentRigidly(s Span, delta int) {
	s = b.clampSpan(s)
	if delta == 0 || s.IsEmpty() {
		return
	}
	start, _ := b.PosFromOffset(s.Start)
	end, _ := b.PosFromOffset(s.End)

	changed := false
	for row := start.Row + 1; row <= end.Row && row < len(b.lines); row++ {
		line := b.lines[row]
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if delta > 0 {
			pad := make([]rune, delta)
			for i := range pad {
				pad[i] = ' '
			}
			b.lines[row] = append(pad, line...)
			changed = true
			continue
		}
		lead := 0
		for lead < len(line) && (line[lead] == ' ' || line[lead] == '\t') {
			lead++
		}
		rm := -delta
		if rm > lead {
			rm = lead
		}
		if rm > 0 {
			b.lines[row] = line[rm:]
			changed = true
		}
	}
	if changed {
		b.textVersion++
		b.pos = clampInt(b.pos, 0, b.Len())
	}
}
