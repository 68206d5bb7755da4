package requires

import (
	"strings"

	"github.com/iw2rmb/lispedit/buffer"
	"github.com/iw2rmb/lispedit/sexp"
)

type located struct {
	span buffer.Span
	form Form
}

// locate scans the buffer top to bottom for require forms opening in
// column 0, resolving each to its full balanced span and parsed shape.
// The scan resumes after each form, so multi-line forms are matched once.
func locate(buf *buffer.Buffer) ([]located, error) {
	cur := sexp.New(buf)
	save := buf.Pos()
	defer buf.SetPos(save)

	var out []located
	for row := 0; row < buf.LineCount(); {
		if !opensRequire(buf.Line(row)) {
			row++
			continue
		}
		start := buf.LineStart(row)
		buf.SetPos(start)
		if err := cur.ForwardSexp(); err != nil {
			// Unbalanced at end of buffer: nothing more to match.
			row++
			continue
		}
		span := buffer.Span{Start: start, End: buf.Pos()}
		form, err := Parse(buf.ReadText(span))
		if err != nil {
			return nil, err
		}
		out = append(out, located{span: span, form: form})
		endPos, ok := buf.PosFromOffset(span.End)
		if !ok {
			break
		}
		row = endPos.Row + 1
	}
	return out, nil
}

// opensRequire reports whether line begins a top-level require form: an
// opening delimiter in column 0 immediately followed by the keyword and a
// token boundary.
func opensRequire(line string) bool {
	if line == "" || (line[0] != '(' && line[0] != '[') {
		return false
	}
	rest := line[1:]
	if !strings.HasPrefix(rest, Keyword) {
		return false
	}
	tail := rest[len(Keyword):]
	if tail == "" {
		return true
	}
	switch tail[0] {
	case ' ', '\t', '(', ')', '[', ']':
		return true
	}
	return false
}

// Find collects every top-level require form in source order without
// mutating the buffer. Calling it twice on an unchanged buffer yields
// identical results.
func Find(buf *buffer.Buffer) ([]Form, error) {
	locs, err := locate(buf)
	if err != nil {
		return nil, err
	}
	forms := make([]Form, 0, len(locs))
	for _, l := range locs {
		forms = append(forms, l.form)
	}
	return forms, nil
}

// Kill deletes every top-level require form, collapsing the blank lines
// the deletions leave behind, and reports the offset where the first form
// began, the single insertion point for replacement text. found is false
// when the buffer holds no top-level require forms.
func Kill(buf *buffer.Buffer) (at int, forms []Form, found bool, err error) {
	locs, err := locate(buf)
	if err != nil {
		return 0, nil, false, err
	}
	if len(locs) == 0 {
		return 0, nil, false, nil
	}

	at = locs[0].span.Start
	forms = make([]Form, 0, len(locs))
	for _, l := range locs {
		forms = append(forms, l.form)
	}

	// Delete back to front so earlier spans, and the recorded insertion
	// point, keep their offsets.
	for i := len(locs) - 1; i >= 0; i-- {
		deleteFormSpan(buf, locs[i].span)
	}
	return at, forms, true, nil
}

func deleteFormSpan(buf *buffer.Buffer, s buffer.Span) {
	buf.Delete(s)
	p, ok := buf.PosFromOffset(s.Start)
	if !ok {
		return
	}
	if strings.TrimSpace(buf.Line(p.Row)) != "" {
		return
	}
	start := buf.LineStart(p.Row)
	end := start + len([]rune(buf.Line(p.Row)))
	if p.Row < buf.LineCount()-1 {
		end++ // take the newline with the blank line
	}
	buf.Delete(buffer.Span{Start: start, End: end})
}

// HasSubmoduleForms reports whether module+ or module* forms appear
// anywhere in the buffer. Requires needed only inside such submodules can
// be among those Kill removes, so destructive rewrites should be confirmed
// with the user first. This is a textual heuristic, not scope analysis.
func HasSubmoduleForms(buf *buffer.Buffer) bool {
	text := buf.Text()
	return strings.Contains(text, "(module+") || strings.Contains(text, "(module*")
}
