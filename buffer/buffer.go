package buffer

import (
	"strings"

	"github.com/iw2rmb/lispedit/internal/grapheme"
)

// Buffer is the document state: text plus a current position. The engine
// mutates it in place through Insert and Delete and keeps the position
// valid on every exit path.
type Buffer struct {
	lines [][]rune
	pos   int

	textVersion uint64
}

func New(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// TextVersion counts text mutations. Callers that record an insertion
// point and later splice text back compare versions to detect that the
// buffer changed underneath them.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

// Pos returns the current position as a rune offset.
func (b *Buffer) Pos() int { return b.pos }

func (b *Buffer) SetPos(off int) {
	b.pos = clampInt(off, 0, b.Len())
}

// Len returns the total document length in runes, newlines included.
func (b *Buffer) Len() int {
	total := 0
	for row, line := range b.lines {
		total += len(line)
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row without its trailing newline. Out-of-range
// rows are empty.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// RuneAt returns the rune at off; the separator between rows reads as
// '\n'. ok is false past the end of the document.
func (b *Buffer) RuneAt(off int) (r rune, ok bool) {
	p, ok := b.PosFromOffset(off)
	if !ok {
		return 0, false
	}
	if p.Col == len(b.lines[p.Row]) {
		if p.Row == len(b.lines)-1 {
			return 0, false
		}
		return '\n', true
	}
	return b.lines[p.Row][p.Col], true
}

// ColumnAt returns the display column of off within its line, counted in
// grapheme clusters.
func (b *Buffer) ColumnAt(off int) int {
	p, ok := b.PosFromOffset(off)
	if !ok {
		return 0
	}
	return grapheme.Count(string(b.lines[p.Row][:p.Col]))
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
