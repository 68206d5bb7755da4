package buffer

// PosFromOffset converts a rune offset to (row, col). ok is false when off
// lies outside [0, Len()].
func (b *Buffer) PosFromOffset(off int) (Pos, bool) {
	if off < 0 {
		return Pos{}, false
	}
	cur := 0
	for row, line := range b.lines {
		if off <= cur+len(line) {
			return Pos{Row: row, Col: off - cur}, true
		}
		cur += len(line)
		if row < len(b.lines)-1 {
			cur++
		}
	}
	return Pos{}, false
}

// OffsetFromPos converts (row, col) to a rune offset. ok is false when p
// does not name a position in the document.
func (b *Buffer) OffsetFromPos(p Pos) (int, bool) {
	if p.Row < 0 || p.Row >= len(b.lines) {
		return 0, false
	}
	if p.Col < 0 || p.Col > len(b.lines[p.Row]) {
		return 0, false
	}
	off := 0
	for row := 0; row < p.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + p.Col, true
}

// LineStart returns the offset of the first rune of row.
func (b *Buffer) LineStart(row int) int {
	off, ok := b.OffsetFromPos(Pos{Row: row})
	if !ok {
		return 0
	}
	return off
}
