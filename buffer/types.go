package buffer

// Pos points into the document by (row, col) in runes. Row and Col are
// 0-based.
type Pos struct {
	Row int
	Col int
}

// Span is a half-open rune-offset interval [Start, End).
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Normalize returns s with Start <= End.
func (s Span) Normalize() Span {
	if s.Start > s.End {
		return Span{Start: s.End, End: s.Start}
	}
	return s
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
