package buffer

import "testing"

func TestReadText(t *testing.T) {
	b := New("ab\ncd\nef")
	cases := []struct {
		span Span
		want string
	}{
		{span: Span{Start: 0, End: 2}, want: "ab"},
		{span: Span{Start: 1, End: 4}, want: "b\nc"},
		{span: Span{Start: 0, End: 8}, want: "ab\ncd\nef"},
		{span: Span{Start: 3, End: 3}, want: ""},
		{span: Span{Start: 4, End: 1}, want: "b\nc"}, // normalized
	}
	for _, tc := range cases {
		if got := b.ReadText(tc.span); got != tc.want {
			t.Fatalf("read %v: got %q, want %q", tc.span, got, tc.want)
		}
	}
}

func TestInsert_SingleAndMultiLine(t *testing.T) {
	b := New("ab\ncd")
	b.Insert(1, "X")
	if got := b.Text(); got != "aXb\ncd" {
		t.Fatalf("text=%q", got)
	}
	if b.TextVersion() != 1 {
		t.Fatalf("text version=%d, want 1", b.TextVersion())
	}

	b.Insert(4, "1\n2")
	if got := b.Text(); got != "aXb\n1\n2cd" {
		t.Fatalf("text=%q", got)
	}
}

func TestInsert_ShiftsPositionAtOrAfterPoint(t *testing.T) {
	b := New("ab")
	b.SetPos(1)
	b.Insert(1, "XY")
	if got := b.Pos(); got != 3 {
		t.Fatalf("pos=%d, want 3 (position keeps pointing at 'b')", got)
	}
	b.SetPos(0)
	b.Insert(2, "Z")
	if got := b.Pos(); got != 0 {
		t.Fatalf("pos=%d, want 0 (insert after position)", got)
	}
}

func TestDelete_SpanAndPosition(t *testing.T) {
	b := New("ab\ncd")
	b.SetPos(4)
	b.Delete(Span{Start: 1, End: 4})
	if got := b.Text(); got != "ad" {
		t.Fatalf("text=%q, want %q", got, "ad")
	}
	if got := b.Pos(); got != 1 {
		t.Fatalf("pos=%d, want 1", got)
	}

	b = New("abcd")
	b.SetPos(2)
	b.Delete(Span{Start: 1, End: 3})
	if got := b.Pos(); got != 1 {
		t.Fatalf("pos inside deleted span=%d, want 1", got)
	}
}

func TestDelete_EmptySpanIsNoOp(t *testing.T) {
	b := New("ab")
	v := b.TextVersion()
	b.Delete(Span{Start: 1, End: 1})
	if b.TextVersion() != v {
		t.Fatalf("empty delete bumped text version")
	}
}
