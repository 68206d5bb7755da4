package sexp

import (
	"errors"
	"testing"

	"github.com/iw2rmb/lispedit/buffer"
)

func cursorAt(text string, pos int) (*buffer.Buffer, *Cursor) {
	b := buffer.New(text)
	b.SetPos(pos)
	return b, New(b)
}

func wantScanError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected scan error, got nil")
	}
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScanError, got %T: %v", err, err)
	}
}

func TestForwardSexp_Atoms(t *testing.T) {
	b, c := cursorAt("foo bar", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("first atom: %v", err)
	}
	if got := b.Pos(); got != 3 {
		t.Fatalf("pos=%d, want 3", got)
	}
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("second atom: %v", err)
	}
	if got := b.Pos(); got != 7 {
		t.Fatalf("pos=%d, want 7", got)
	}
	wantScanError(t, c.ForwardSexp())
}

func TestForwardSexp_NestedLists(t *testing.T) {
	b, c := cursorAt("(a (b c) [d])x", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := b.Pos(); got != 13 {
		t.Fatalf("pos=%d, want 13", got)
	}
}

func TestForwardSexp_StringIsOneExpression(t *testing.T) {
	b, c := cursorAt(`"a)b" c`, 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("string: %v", err)
	}
	if got := b.Pos(); got != 5 {
		t.Fatalf("pos=%d, want 5", got)
	}
}

func TestForwardSexp_SkipsComments(t *testing.T) {
	b, c := cursorAt("; hi\nfoo", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("after line comment: %v", err)
	}
	if got := b.Pos(); got != 8 {
		t.Fatalf("pos=%d, want 8", got)
	}

	b, c = cursorAt("#|a)|# foo", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("after block comment: %v", err)
	}
	if got := b.Pos(); got != 10 {
		t.Fatalf("pos=%d, want 10", got)
	}
}

func TestForwardSexp_QuotedList(t *testing.T) {
	b, c := cursorAt("'(a b)", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("quoted list: %v", err)
	}
	if got := b.Pos(); got != 6 {
		t.Fatalf("pos=%d, want 6", got)
	}
}

func TestForwardSexp_CharLiteralDelimiter(t *testing.T) {
	b, c := cursorAt(`#\) x`, 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("char literal: %v", err)
	}
	if got := b.Pos(); got != 3 {
		t.Fatalf("pos=%d, want 3", got)
	}
}

func TestForwardSexp_Unbalanced(t *testing.T) {
	_, c := cursorAt("(a b", 0)
	wantScanError(t, c.ForwardSexp())

	_, c = cursorAt("(a]", 0)
	wantScanError(t, c.ForwardSexp())

	_, c = cursorAt(") x", 0)
	wantScanError(t, c.ForwardSexp())
}

func TestBackwardSexp_AtomAndList(t *testing.T) {
	b, c := cursorAt("(f (g h))", 9)
	if err := c.BackwardSexp(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := b.Pos(); got != 0 {
		t.Fatalf("pos=%d, want 0", got)
	}

	b, c = cursorAt("[a 12]", 5)
	if err := c.BackwardSexp(); err != nil {
		t.Fatalf("atom: %v", err)
	}
	if got := b.Pos(); got != 3 {
		t.Fatalf("pos=%d, want 3", got)
	}
}

func TestBackwardSexp_IncludesPrefixes(t *testing.T) {
	b, c := cursorAt("x 'foo", 6)
	if err := c.BackwardSexp(); err != nil {
		t.Fatalf("quoted atom: %v", err)
	}
	if got := b.Pos(); got != 2 {
		t.Fatalf("pos=%d, want 2 (the quote belongs to the span)", got)
	}

	b, c = cursorAt("x '(a)", 6)
	if err := c.BackwardSexp(); err != nil {
		t.Fatalf("quoted list: %v", err)
	}
	if got := b.Pos(); got != 2 {
		t.Fatalf("pos=%d, want 2", got)
	}
}

func TestBackwardSexp_AtTopLevel(t *testing.T) {
	_, c := cursorAt("  foo", 1)
	wantScanError(t, c.BackwardSexp())
}

func TestDownList(t *testing.T) {
	b, c := cursorAt("x (a)", 0)
	if err := c.DownList(); err != nil {
		t.Fatalf("down: %v", err)
	}
	if got := b.Pos(); got != 3 {
		t.Fatalf("pos=%d, want 3", got)
	}

	_, c = cursorAt(") (a)", 0)
	wantScanError(t, c.DownList())

	_, c = cursorAt("atom only", 0)
	wantScanError(t, c.DownList())
}

func TestUpList(t *testing.T) {
	b, c := cursorAt("(a b)", 3)
	if err := c.UpList(); err != nil {
		t.Fatalf("up: %v", err)
	}
	if got := b.Pos(); got != 5 {
		t.Fatalf("pos=%d, want 5", got)
	}

	_, c = cursorAt("a b", 1)
	wantScanError(t, c.UpList())
}

func TestUpList_CrossesNestedStructure(t *testing.T) {
	b, c := cursorAt("[a (f x)]", 3)
	if err := c.UpList(); err != nil {
		t.Fatalf("up across nested list: %v", err)
	}
	if got := b.Pos(); got != 9 {
		t.Fatalf("pos=%d, want 9", got)
	}
}

func TestBackwardPrefix(t *testing.T) {
	b, c := cursorAt(",@foo", 2)
	c.BackwardPrefix()
	if got := b.Pos(); got != 0 {
		t.Fatalf("pos=%d, want 0", got)
	}
}

func TestUnquoteSplicing_IsPartOfTheSpan(t *testing.T) {
	b, c := cursorAt("x ,@(a b)", 9)
	if err := c.BackwardSexp(); err != nil {
		t.Fatalf("spliced list: %v", err)
	}
	if got := b.Pos(); got != 2 {
		t.Fatalf("pos=%d, want 2 (,@ belongs to the span)", got)
	}

	b, c = cursorAt(",@(a b)", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("forward over spliced list: %v", err)
	}
	if got := b.Pos(); got != 7 {
		t.Fatalf("pos=%d, want 7", got)
	}

	b, c = cursorAt("x ,@foo", 7)
	if err := c.BackwardSexp(); err != nil {
		t.Fatalf("spliced atom: %v", err)
	}
	if got := b.Pos(); got != 2 {
		t.Fatalf("pos=%d, want 2", got)
	}
}

func TestCursor_ResyncsAfterEdit(t *testing.T) {
	b, c := cursorAt("(a) (b)", 0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("first: %v", err)
	}
	b.Insert(0, "(x) ")
	b.SetPos(0)
	if err := c.ForwardSexp(); err != nil {
		t.Fatalf("after edit: %v", err)
	}
	if got := b.Pos(); got != 3 {
		t.Fatalf("pos=%d, want 3 (cursor must see the new text)", got)
	}
}
