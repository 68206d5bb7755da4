package rewriter

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/lispedit"
	"github.com/iw2rmb/lispedit/buffer"
	"github.com/iw2rmb/lispedit/requires"
)

type fakeClient struct {
	block string
	err   error

	gotOp    Op
	gotPath  string
	gotForms []requires.Form
}

func (f *fakeClient) Tidy(_ context.Context, forms []requires.Form) (string, error) {
	f.gotOp, f.gotForms = OpTidy, forms
	return f.block, f.err
}

func (f *fakeClient) Trim(_ context.Context, path string, forms []requires.Form) (string, error) {
	f.gotOp, f.gotPath, f.gotForms = OpTrim, path, forms
	return f.block, f.err
}

func (f *fakeClient) BaseConvert(_ context.Context, path string, forms []requires.Form) (string, error) {
	f.gotOp, f.gotPath, f.gotForms = OpBase, path, forms
	return f.block, f.err
}

func TestSplice_InsertsAtRecordedPoint(t *testing.T) {
	b := buffer.New("#lang racket\nbody\n")
	if err := Splice(b, 13, b.TextVersion(), "(require a)"); err != nil {
		t.Fatalf("splice: %v", err)
	}
	want := "#lang racket\n(require a)\nbody\n"
	if got := b.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestSplice_EmptyBlockMeansDeleteOnly(t *testing.T) {
	b := buffer.New("body\n")
	if err := Splice(b, 0, b.TextVersion(), ""); err != nil {
		t.Fatalf("splice: %v", err)
	}
	if got := b.Text(); got != "body\n" {
		t.Fatalf("text=%q, want unchanged", got)
	}
}

func TestSplice_RefusesStaleVersion(t *testing.T) {
	b := buffer.New("body\n")
	version := b.TextVersion()
	b.Insert(0, "zzz ")
	err := Splice(b, 0, version, "(require a)")
	if err == nil {
		t.Fatalf("expected stale-version error")
	}
	if !lispedit.IsUser(err) {
		t.Fatalf("expected user-facing error, got %T: %v", err, err)
	}
	if got := b.Text(); got != "zzz body\n" {
		t.Fatalf("text=%q, splice must not touch a changed buffer", got)
	}
}

func TestTidyBuffer_KillsAndSplices(t *testing.T) {
	b := buffer.New("#lang racket\n(require b)\n(require a)\nbody\n")
	fake := &fakeClient{block: "(require a b)"}
	if err := TidyBuffer(context.Background(), b, fake); err != nil {
		t.Fatalf("tidy: %v", err)
	}
	want := "#lang racket\n(require a b)\nbody\n"
	if got := b.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if len(fake.gotForms) != 2 {
		t.Fatalf("collaborator saw %d forms, want 2", len(fake.gotForms))
	}
}

func TestTidyBuffer_NoRequires(t *testing.T) {
	b := buffer.New("body\n")
	err := TidyBuffer(context.Background(), b, &fakeClient{})
	if err == nil || !lispedit.IsUser(err) {
		t.Fatalf("expected user-facing no-requires error, got %v", err)
	}
}

func TestTidyBuffer_PreservesSpecUnion(t *testing.T) {
	b := buffer.New("(require a)\n(require b (for-syntax c))\nbody\n")
	original, err := requires.Find(b)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var union []requires.Spec
	for _, f := range original {
		union = append(union, f.Specs...)
	}

	fake := &fakeClient{block: "(require a b (for-syntax c))"}
	if err := TidyBuffer(context.Background(), b, fake); err != nil {
		t.Fatalf("tidy: %v", err)
	}

	after, err := requires.Find(b)
	if err != nil {
		t.Fatalf("find after tidy: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("forms after tidy=%d, want 1", len(after))
	}
	if diff := cmp.Diff(union, after[0].Specs); diff != "" {
		t.Fatalf("spec union mismatch (-want +got):\n%s", diff)
	}
}

func TestTrimBuffer_SyntaxErrorLeavesBufferUntouched(t *testing.T) {
	b := buffer.New("(require a)\nbody\n")
	before := b.Text()
	err := TrimBuffer(context.Background(), b, &fakeClient{err: ErrSourceSyntax}, "/tmp/f.rkt")
	if err == nil || !lispedit.IsUser(err) {
		t.Fatalf("expected user-facing syntax error, got %v", err)
	}
	if got := b.Text(); got != before {
		t.Fatalf("buffer mutated on syntax error: %q", got)
	}
}

func TestBaseBuffer_PassesPath(t *testing.T) {
	b := buffer.New("(require a)\nbody\n")
	fake := &fakeClient{block: "(require racket/base a)"}
	if err := BaseBuffer(context.Background(), b, fake, "/tmp/f.rkt"); err != nil {
		t.Fatalf("base: %v", err)
	}
	if fake.gotOp != OpBase || fake.gotPath != "/tmp/f.rkt" {
		t.Fatalf("collaborator saw op=%q path=%q", fake.gotOp, fake.gotPath)
	}
	want := "(require racket/base a)\nbody\n"
	if got := b.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
