package rewriter

import (
	"context"
	"errors"
	"strings"

	"github.com/iw2rmb/lispedit"
	"github.com/iw2rmb/lispedit/buffer"
	"github.com/iw2rmb/lispedit/requires"
)

// Splice inserts the collaborator's block at the insertion point recorded
// by requires.Kill. version must be the buffer's text version captured
// when the point was recorded; the reply arrives out of process, and if
// the buffer changed in between Splice refuses and leaves the buffer
// alone. An empty block means delete only.
func Splice(buf *buffer.Buffer, at int, version uint64, block string) error {
	if buf.TextVersion() != version {
		return lispedit.Userf("buffer changed while waiting for the rewriter")
	}
	if block == "" {
		return nil
	}
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}
	buf.Insert(at, block)
	return nil
}

// TidyBuffer kills the top-level requires and splices the collaborator's
// tidied block back at the recorded point. The kill happens before the
// request, so a failed request leaves the requires already deleted; the
// caller recovers by reverting the buffer.
func TidyBuffer(ctx context.Context, buf *buffer.Buffer, c Client) error {
	at, forms, found, err := requires.Kill(buf)
	if err != nil {
		return err
	}
	if !found {
		return lispedit.Userf("no top-level requires found")
	}
	version := buf.TextVersion()
	block, err := c.Tidy(ctx, forms)
	if err != nil {
		return userFacing(err)
	}
	return Splice(buf, at, version, block)
}

// TrimBuffer asks the collaborator which requires the program actually
// uses and rewrites the buffer to just those. The reply is checked before
// any mutation: a syntax-error reply aborts with the buffer untouched.
func TrimBuffer(ctx context.Context, buf *buffer.Buffer, c Client, path string) error {
	return checkedRewrite(ctx, buf, path, c.Trim)
}

// BaseBuffer rewrites the requires for a racket/base program, adding what
// the fuller language provided implicitly. Like TrimBuffer, the reply is
// checked before any mutation.
func BaseBuffer(ctx context.Context, buf *buffer.Buffer, c Client, path string) error {
	return checkedRewrite(ctx, buf, path, c.BaseConvert)
}

func checkedRewrite(ctx context.Context, buf *buffer.Buffer, path string,
	call func(context.Context, string, []requires.Form) (string, error)) error {

	forms, err := requires.Find(buf)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		return lispedit.Userf("no top-level requires found")
	}

	block, err := call(ctx, path, forms)
	if err != nil {
		return userFacing(err)
	}

	at, _, found, err := requires.Kill(buf)
	if err != nil {
		return err
	}
	if !found {
		return lispedit.Userf("no top-level requires found")
	}
	return Splice(buf, at, buf.TextVersion(), block)
}

func userFacing(err error) error {
	if errors.Is(err, ErrSourceSyntax) {
		return lispedit.Userf("syntax error in source")
	}
	return err
}
