package lispedit

import (
	"errors"
	"fmt"
)

// UserError is a terminal, user-facing condition: the current operation
// stops with a message and recovery is left to the caller (typically: fix
// the text and re-run). It is never fatal to the process.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

// Userf builds a UserError from a format string.
func Userf(format string, args ...any) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a UserError.
func IsUser(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
