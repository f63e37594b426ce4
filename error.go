package pathcursor

import (
	"errors"
	"fmt"
)

// Error codes. These are never returned for "not found" results — see
// the Error type doc comment.
const (
	// ErrInvariant marks a broken internal bookkeeping invariant: a bug
	// in this package, not a caller mistake.
	ErrInvariant = 1
)

// Error is pathcursor's only error type. It is never produced by a
// normal "absent" query result — those are reported with a plain false,
// per Cursor's method docs. Error is reserved for internal invariant
// violations, the same role panics play in YottaDB-YDBGo's Conn/Node
// methods: a signal that the package itself is broken, not that the
// caller's path expression didn't match anything.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pathcursor: %s (code %d)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return nil
}

// Is reports whether target is an *Error with the same Code, so callers
// can use errors.Is(err, &pathcursor.Error{Code: pathcursor.ErrInvariant}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ErrorIs reports whether err is a pathcursor Error carrying code.
func ErrorIs(err error, code int) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

func newInvariantError(message string) *Error {
	return &Error{Code: ErrInvariant, Message: message}
}
