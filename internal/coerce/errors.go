package coerce

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/syntax"
)

// ErrUnknownFilter is wrapped when a sampling filter name is not recognised.
var ErrUnknownFilter = errors.New("unknown sampling filter")

// Error is a token that could not be converted to its declared type.
type Error struct {
	Op operation.ID
	// Arg is the 1-based argument position.
	Arg   int
	Token syntax.Token
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: argument %d (%q): %v", e.Op.Name(), e.Arg, e.Token.Text, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ArityError is a token count that does not match the operation's arity.
type ArityError struct {
	Op   operation.ID
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s takes %d argument(s) per invocation, got %d", e.Op.Name(), e.Want, e.Got)
}
