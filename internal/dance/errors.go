package dance

import (
	"errors"
	"fmt"
)

// Domain errors for move parsing and application.
var (
	// ErrMalformedMove indicates text that is not a valid move.
	ErrMalformedMove = errors.New("dance: malformed move")

	// ErrUnknownToken indicates a partner move naming a token absent from the state.
	ErrUnknownToken = errors.New("dance: unknown token")

	// ErrOutOfRange indicates a spin size or exchange position outside the state.
	ErrOutOfRange = errors.New("dance: index out of range")

	// ErrDuplicateToken indicates an alphabet that repeats a token.
	ErrDuplicateToken = errors.New("dance: duplicate token")
)

// ParseError wraps ErrMalformedMove with the offending text.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrMalformedMove, e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedMove
}

// MoveError records which move of a round failed.
type MoveError struct {
	Index   int
	Move    string
	Wrapped error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %d (%s): %v", e.Index, e.Move, e.Wrapped)
}

func (e *MoveError) Unwrap() error {
	return e.Wrapped
}
