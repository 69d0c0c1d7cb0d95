package chess

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move")

	// 以下两个只会出现在 InvariantError 里：调用方没遵守 apply/undo 纪律
	ErrKingMissing   = errors.New("king missing")
	ErrStaleSnapshot = errors.New("stale or mismatched snapshot")
)

// InvariantError is the panic value used when board bookkeeping is broken by
// the caller. It is a programming error, not a game condition.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("chess: invariant violated in %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func violate(op string, err error) {
	panic(&InvariantError{Op: op, Err: err})
}
