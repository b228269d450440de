package engine

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidBoard = errors.New("invalid board")
)

// IllegalMoveError is returned by ApplyMove when the move does not capture
// anything or targets an occupied or off-board cell.
type IllegalMoveError struct {
	Move   Move
	Color  PlayerColor
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s: %s", e.Move, e.Color, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

type InvalidBoardError struct {
	Reason string
}

func (e *InvalidBoardError) Error() string {
	return "invalid board: " + e.Reason
}

func (e *InvalidBoardError) Is(target error) bool {
	return target == ErrInvalidBoard
}

func invalidBoard(format string, args ...any) error {
	return &InvalidBoardError{Reason: fmt.Sprintf(format, args...)}
}
