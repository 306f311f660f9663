package model

import "errors"

var (
	// ErrOutOfBounds is raised (as a panic) when a coordinate outside the
	// grid reaches Grid.Get or Grid.Set.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidCoordinate is raised for meaningless coordinate arguments,
	// such as swapping a square with itself or an unparsable square name.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	ErrMalformedBoardText  = errors.New("malformed board text")
	ErrInvalidGrid         = errors.New("invalid grid")
	ErrInconsistentHistory = errors.New("inconsistent move history")
)
