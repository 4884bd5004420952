package gridstate

import "errors"

// ErrConflictLetter is returned when a word's letter disagrees with a
// letter already committed to the grid at the same cell.
var ErrConflictLetter = errors.New("gridstate: conflicting letter")

// ErrOutOfBounds is returned when a placement would run past the edge
// of the grid.
var ErrOutOfBounds = errors.New("gridstate: placement out of bounds")

// ErrDuplicateWord is returned when a word is already present on the
// grid; the same word is never placed twice.
var ErrDuplicateWord = errors.New("gridstate: word already placed")

// ErrValidationFailed is returned when a placement, though letter-
// consistent, leaves some row or column unable to reach a stored liner,
// or a filled cell unable to reach a wordful one.
var ErrValidationFailed = errors.New("gridstate: placement fails liner validation")
