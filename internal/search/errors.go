package search

import "errors"

// ErrAttemptsExhausted is returned when the search's attempts ceiling
// is reached before a complete grid (or a definitive dead end) is
// found.
var ErrAttemptsExhausted = errors.New("search: attempts ceiling exhausted")

// ErrNoSolution is returned when every reachable branch dead-ends
// within the attempts ceiling.
var ErrNoSolution = errors.New("search: no solution found")
