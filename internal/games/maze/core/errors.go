package core

import (
	"errors"
	"fmt"
)

// Errors returned by generation, decoding and player transitions.
// All of them are recoverable; match them with errors.Is.
var (
	ErrInsufficientSpace = errors.New("insufficient free cells")
	ErrMalformedLevel    = errors.New("malformed level")
	ErrOutOfBounds       = errors.New("target outside the grid")
	ErrBlocked           = errors.New("target not accessible")
	ErrNotDestructible   = errors.New("target not destructible")

	ErrInvalidSize      = errors.New("invalid maze size")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidFeature   = errors.New("invalid feature request")
	ErrNoCoin           = errors.New("no coin at coordinate")
)

// MalformedLevelError describes why a level text could not be decoded.
// Line is 1-based; 0 means the problem is not tied to a single line.
type MalformedLevelError struct {
	Line   int
	Reason string
}

func (e *MalformedLevelError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed level: line %d: %s", e.Line, e.Reason)
	}
	return "malformed level: " + e.Reason
}

// Unwrap makes errors.Is(err, ErrMalformedLevel) hold.
func (e *MalformedLevelError) Unwrap() error {
	return ErrMalformedLevel
}

func malformed(line int, format string, args ...any) error {
	return &MalformedLevelError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
