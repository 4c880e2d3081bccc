package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrLinkNotFound    = errors.New("link not found")
	ErrDuplicateNodeID = errors.New("duplicate node id")
	ErrDanglingLink    = errors.New("link references missing node")
	ErrInvalidStrength = errors.New("link strength out of range")
	ErrEmptyID         = errors.New("empty id")
)

// GraphError provides structured error information for model operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "BuildModel", "GetNode")
	Entity  string // Entity type ("node", "link")
	ID      string // Entity ID (if applicable)
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func nodeError(op, id string, cause error) error {
	return &GraphError{Op: op, Entity: "node", ID: id, Cause: cause}
}

func linkError(op, id string, cause error) error {
	return &GraphError{Op: op, Entity: "link", ID: id, Cause: cause}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrLinkNotFound)
}

// IsStructural returns true if the error indicates the source graph failed
// validation and must be corrected upstream.
func IsStructural(err error) bool {
	return errors.Is(err, ErrDuplicateNodeID) ||
		errors.Is(err, ErrDanglingLink) ||
		errors.Is(err, ErrInvalidStrength) ||
		errors.Is(err, ErrEmptyID)
}
