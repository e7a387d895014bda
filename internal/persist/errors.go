// Package persist converts documents to and from bytes and files.
package persist

import (
	"errors"
	"fmt"
)

// ErrDecode indicates stored bytes could not be decoded.
var ErrDecode = errors.New("cannot decode document")

// OperationError represents an error that occurred during a specific
// storage operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "load", "upload")
	Target string // Target of the operation (e.g., file path, document id)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
