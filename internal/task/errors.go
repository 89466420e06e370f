package task

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every typed error below matches exactly one of them via errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("task not found")
	ErrIO              = errors.New("io error")
	ErrDeserialization = errors.New("deserialization error")
)

// ValidationError reports input that cannot become a task.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an operation on an id the store does not hold.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IOError wraps a filesystem failure during load or save.
type IOError struct {
	Op   string // "read", "write", "rename", "mkdir"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// DeserializationError reports persisted data that cannot be turned back into tasks.
// Path is a JSON-ish location such as "[2].text"; it is empty for document-level problems.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func (e *DeserializationError) Is(target error) bool { return target == ErrDeserialization }
