package analysis

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis failed
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota
	KindOutOfBudget
	KindCancelled
	KindInternalInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid-input"
	case KindOutOfBudget:
		return "out-of-budget"
	case KindCancelled:
		return "cancelled"
	case KindInternalInvariant:
		return "internal-invariant"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrOutOfBudget       = errors.New("out of budget")
	ErrCancelled         = errors.New("analysis cancelled")
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// Error is returned by every engine entry point
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrOutOfBudget:
		return e.Kind == KindOutOfBudget
	case ErrCancelled:
		return e.Kind == KindCancelled
	case ErrInternalInvariant:
		return e.Kind == KindInternalInvariant
	default:
		return false
	}
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsCancelled reports whether err is a cancellation rather than a failure
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
