package maths

import (
	"errors"
	"fmt"
)

// Kind classifies why a computation failed.
type Kind int

const (
	// KindInvalidOperand is reported when an operand is not a usable integer.
	KindInvalidOperand Kind = iota + 1
	// KindDivisionByZero is reported when divide is called with b == 0.
	KindDivisionByZero
	// KindResultTooLarge is reported when the result is outside the allowed range.
	KindResultTooLarge
	// KindUnknownOperation is reported when the operation name is not recognized.
	KindUnknownOperation
)

// String returns the name of the kind as used in logs.
func (k Kind) String() string {
	switch k {
	case KindInvalidOperand:
		return "invalid_operand"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindResultTooLarge:
		return "result_too_large"
	case KindUnknownOperation:
		return "unknown_operation"
	case 0:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinel errors, one per kind. Use errors.Is to match an *Error against them.
var (
	ErrInvalidOperand   = &Error{Kind: KindInvalidOperand}
	ErrDivisionByZero   = &Error{Kind: KindDivisionByZero}
	ErrResultTooLarge   = &Error{Kind: KindResultTooLarge}
	ErrUnknownOperation = &Error{Kind: KindUnknownOperation}
)

// Error is the failure returned by validation and evaluation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// DefaultDetails is the detail string attached to every normalized failure.
const DefaultDetails = "An error occurred during computation"

// Payload is the structured error returned to callers in place of a result.
type Payload struct {
	Error   string  `json:"error"`
	Details *string `json:"details"`
}

// Normalize converts any error into a Payload. The error message becomes the
// payload error string and the details are always DefaultDetails.
func Normalize(err error) Payload {
	details := DefaultDetails
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Payload{Error: msg, Details: &details}
}

// KindOf returns the kind carried by err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
