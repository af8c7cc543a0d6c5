// Package cdserrors defines the error taxonomy propagated unchanged from
// the pricer core to its callers: INVALID_INPUT, CURVE_BOOTSTRAP_FAILED,
// DATE_OUT_OF_RANGE, and NUMERICAL_INSTABILITY.
package cdserrors

import "fmt"

// Kind identifies which category of failure occurred.
type Kind string

const (
	InvalidInput         Kind = "INVALID_INPUT"
	CurveBootstrapFailed Kind = "CURVE_BOOTSTRAP_FAILED"
	DateOutOfRange       Kind = "DATE_OUT_OF_RANGE"
	NumericalInstability Kind = "NUMERICAL_INSTABILITY"
)

// Error is the carrier type for all core-originated errors. KnotIndex is -1
// when not applicable (only CurveBootstrapFailed sets it).
type Error struct {
	Kind      Kind
	Message   string
	KnotIndex int
	Err       error
}

func (e *Error) Error() string {
	if e.KnotIndex >= 0 {
		return fmt.Sprintf("%s: %s (knot %d)", e.Kind, e.Message, e.KnotIndex)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidInput builds an INVALID_INPUT error.
func NewInvalidInput(format string, args ...any) *Error {
	return &Error{Kind: InvalidInput, Message: fmt.Sprintf(format, args...), KnotIndex: -1}
}

// NewCurveBootstrapFailed builds a CURVE_BOOTSTRAP_FAILED error carrying the
// failing knot index.
func NewCurveBootstrapFailed(knotIndex int, format string, args ...any) *Error {
	return &Error{Kind: CurveBootstrapFailed, Message: fmt.Sprintf(format, args...), KnotIndex: knotIndex}
}

// NewDateOutOfRange builds a DATE_OUT_OF_RANGE error.
func NewDateOutOfRange(format string, args ...any) *Error {
	return &Error{Kind: DateOutOfRange, Message: fmt.Sprintf(format, args...), KnotIndex: -1}
}

// NewNumericalInstability builds a NUMERICAL_INSTABILITY error. This should
// not occur on well-formed inputs; it exists as a defensive backstop when
// the Taylor fallback still produces a non-finite result.
func NewNumericalInstability(format string, args ...any) *Error {
	return &Error{Kind: NumericalInstability, Message: fmt.Sprintf(format, args...), KnotIndex: -1}
}

// Wrap attaches a Kind to an existing error without discarding it, for use
// at package boundaries alongside fmt.Errorf("%w", ...) wrapping.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), KnotIndex: -1, Err: err}
}
