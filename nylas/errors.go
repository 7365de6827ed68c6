package nylas

import (
	"errors"
	"fmt"
)

// Kind classifies the failure of a Nylas operation.
type Kind string

const (
	// KindValidation indicates malformed or missing input detected
	// before any network call was made.
	KindValidation Kind = "validation"

	// KindNetwork indicates a transport-level failure (DNS, connection
	// refused, timeout, cancellation) or an unexpected non-auth status
	// from the provider.
	KindNetwork Kind = "network"

	// KindAuth indicates the provider rejected the credentials, code or
	// token.
	KindAuth Kind = "authentication"

	// KindParse indicates the provider responded with a body that does
	// not match the expected shape.
	KindParse Kind = "parse"

	// KindPrecondition indicates an operation that requires an
	// authenticated client was called on an unauthenticated one.
	KindPrecondition Kind = "precondition"
)

// Error represents an error that occurred during a Nylas operation.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op is the operation that failed (e.g., "exchangeAccessToken").
	Op string

	// StatusCode is the HTTP status returned by the provider, if any.
	StatusCode int

	// Message is the provider's error message, surfaced verbatim when
	// available, or a local description of the failure.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("nylas %s: %s (%s): %v", e.Op, e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("nylas %s: %s: %s", e.Op, e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("nylas %s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("nylas %s: %s", e.Op, e.Kind)
	}
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
