package shipper

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error carries one of these and matches it with errors.Is.
var (
	// ErrValidation indicates caller-fixable input defects.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput indicates the input document could not be decoded.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBuild indicates a request could not be converted to a carrier payload.
	ErrBuild = errors.New("payload build failed")

	// ErrNetwork indicates a transport or HTTP-layer failure.
	ErrNetwork = errors.New("network error")

	// ErrCarrierAPI indicates the carrier accepted the request but reported a business failure.
	ErrCarrierAPI = errors.New("carrier api error")

	// ErrPersistence indicates local bookkeeping failed after a successful remote effect.
	ErrPersistence = errors.New("persistence warning")
)

// Sentinel errors for common outcomes.
var (
	// ErrShipmentIDRequired indicates an operation was called without a shipment ID.
	ErrShipmentIDRequired = errors.New("shipment ID is required")

	// ErrNoShipmentReturned indicates the carrier answered a create call without shipment data.
	ErrNoShipmentReturned = errors.New("no shipment data returned")

	// ErrLabelNotAvailable indicates the carrier returned no label.
	ErrLabelNotAvailable = errors.New("label not available")
)

// Error represents a classified failure of a carrier operation.
type Error struct {
	Kind       error
	Carrier    string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := e.Kind.Error()
	if e.Carrier != "" {
		prefix = e.Carrier + " " + prefix
	}
	if e.Code != "" {
		prefix = fmt.Sprintf("%s (%s)", prefix, e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the error kind, or another *Error with the same kind and code.
func (e *Error) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// NewError creates a new Error of the given kind.
func NewError(kind error, carrier, code, message string) *Error {
	return &Error{
		Kind:    kind,
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(carrier, message string, cause error) *Error {
	return NewError(ErrNetwork, carrier, "NETWORK", message).WithCause(cause).WithRetryable(true)
}

// NewCarrierAPIError builds an error from the carrier's failure notifications.
func NewCarrierAPIError(carrier, code string, messages []string) *Error {
	return NewError(ErrCarrierAPI, carrier, code, strings.Join(messages, "; "))
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *Error) WithStatusCode(code int) *Error {
	e.StatusCode = code
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// ValidationError lists every problem found in one validation pass.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "Validation errors: " + strings.Join(e.Problems, "; ")
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsRetryable returns true if the error is worth retrying by the caller.
func IsRetryable(err error) bool {
	var shipperErr *Error
	if errors.As(err, &shipperErr) {
		return shipperErr.Retryable
	}
	return errors.Is(err, ErrNetwork)
}

// Message returns the human readable part of err, without kind prefixes.
func Message(err error) string {
	var shipperErr *Error
	if errors.As(err, &shipperErr) && shipperErr.Message != "" {
		if shipperErr.Cause != nil && shipperErr.Kind == ErrNetwork {
			return shipperErr.Message + ": " + shipperErr.Cause.Error()
		}
		return shipperErr.Message
	}
	return err.Error()
}
