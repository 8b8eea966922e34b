package engine

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrRegistryNotInitialized = errors.New("backend registry is not initialized")
	ErrBackendNotFound        = errors.New("backend not found")
	ErrMalformedArtifact      = errors.New("malformed artifact")
	ErrInputMismatch          = errors.New("inputs do not match engine schema")
	ErrDeviceUnavailable      = errors.New("device unavailable")
)

// Kind classifies where a failure originated.
type Kind int

const (
	KindConfiguration Kind = iota + 1
	KindIO
	KindBackendResolution
	KindValidation
	KindExecution
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindIO:
		return "I/O error"
	case KindBackendResolution:
		return "backend resolution error"
	case KindValidation:
		return "validation error"
	case KindExecution:
		return "execution error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Code maps the kind onto a gRPC status code.
func (k Kind) Code() codes.Code {
	switch k {
	case KindConfiguration, KindValidation:
		return codes.InvalidArgument
	case KindIO:
		return codes.Unavailable
	case KindBackendResolution:
		return codes.FailedPrecondition
	case KindExecution:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: KindIO}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// GRPCStatus lets status.Code classify the error.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.Code(), e.Error())
}

func newError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// ConfigurationError wraps err as a KindConfiguration failure.
func ConfigurationError(op string, err error) error {
	return newError(KindConfiguration, op, err)
}

// IOError wraps err as a KindIO failure.
func IOError(op string, err error) error {
	return newError(KindIO, op, err)
}

// BackendResolutionError wraps err as a KindBackendResolution failure.
func BackendResolutionError(op string, err error) error {
	return newError(KindBackendResolution, op, err)
}

// ValidationError wraps err as a KindValidation failure.
func ValidationError(op string, err error) error {
	return newError(KindValidation, op, err)
}

// ExecutionError wraps err as a KindExecution failure.
func ExecutionError(op string, err error) error {
	return newError(KindExecution, op, err)
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
