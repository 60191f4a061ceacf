package errs

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a store failure so callers can react to the failure kind
// instead of a collapsed boolean/empty result.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not-found"
	KindValidation Kind = "validation"
)

// StoreErr is a failure from the remote data service or the asset store,
// tagged with the operation, the collection it touched and a Kind.
type StoreErr struct {
	Op         string
	Collection string
	Kind       Kind
	Cause      error
}

func (e *StoreErr) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Collection, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Collection, e.Kind)
}

func (e *StoreErr) Unwrap() error {
	return e.Cause
}

// NewStoreErr wraps cause, deriving the Kind from its gRPC status code.
func NewStoreErr(op, collection string, cause error) *StoreErr {
	return &StoreErr{
		Op:         op,
		Collection: collection,
		Kind:       kindFromCause(cause),
		Cause:      cause,
	}
}

// NewStoreErrKind wraps cause with an explicit Kind.
func NewStoreErrKind(op, collection string, kind Kind, cause error) *StoreErr {
	return &StoreErr{Op: op, Collection: collection, Kind: kind, Cause: cause}
}

// KindOf returns the Kind carried by err, or the empty string when err is
// not a StoreErr.
func KindOf(err error) Kind {
	var storeErr *StoreErr
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return ""
}

func kindFromCause(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}

	switch status.Code(err) {
	case codes.NotFound:
		return KindNotFound
	case codes.PermissionDenied, codes.Unauthenticated:
		return KindPermission
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return KindValidation
	default:
		// Unavailable, DeadlineExceeded, Aborted, Internal and anything the
		// transport could not classify all count as network failures.
		return KindNetwork
	}
}
