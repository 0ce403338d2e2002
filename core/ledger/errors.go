package ledger

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed ledger lookup.
type FailureKind string

const (
	// KindTimeout means the lookup exceeded its deadline.
	KindTimeout FailureKind = "timeout"
	// KindUnreachable means the service could not be reached at all.
	KindUnreachable FailureKind = "unreachable"
	// KindBadResponse means the service answered with a non-2xx status or
	// a body that could not be decoded.
	KindBadResponse FailureKind = "bad_response"
)

// Sentinel errors for matching with errors.Is.
var (
	ErrTimeout     = errors.New("ledger lookup timed out")
	ErrUnreachable = errors.New("ledger service unreachable")
	ErrBadResponse = errors.New("ledger returned a bad response")
)

// LookupError is the typed failure returned for any transport-level problem.
// It is never produced for an empty result set; zero rows is a valid answer.
type LookupError struct {
	Kind    FailureKind
	TableID string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger lookup failed (%s) for table %s: %v", e.Kind, e.TableID, e.Err)
	}
	return fmt.Sprintf("ledger lookup failed (%s) for table %s", e.Kind, e.TableID)
}

// Unwrap exposes both the kind sentinel and the underlying cause,
// so errors.Is(err, ErrTimeout) and errors.Is(err, context.DeadlineExceeded)
// both work.
func (e *LookupError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *LookupError) sentinel() error {
	switch e.Kind {
	case KindTimeout:
		return ErrTimeout
	case KindUnreachable:
		return ErrUnreachable
	default:
		return ErrBadResponse
	}
}

// IsLookupFailure reports whether err originates from a failed ledger lookup.
func IsLookupFailure(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}
