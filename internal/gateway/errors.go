package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/sharkgitz/eboxai/pkg/circuitbreaker"
)

// Kind classifies a failed backend call. The four kinds are the whole
// taxonomy the rest of the client reasons about: transport failure,
// server-side failure (5xx or undecodable payload), missing resource,
// and rejected mutation.
type Kind int

const (
	KindNetwork Kind = iota
	KindServer
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_failure"
	case KindServer:
		return "server_error"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_rejected"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every gateway operation.
type Error struct {
	Op     string // gateway operation, e.g. "list_emails"
	Kind   Kind
	Status int // HTTP status when one was received
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway %s: %s (status %d)", e.Op, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the taxonomy kind from err, if it is a gateway error.
func KindOf(err error) (Kind, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsRetryable reports whether a failed call is safe to retry and names
// the failure class. Mutating calls are never retried automatically
// regardless of this answer; it exists for manual refresh flows.
func IsRetryable(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	if errors.Is(err, context.Canceled) {
		return false, "context_canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true, "timeout"
	}
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return false, "circuit_open"
	}

	var jsonSyntax *json.SyntaxError
	var jsonType *json.UnmarshalTypeError
	if errors.As(err, &jsonSyntax) || errors.As(err, &jsonType) {
		return false, "malformed_payload"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	if k, ok := KindOf(err); ok {
		switch k {
		case KindServer:
			return true, "server_error"
		case KindNetwork:
			return true, "network_error"
		case KindNotFound:
			return false, "not_found"
		case KindValidation:
			return false, "validation_rejected"
		}
	}

	// Unknown errors are handled conservatively.
	return false, "unknown_error"
}
