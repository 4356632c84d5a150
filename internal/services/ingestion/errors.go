package ingestion

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes for the webhook pipeline. Handlers map these onto HTTP
// status codes; everything here is terminal for the request.
var (
	// ErrConfiguration is returned when the server-side webhook secret is
	// not configured. Reported before any payload parsing.
	ErrConfiguration = errors.New("webhook secret is not configured")

	// ErrUnauthorized is returned for a missing or mismatched credential.
	ErrUnauthorized = errors.New("invalid webhook credential")

	errNoAccounts        = errors.New("no account found to own the invoice")
	errAmbiguousAccounts = errors.New("multiple accounts found, cannot resolve owner")
)

// ValidationError names the required fields missing from a notification.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// DependencyError wraps a failure of an external collaborator (directory,
// allocator, storage). The underlying message is surfaced to the caller as
// a debugging affordance; the endpoint is already authenticated.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("ingestion: %s failed: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
