// Package apperrors defines the error taxonomy shared by all domain
// packages. Each error wraps one sentinel kind so callers can branch with
// errors.Is and the HTTP layer can map kinds to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced entity id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness rule, roster cap, or terminal-state
	// re-transition was violated.
	ErrConflict = errors.New("conflict")
	// ErrValidation means a field value is out of range or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidState means a lifecycle precondition was not met.
	ErrInvalidState = errors.New("invalid state")
	// ErrGateway means a payment-gateway call failed.
	ErrGateway = errors.New("gateway error")
	// ErrWebhookVerification means a webhook signature did not verify.
	// Always fatal for the ingesting call; nothing is mutated.
	ErrWebhookVerification = errors.New("webhook verification failed")
	// ErrUnauthorized means the caller's credentials are missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a message and the sentinel kind it belongs to.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

func Validationf(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

func InvalidStatef(format string, args ...any) error {
	return newf(ErrInvalidState, format, args...)
}

func Gatewayf(format string, args ...any) error {
	return newf(ErrGateway, format, args...)
}

func WebhookVerificationf(format string, args ...any) error {
	return newf(ErrWebhookVerification, format, args...)
}

func Unauthorizedf(format string, args ...any) error {
	return newf(ErrUnauthorized, format, args...)
}
