// Package apperr defines the error taxonomy shared by the store, the request
// lifecycle and the HTTP handlers.
package apperr

import "errors"

var (
	// ErrAuthenticationRequired: no session or the session is no longer valid.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrAuthorizationDenied: wrong role or the caller does not own the resource.
	ErrAuthorizationDenied = errors.New("authorization denied")
	// ErrNotFound: a referenced user or request does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUniquenessViolation: a unique column (email) already holds the value.
	ErrUniquenessViolation = errors.New("uniqueness violation")
	// ErrNotificationDelivery wraps email send failures. It is logged, never surfaced.
	ErrNotificationDelivery = errors.New("notification delivery failed")
	// ErrInvalidTransition: the request has already left the pending state.
	ErrInvalidTransition = errors.New("invalid request transition")
	// ErrInvalidAction: the action is neither accepted nor rejected.
	ErrInvalidAction = errors.New("invalid request action")
)

// Recoverable reports whether err belongs to the taxonomy handlers turn into a
// flash notice plus redirect.
func Recoverable(err error) bool {
	for _, target := range []error{
		ErrAuthenticationRequired,
		ErrAuthorizationDenied,
		ErrNotFound,
		ErrUniquenessViolation,
		ErrInvalidTransition,
		ErrInvalidAction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
