package app

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means the action needs a logged-in user. The store
	// raises the login prompt instead of a failure notice.
	ErrAuthRequired = errors.New("authentication required")
	// ErrAdminRequired guards the admin panels.
	ErrAdminRequired = errors.New("admin role required")
	// ErrCheckoutInFlight rejects a second purchase while one is being submitted.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// ValidationError is a local rejection; no request was sent.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// rejected shows the message of a local validation failure.
func (s *Store) rejected(err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		s.notice(ve.Msg)
		return
	}
	s.notice(err.Error())
}
