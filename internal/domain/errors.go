package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDuplicateRegistration = errors.New("duplicate registration")
)

// ContactField identifies which contact identifier a duplicate was found on.
type ContactField string

const (
	ContactEmail ContactField = "email"
	ContactPhone ContactField = "phone"
)

// RejectionReason is a typed, client-renderable reason for rejecting a
// registration submission. Kind is stable and safe to switch on.
type RejectionReason interface {
	error
	Kind() string
}

// TeamSizeError reports a submission whose participant count is outside the
// event's team-size bounds.
type TeamSizeError struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Actual int `json:"actual"`
}

func (e *TeamSizeError) Error() string {
	return fmt.Sprintf("team size %d outside allowed range [%d, %d]", e.Actual, e.Min, e.Max)
}

func (e *TeamSizeError) Kind() string { return "team_size" }

// DuplicateContactError reports two participants in the same submission
// sharing an email or phone number.
type DuplicateContactError struct {
	Field ContactField `json:"field"`
	Value string       `json:"value"`
}

func (e *DuplicateContactError) Error() string {
	return fmt.Sprintf("duplicate %s %q within submission", e.Field, e.Value)
}

func (e *DuplicateContactError) Kind() string { return "duplicate_contact" }

// AlreadyRegisteredError reports a participant whose contact identifier is
// already registered for the event.
type AlreadyRegisteredError struct {
	Field ContactField `json:"field"`
	Value string       `json:"value"`
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s %q already registered for this event", e.Field, e.Value)
}

func (e *AlreadyRegisteredError) Kind() string { return "already_registered" }

// RegistrationClosedError reports a submission for an event whose effective
// registration status is not open.
type RegistrationClosedError struct {
	Status RegistrationStatus `json:"status"`
}

func (e *RegistrationClosedError) Error() string {
	return fmt.Sprintf("registration is %s for this event", e.Status)
}

func (e *RegistrationClosedError) Kind() string { return "registration_closed" }

// PersistenceError wraps a storage failure surfaced to the caller for retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Kind() string { return "persistence" }

func (e *PersistenceError) Unwrap() error { return e.Err }
