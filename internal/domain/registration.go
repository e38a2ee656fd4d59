package domain

import (
	"context"
	"time"
)

// Participant is one person on a registration, main participant or team member.
// swagger:model Participant
type Participant struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	RollNo       string `json:"roll_no"`
	Course       string `json:"course"`
	Year         string `json:"year"`
	College      string `json:"college"`
	OtherCollege string `json:"other_college,omitempty"`
}

// RegistrationRequest is one registration submission. It lives only for the
// duration of the submission; durable state belongs to the RegistrationStore.
// swagger:model RegistrationRequest
type RegistrationRequest struct {
	EventID            string        `json:"event_id"`
	MainParticipant    Participant   `json:"main_participant"`
	TeamMembers        []Participant `json:"team_members,omitempty"`
	CollegeIDReference string        `json:"college_id_reference"`
	Query              string        `json:"query,omitempty"`
}

// AllParticipants returns the main participant followed by the team members,
// in submission order.
func (r *RegistrationRequest) AllParticipants() []Participant {
	out := make([]Participant, 0, 1+len(r.TeamMembers))
	out = append(out, r.MainParticipant)
	out = append(out, r.TeamMembers...)
	return out
}

// RegistrationRecord is a persisted registration.
// swagger:model RegistrationRecord
type RegistrationRecord struct {
	Token              string        `json:"token"`
	EventID            string        `json:"event_id"`
	MainParticipant    Participant   `json:"main_participant"`
	TeamMembers        []Participant `json:"team_members,omitempty"`
	CollegeIDReference string        `json:"college_id_reference"`
	Query              string        `json:"query,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

// NewRegistrationRecord builds a record from a request. Token is set by the
// store on create.
func NewRegistrationRecord(req *RegistrationRequest, createdAt time.Time) *RegistrationRecord {
	return &RegistrationRecord{
		EventID:            req.EventID,
		MainParticipant:    req.MainParticipant,
		TeamMembers:        req.TeamMembers,
		CollegeIDReference: req.CollegeIDReference,
		Query:              req.Query,
		CreatedAt:          createdAt,
	}
}

// RegistrationStore defines storage operations for registrations.
//
// Create must enforce uniqueness of (event, email) and (event, phone)
// atomically; the in-process duplicate checks are a fast-fail pre-check only,
// and the store is the final arbiter under concurrent submissions.
type RegistrationStore interface {
	// Exists reports whether any participant with the given contact value is
	// already registered for the event.
	Exists(ctx context.Context, eventID string, field ContactField, value string) (bool, error)
	// FindToken returns the token of the registration containing the given
	// contact value, or ErrNotFound.
	FindToken(ctx context.Context, eventID string, field ContactField, value string) (string, error)
	// Create persists the record and returns its token. Returns
	// ErrDuplicateRegistration when a unique index rejects the write.
	Create(ctx context.Context, rec *RegistrationRecord) (string, error)
	// ListByEvent returns one page of registrations for an event plus the
	// total count.
	ListByEvent(ctx context.Context, eventID string, p PaginationParams) ([]*RegistrationRecord, int, error)
}

// SubmissionStatus is the outcome class of a registration submission.
type SubmissionStatus string

const (
	SubmissionConfirmed         SubmissionStatus = "confirmed"
	SubmissionAlreadyRegistered SubmissionStatus = "already_registered"
	SubmissionRejected          SubmissionStatus = "rejected"
)

// SubmissionResult is the outcome of one registration submission.
//
// EmailSent is meaningful only for confirmed results: the registration itself
// is the durable side effect, so a failed confirmation email downgrades
// EmailSent rather than failing the submission.
type SubmissionResult struct {
	Status    SubmissionStatus `json:"status"`
	Token     string           `json:"token,omitempty"`
	EmailSent bool             `json:"email_sent"`
	Reason    RejectionReason  `json:"reason,omitempty"`
}

// RegistrationService accepts registration submissions.
type RegistrationService interface {
	// Submit runs the full pipeline: size check, duplicate checks,
	// eligibility, persistence, confirmation email. A resubmission by an
	// already-registered main participant returns the original token with
	// status already_registered instead of an error.
	Submit(ctx context.Context, req *RegistrationRequest) (*SubmissionResult, error)
	// ListByEvent returns one page of registrations for an event.
	ListByEvent(ctx context.Context, eventID string, p PaginationParams) ([]*RegistrationRecord, int, error)
}
