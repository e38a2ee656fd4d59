package services

import (
	"context"
	"strings"

	"festregistration/internal/domain"
)

// ContactLookup answers whether a contact value is already registered for an
// event. It is injected so the validator stays free of storage concerns.
type ContactLookup func(ctx context.Context, eventID string, field domain.ContactField, value string) (bool, error)

// TeamCompositionValidator checks a proposed registration against an event's
// team-size bounds and detects duplicate contact identifiers.
//
// Duplicate precedence is deterministic: every email is checked before any
// phone number, and participants are scanned in submission order (main
// participant first). The first collision found is the one reported.
type TeamCompositionValidator struct{}

// NewTeamCompositionValidator returns a validator.
func NewTeamCompositionValidator() *TeamCompositionValidator {
	return &TeamCompositionValidator{}
}

// ValidateSize checks that total participants (main included) fall within the
// event's team-size bounds. Returns nil when valid.
func (v *TeamCompositionValidator) ValidateSize(ev *domain.EventRecord, total int) *domain.TeamSizeError {
	if total < ev.TeamSize.Min || total > ev.TeamSize.Max {
		return &domain.TeamSizeError{Min: ev.TeamSize.Min, Max: ev.TeamSize.Max, Actual: total}
	}
	return nil
}

// ValidateNoInternalDuplicates scans the submitted participants for a shared
// email (case-insensitive) or phone number (exact). Returns nil when all
// contact identifiers are distinct.
func (v *TeamCompositionValidator) ValidateNoInternalDuplicates(participants []domain.Participant) *domain.DuplicateContactError {
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		email := normalizeEmail(p.Email)
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			return &domain.DuplicateContactError{Field: domain.ContactEmail, Value: email}
		}
		seen[email] = struct{}{}
	}

	clear(seen)
	for _, p := range participants {
		phone := strings.TrimSpace(p.Phone)
		if phone == "" {
			continue
		}
		if _, dup := seen[phone]; dup {
			return &domain.DuplicateContactError{Field: domain.ContactPhone, Value: phone}
		}
		seen[phone] = struct{}{}
	}
	return nil
}

// ValidateAgainstPersisted checks each participant's email and phone against
// already-persisted registrations for the event via the injected lookup.
// The first return value is the rejection reason (nil when clear); the second
// is an infrastructure error from the lookup itself.
func (v *TeamCompositionValidator) ValidateAgainstPersisted(
	ctx context.Context,
	eventID string,
	participants []domain.Participant,
	lookup ContactLookup,
) (*domain.AlreadyRegisteredError, error) {
	for _, p := range participants {
		email := normalizeEmail(p.Email)
		if email == "" {
			continue
		}
		exists, err := lookup(ctx, eventID, domain.ContactEmail, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return &domain.AlreadyRegisteredError{Field: domain.ContactEmail, Value: email}, nil
		}
	}
	for _, p := range participants {
		phone := strings.TrimSpace(p.Phone)
		if phone == "" {
			continue
		}
		exists, err := lookup(ctx, eventID, domain.ContactPhone, phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return &domain.AlreadyRegisteredError{Field: domain.ContactPhone, Value: phone}, nil
		}
	}
	return nil, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
