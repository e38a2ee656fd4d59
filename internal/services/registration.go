package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"festregistration/internal/domain"
)

type registrationService struct {
	catalog      domain.EventCatalog
	validator    *TeamCompositionValidator
	eligibility  *EligibilityEngine
	store        domain.RegistrationStore
	emailService domain.EmailService
	logger       *slog.Logger
	emailTimeout time.Duration
	now          func() time.Time
}

// NewRegistrationService creates the registration submission coordinator.
// emailTimeout bounds the confirmation-email send; a timeout or send failure
// never fails the submission.
func NewRegistrationService(
	catalog domain.EventCatalog,
	validator *TeamCompositionValidator,
	eligibility *EligibilityEngine,
	store domain.RegistrationStore,
	emailService domain.EmailService,
	logger *slog.Logger,
	emailTimeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		catalog:      catalog,
		validator:    validator,
		eligibility:  eligibility,
		store:        store,
		emailService: emailService,
		logger:       logger,
		emailTimeout: emailTimeout,
		now:          time.Now,
	}
}

// Submit runs one submission through the pipeline: size check, internal
// duplicate check, persisted duplicate check, eligibility check, persistence,
// confirmation email. Validation and conflict outcomes are returned inside the
// result; the error return is reserved for malformed requests (ErrNotFound,
// ErrInvalidInput) and context failures.
func (s *registrationService) Submit(ctx context.Context, req *domain.RegistrationRequest) (*domain.SubmissionResult, error) {
	if strings.TrimSpace(req.CollegeIDReference) == "" {
		return nil, fmt.Errorf("college_id_reference is required: %w", domain.ErrInvalidInput)
	}

	ev, err := s.catalog.ByID(req.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Cheap, purely local checks run before anything that touches storage.
	total := 1 + len(req.TeamMembers)
	if reason := s.validator.ValidateSize(ev, total); reason != nil {
		return rejected(reason), nil
	}
	if reason := s.validator.ValidateNoInternalDuplicates(req.AllParticipants()); reason != nil {
		return rejected(reason), nil
	}

	// A resubmission by an already-registered main participant is answered
	// with the original token, not an error, so the client can be redirected
	// to the same confirmation view.
	if result, err := s.findExisting(ctx, ev.ID, req.MainParticipant); err != nil {
		return rejected(&domain.PersistenceError{Op: "lookup registration", Err: err}), nil
	} else if result != nil {
		return result, nil
	}

	if reason, err := s.validator.ValidateAgainstPersisted(ctx, ev.ID, req.TeamMembers, s.store.Exists); err != nil {
		return rejected(&domain.PersistenceError{Op: "lookup registration", Err: err}), nil
	} else if reason != nil {
		return rejected(reason), nil
	}

	if status := s.eligibility.EffectiveStatusForEvent(ev); status != domain.RegistrationOpen {
		return rejected(&domain.RegistrationClosedError{Status: status}), nil
	}

	rec := domain.NewRegistrationRecord(req, s.now())
	token, err := s.store.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRegistration) {
			return s.resolveDuplicateCreate(ctx, ev.ID, req)
		}
		return rejected(&domain.PersistenceError{Op: "create registration", Err: err}), nil
	}

	emailSent := s.sendConfirmation(ctx, ev, req, token)
	return &domain.SubmissionResult{
		Status:    domain.SubmissionConfirmed,
		Token:     token,
		EmailSent: emailSent,
	}, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.RegistrationRecord, int, error) {
	if _, err := s.catalog.ByID(eventID); err != nil {
		return nil, 0, err
	}
	recs, total, err := s.store.ListByEvent(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	if recs == nil {
		recs = []*domain.RegistrationRecord{}
	}
	return recs, total, nil
}

// findExisting checks whether the main participant is already registered, by
// email first, then phone. Returns the already_registered result when found.
func (s *registrationService) findExisting(ctx context.Context, eventID string, main domain.Participant) (*domain.SubmissionResult, error) {
	probes := []struct {
		field domain.ContactField
		value string
	}{
		{domain.ContactEmail, normalizeEmail(main.Email)},
		{domain.ContactPhone, strings.TrimSpace(main.Phone)},
	}
	for _, probe := range probes {
		if probe.value == "" {
			continue
		}
		token, err := s.store.FindToken(ctx, eventID, probe.field, probe.value)
		if err == nil {
			return &domain.SubmissionResult{
				Status: domain.SubmissionAlreadyRegistered,
				Token:  token,
			}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// resolveDuplicateCreate handles a unique-index rejection from the store:
// a concurrent submission won the race between our pre-check and the write.
// The store's verdict is final; we only decide which participant collided.
func (s *registrationService) resolveDuplicateCreate(ctx context.Context, eventID string, req *domain.RegistrationRequest) (*domain.SubmissionResult, error) {
	if result, err := s.findExisting(ctx, eventID, req.MainParticipant); err == nil && result != nil {
		return result, nil
	}
	reason, err := s.validator.ValidateAgainstPersisted(ctx, eventID, req.AllParticipants(), s.store.Exists)
	if err == nil && reason != nil {
		return rejected(reason), nil
	}
	return rejected(&domain.PersistenceError{Op: "create registration", Err: domain.ErrDuplicateRegistration}), nil
}

// sendConfirmation sends the confirmation email, bounded by the configured
// timeout. Failure is logged and reported via the returned flag only; the
// registration is already durable.
func (s *registrationService) sendConfirmation(ctx context.Context, ev *domain.EventRecord, req *domain.RegistrationRequest, token string) bool {
	sendCtx, cancel := context.WithTimeout(ctx, s.emailTimeout)
	defer cancel()

	members := make([]string, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		members = append(members, m.Name)
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:       req.MainParticipant.Email,
		Name:        req.MainParticipant.Name,
		EventName:   ev.Name,
		EventDate:   ev.Date,
		EventVenue:  ev.Venue,
		Token:       token,
		TeamMembers: members,
	}
	if err := s.emailService.SendRegistrationConfirmation(sendCtx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email not sent",
			"event_id", ev.ID, "token", token, "err", err)
		return false
	}
	return true
}

func rejected(reason domain.RejectionReason) *domain.SubmissionResult {
	return &domain.SubmissionResult{Status: domain.SubmissionRejected, Reason: reason}
}
