package services

import (
	"context"
	"errors"
	"fmt"

	"festregistration/internal/domain"
)

type eventQueryService struct {
	catalog     domain.EventCatalog
	eligibility *EligibilityEngine
}

// NewEventQueryService answers catalog queries with the global registration
// window applied to status-sensitive results.
func NewEventQueryService(catalog domain.EventCatalog, eligibility *EligibilityEngine) domain.EventQueryService {
	return &eventQueryService{catalog: catalog, eligibility: eligibility}
}

func (s *eventQueryService) ListEvents(ctx context.Context, day domain.FestDay, category domain.EventCategory) ([]*domain.EventRecord, error) {
	if err := validateFilters(day, category); err != nil {
		return nil, err
	}
	var (
		events []*domain.EventRecord
		err    error
	)
	switch {
	case day != "" && category != "":
		events, err = s.catalog.ByFestDay(day)
		if err == nil {
			filtered := events[:0:0]
			for _, ev := range events {
				if ev.Category == category {
					filtered = append(filtered, ev)
				}
			}
			events = filtered
		}
	case day != "":
		events, err = s.catalog.ByFestDay(day)
	case category != "":
		events, err = s.catalog.ByCategory(category)
	default:
		events = s.catalog.All()
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventRecord{}
	}
	return events, nil
}

// validateFilters rejects unknown filter values instead of letting them match
// nothing, so a typo surfaces as invalid input rather than an empty list.
func validateFilters(day domain.FestDay, category domain.EventCategory) error {
	switch day {
	case "", domain.FestDay1, domain.FestDay2:
	default:
		return fmt.Errorf("unknown fest day %q: %w", day, domain.ErrInvalidInput)
	}
	switch category {
	case "", domain.CategoryTechnical, domain.CategoryWorkshop, domain.CategoryGaming,
		domain.CategoryCreative, domain.CategorySeminar:
	default:
		return fmt.Errorf("unknown category %q: %w", category, domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventQueryService) GetEvent(ctx context.Context, eventID string) (*domain.EventRecord, error) {
	ev, err := s.catalog.ByID(eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

func (s *eventQueryService) EffectiveStatus(ctx context.Context, eventID string) (domain.RegistrationStatus, error) {
	ev, err := s.catalog.ByID(eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}
	return s.eligibility.EffectiveStatusForEvent(ev), nil
}

func (s *eventQueryService) ListOpenEvents(ctx context.Context) ([]*domain.EventRecord, error) {
	// The global switch can empty this list without touching any event.
	if !s.eligibility.GlobalOpen() {
		return []*domain.EventRecord{}, nil
	}
	events, err := s.catalog.FilterByField("registrationStatus", string(domain.RegistrationOpen))
	if err != nil {
		return nil, fmt.Errorf("list open events: %w", err)
	}
	if events == nil {
		events = []*domain.EventRecord{}
	}
	return events, nil
}
