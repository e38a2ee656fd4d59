package domain

import "context"

// EventCategory classifies an event within the fest programme.
type EventCategory string

const (
	CategoryTechnical EventCategory = "technical"
	CategoryWorkshop  EventCategory = "workshop"
	CategoryGaming    EventCategory = "gaming"
	CategoryCreative  EventCategory = "creative"
	CategorySeminar   EventCategory = "seminar"
)

// FestDay is one of the two calendar days of the fest.
type FestDay string

const (
	FestDay1 FestDay = "day1"
	FestDay2 FestDay = "day2"
)

// RegistrationStatus is an event's intrinsic registration status, before the
// global switch is applied.
type RegistrationStatus string

const (
	RegistrationOpen       RegistrationStatus = "open"
	RegistrationClosed     RegistrationStatus = "closed"
	RegistrationComingSoon RegistrationStatus = "coming-soon"
)

// TeamSize bounds the number of participants for an event, main participant
// included. Max == 1 means an individual-only event.
type TeamSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// EventRecord is a single fest event. Records are loaded once at startup and
// never mutate afterwards.
// swagger:model EventRecord
type EventRecord struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Category           EventCategory      `json:"category"`
	FestDay            FestDay            `json:"fest_day"`
	TeamSize           TeamSize           `json:"team_size"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	Date               string             `json:"date"`
	Time               string             `json:"time"`
	Venue              string             `json:"venue"`
	Duration           string             `json:"duration"`
	Speaker            string             `json:"speaker,omitempty"`
	Prizes             []string           `json:"prizes,omitempty"`
	Coordinators       []string           `json:"coordinators,omitempty"`
	Rules              []string           `json:"rules,omitempty"`
	Instructions       string             `json:"instructions,omitempty"`
	Resources          string             `json:"resources,omitempty"`
}

// IsTeamEvent reports whether the event admits more than one participant.
func (e *EventRecord) IsTeamEvent() bool {
	return e.TeamSize.Max > 1
}

// EventCatalog provides read access to the static event catalog.
type EventCatalog interface {
	ByID(id string) (*EventRecord, error)
	All() []*EventRecord
	FilterByField(field, value string) ([]*EventRecord, error)
	ByFestDay(day FestDay) ([]*EventRecord, error)
	ByCategory(category EventCategory) ([]*EventRecord, error)
}

// EventQueryService answers catalog queries with the global registration
// switch applied.
type EventQueryService interface {
	ListEvents(ctx context.Context, day FestDay, category EventCategory) ([]*EventRecord, error)
	GetEvent(ctx context.Context, eventID string) (*EventRecord, error)
	EffectiveStatus(ctx context.Context, eventID string) (RegistrationStatus, error)
	ListOpenEvents(ctx context.Context) ([]*EventRecord, error)
}
