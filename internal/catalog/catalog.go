// Package catalog holds the static fest event catalog. Records are loaded
// once at startup and never mutate; field filters are therefore memoized
// aggressively (1 hour TTL).
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"festregistration/internal/cache"
	"festregistration/internal/domain"
)

//go:embed events.json
var defaultEventsJSON []byte

// The catalog is immutable, so filter results can be cached for a long time;
// a restart is what changes catalog content.
const filterTTL = time.Hour

type filterKey struct {
	field string
	value string
}

// Catalog is an immutable in-memory event catalog with a cached ID index and
// memoized field filters.
type Catalog struct {
	events []*domain.EventRecord
	byID   map[string]*domain.EventRecord
	filter func(filterKey) ([]*domain.EventRecord, error)
}

// Load builds the catalog from the embedded default event data.
func Load() (*Catalog, error) {
	return LoadJSON(defaultEventsJSON)
}

// LoadJSON builds the catalog from a JSON array of event records, e.g. a
// content-store override of the embedded defaults.
func LoadJSON(data []byte) (*Catalog, error) {
	var events []*domain.EventRecord
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse event catalog: %w", err)
	}
	return New(events)
}

// New builds a catalog from the given records, validating catalog invariants.
func New(events []*domain.EventRecord) (*Catalog, error) {
	byID := make(map[string]*domain.EventRecord, len(events))
	for _, ev := range events {
		if err := validateEvent(ev); err != nil {
			return nil, err
		}
		if _, dup := byID[ev.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q: %w", ev.ID, domain.ErrInvalidInput)
		}
		byID[ev.ID] = ev
	}

	c := &Catalog{events: events, byID: byID}
	filterCache := cache.NewTTLCache[[]*domain.EventRecord](filterTTL)
	c.filter = cache.Memoize(filterCache,
		func(k filterKey) string { return k.field + "\x00" + k.value },
		c.filterUncached,
	)
	return c, nil
}

func validateEvent(ev *domain.EventRecord) error {
	if ev.ID == "" || ev.Name == "" {
		return fmt.Errorf("event id and name are required: %w", domain.ErrInvalidInput)
	}
	if ev.TeamSize.Min < 1 || ev.TeamSize.Max < ev.TeamSize.Min {
		return fmt.Errorf("event %q team size {min:%d max:%d} invalid: %w",
			ev.ID, ev.TeamSize.Min, ev.TeamSize.Max, domain.ErrInvalidInput)
	}
	switch ev.Category {
	case domain.CategoryTechnical, domain.CategoryWorkshop, domain.CategoryGaming,
		domain.CategoryCreative, domain.CategorySeminar:
	default:
		return fmt.Errorf("event %q has unknown category %q: %w", ev.ID, ev.Category, domain.ErrInvalidInput)
	}
	switch ev.FestDay {
	case domain.FestDay1, domain.FestDay2:
	default:
		return fmt.Errorf("event %q has unknown fest day %q: %w", ev.ID, ev.FestDay, domain.ErrInvalidInput)
	}
	switch ev.RegistrationStatus {
	case domain.RegistrationOpen, domain.RegistrationClosed, domain.RegistrationComingSoon:
	default:
		return fmt.Errorf("event %q has unknown registration status %q: %w", ev.ID, ev.RegistrationStatus, domain.ErrInvalidInput)
	}
	return nil
}

// ByID returns the event with the given ID or domain.ErrNotFound.
func (c *Catalog) ByID(id string) (*domain.EventRecord, error) {
	ev, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

// All returns every event in catalog order.
func (c *Catalog) All() []*domain.EventRecord {
	out := make([]*domain.EventRecord, len(c.events))
	copy(out, c.events)
	return out
}

// FilterByField returns the events whose field matches value. One level of
// nesting is supported ("teamSize.min"). Results are memoized per
// (field, value) pair.
func (c *Catalog) FilterByField(field, value string) ([]*domain.EventRecord, error) {
	return c.filter(filterKey{field: field, value: value})
}

func (c *Catalog) filterUncached(k filterKey) ([]*domain.EventRecord, error) {
	var out []*domain.EventRecord
	for _, ev := range c.events {
		got, err := fieldValue(ev, k.field)
		if err != nil {
			return nil, err
		}
		if got == k.value {
			out = append(out, ev)
		}
	}
	if out == nil {
		out = []*domain.EventRecord{}
	}
	return out, nil
}

// ByFestDay returns the events scheduled for the given fest day.
func (c *Catalog) ByFestDay(day domain.FestDay) ([]*domain.EventRecord, error) {
	return c.FilterByField("festDay", string(day))
}

// ByCategory returns the events in the given category.
func (c *Catalog) ByCategory(category domain.EventCategory) ([]*domain.EventRecord, error) {
	return c.FilterByField("category", string(category))
}

func fieldValue(ev *domain.EventRecord, field string) (string, error) {
	switch field {
	case "id":
		return ev.ID, nil
	case "name":
		return ev.Name, nil
	case "category":
		return string(ev.Category), nil
	case "festDay":
		return string(ev.FestDay), nil
	case "registrationStatus":
		return string(ev.RegistrationStatus), nil
	case "date":
		return ev.Date, nil
	case "venue":
		return ev.Venue, nil
	case "duration":
		return ev.Duration, nil
	case "speaker":
		return ev.Speaker, nil
	}
	if name, ok := strings.CutPrefix(field, "teamSize."); ok {
		switch name {
		case "min":
			return strconv.Itoa(ev.TeamSize.Min), nil
		case "max":
			return strconv.Itoa(ev.TeamSize.Max), nil
		}
	}
	return "", fmt.Errorf("unknown event field %q: %w", field, domain.ErrInvalidInput)
}
