package services

import (
	"time"

	"festregistration/internal/cache"
	"festregistration/internal/domain"
)

// globalOpenTTL bounds how stale the cached global-window answer may be. The
// master switch and deadline rarely change within a session.
const globalOpenTTL = 60 * time.Second

// EligibilitySettings are the process-wide registration controls, injected at
// construction so they can be toggled without a redeploy and tested with both
// values.
type EligibilitySettings struct {
	// MasterEnabled is the kill switch. When false every event's effective
	// status is closed, regardless of its own status.
	MasterEnabled bool
	// Deadline is the end of the registration window. Nil means open-ended.
	Deadline *time.Time
}

// EligibilityEngine computes whether registration is currently open, globally
// and per event. The global switch can only downgrade an event's status to
// closed, never upgrade it.
type EligibilityEngine struct {
	settings EligibilitySettings
	now      func() time.Time
	window   *cache.TTLCache[bool]
}

// NewEligibilityEngine returns an engine for the given settings.
func NewEligibilityEngine(settings EligibilitySettings) *EligibilityEngine {
	return &EligibilityEngine{
		settings: settings,
		now:      time.Now,
		window:   cache.NewTTLCache[bool](globalOpenTTL),
	}
}

// SetClock overrides the engine's time source, including the one the window
// cache expires entries against. Tests only.
func (e *EligibilityEngine) SetClock(now func() time.Time) {
	e.now = now
	e.window.SetClock(now)
	e.window.Clear()
}

// GlobalOpen reports whether the global registration window is open: the
// master switch is on and the deadline, if any, has not passed. The answer is
// cached for 60 seconds.
func (e *EligibilityEngine) GlobalOpen() bool {
	if open, ok := e.window.Get("global"); ok {
		return open
	}
	open := e.computeGlobalOpen()
	e.window.Set("global", open)
	return open
}

func (e *EligibilityEngine) computeGlobalOpen() bool {
	if !e.settings.MasterEnabled {
		return false
	}
	if e.settings.Deadline == nil {
		return true
	}
	return !e.now().After(*e.settings.Deadline)
}

// EffectiveStatusForEvent returns the event's registration status after
// applying the global window.
func (e *EligibilityEngine) EffectiveStatusForEvent(ev *domain.EventRecord) domain.RegistrationStatus {
	return e.EffectiveStatusForRaw(ev.RegistrationStatus)
}

// EffectiveStatusForRaw applies the global window to a bare status value.
func (e *EligibilityEngine) EffectiveStatusForRaw(status domain.RegistrationStatus) domain.RegistrationStatus {
	if !e.GlobalOpen() {
		return domain.RegistrationClosed
	}
	return status
}
