package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"festregistration/internal/delivery/http/helpers"
	"festregistration/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventQueryService
}

func NewEventController(logger *slog.Logger, svc domain.EventQueryService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.EventRecord `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListEvents godoc
// @Summary List fest events
// @Description Returns the event catalog, optionally filtered by fest day and category. Registration statuses are the events' own; use /events/{eventID}/status or /events/open for values adjusted by the global registration switch.
// @Tags events
// @Produce json
// @Param fest_day query string false "Filter by fest day (day1 or day2)"
// @Param category query string false "Filter by category (technical, workshop, gaming, creative, seminar)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown day or category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	day := domain.FestDay(r.URL.Query().Get("fest_day"))
	category := domain.EventCategory(r.URL.Query().Get("category"))

	events, err := c.Service.ListEvents(r.Context(), day, category)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.EventRecord{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.EventRecord `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns a single event with its own registration status; see /events/{eventID}/status for the value adjusted by the global registration switch.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (slug)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// EventStatusResponse is the data payload for GET /events/{eventID}/status (200).
type EventStatusResponse struct {
	EventID string                    `json:"event_id"`
	Status  domain.RegistrationStatus `json:"status"`
}

// EventStatusSuccessResponse is the success response envelope for GET /events/{eventID}/status (200).
type EventStatusSuccessResponse struct {
	Data  EventStatusResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// GetEventStatus godoc
// @Summary Get an event's effective registration status
// @Description Returns the event's registration status after applying the global registration switch and deadline. The switch can only close registration, never open it.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (slug)"
// @Success 200 {object} controllers.EventStatusSuccessResponse "data contains event_id and status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [get]
func (c *EventController) GetEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	status, err := c.Service.EffectiveStatus(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{EventID: eventID, Status: status})
}

// ListOpenEvents godoc
// @Summary List events currently open for registration
// @Description Returns only events whose effective registration status is open. Empty when the global registration switch is off.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse "data is an array of open events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/open [get]
func (c *EventController) ListOpenEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListOpenEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.EventRecord{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
