package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"festregistration/internal/delivery/http/helpers"
	"festregistration/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// ParticipantPayload is one participant in a registration submission.
type ParticipantPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	RollNo       string `json:"roll_no"`
	Course       string `json:"course"`
	Year         string `json:"year"`
	College      string `json:"college"`
	OtherCollege string `json:"other_college"`
}

func (p ParticipantPayload) validate(prefix string) []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, prefix+"name is required")
	}
	if p.Email == "" {
		errs = append(errs, prefix+"email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(p.Email)) {
		errs = append(errs, prefix+"email must be a valid email address")
	}
	if strings.TrimSpace(p.Phone) == "" {
		errs = append(errs, prefix+"phone is required")
	}
	return errs
}

func (p ParticipantPayload) toDomain() domain.Participant {
	return domain.Participant{
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(p.Email),
		Phone:        strings.TrimSpace(p.Phone),
		RollNo:       strings.TrimSpace(p.RollNo),
		Course:       strings.TrimSpace(p.Course),
		Year:         strings.TrimSpace(p.Year),
		College:      strings.TrimSpace(p.College),
		OtherCollege: strings.TrimSpace(p.OtherCollege),
	}
}

// SubmitRegistrationRequest is the request body for POST /events/{eventID}/registrations.
type SubmitRegistrationRequest struct {
	MainParticipant    ParticipantPayload   `json:"main_participant"`
	TeamMembers        []ParticipantPayload `json:"team_members"`
	CollegeIDReference string               `json:"college_id_reference"`
	Query              string               `json:"query"`
}

// Validate implements Validator. Team-size and duplicate rules belong to the
// service; this only checks presence and formats.
func (s SubmitRegistrationRequest) Validate() []string {
	errs := s.MainParticipant.validate("main_participant.")
	for i, m := range s.TeamMembers {
		errs = append(errs, m.validate("team_members["+strconv.Itoa(i)+"].")...)
	}
	if strings.TrimSpace(s.CollegeIDReference) == "" {
		errs = append(errs, "college_id_reference is required")
	}
	return errs
}

// SubmitRegistrationSuccessResponse is the success response envelope for
// POST /events/{eventID}/registrations (201 confirmed, 200 already registered).
type SubmitRegistrationSuccessResponse struct {
	Data  *domain.SubmissionResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// SubmitRegistration godoc
// @Summary Submit a registration for an event
// @Description Submits a registration with the main participant, optional team members, and a college-ID upload reference. A resubmission by an already-registered main participant returns 200 with the original token instead of an error.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (slug)"
// @Param body body SubmitRegistrationRequest true "Registration submission"
// @Success 201 {object} controllers.SubmitRegistrationSuccessResponse "data contains status confirmed, token, email_sent"
// @Success 200 {object} controllers.SubmitRegistrationSuccessResponse "data contains status already_registered and the original token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, team_size, or duplicate_contact"
// @Failure 403 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_registered (a team member is taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: persistence or internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SubmitRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	members := make([]domain.Participant, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		members = append(members, m.toDomain())
	}
	submission := &domain.RegistrationRequest{
		EventID:            eventID,
		MainParticipant:    req.MainParticipant.toDomain(),
		TeamMembers:        members,
		CollegeIDReference: strings.TrimSpace(req.CollegeIDReference),
		Query:              strings.TrimSpace(req.Query),
	}

	result, err := c.Service.Submit(r.Context(), submission)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	switch result.Status {
	case domain.SubmissionConfirmed:
		helpers.WriteJSONSuccess(w, http.StatusCreated, result)
	case domain.SubmissionAlreadyRegistered:
		helpers.WriteJSONSuccess(w, http.StatusOK, result)
	default:
		c.writeRejection(w, r, result.Reason)
	}
}

// writeRejection maps a typed rejection reason to a status code and writes the
// error envelope with the reason's stable kind as error.code and the reason
// itself as details.
func (c *RegistrationController) writeRejection(w http.ResponseWriter, r *http.Request, reason domain.RejectionReason) {
	if reason == nil {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "rejected without reason")
		return
	}
	var status int
	switch reason.Kind() {
	case "team_size", "duplicate_contact":
		status = http.StatusBadRequest
	case "already_registered":
		status = http.StatusConflict
	case "registration_closed":
		status = http.StatusForbidden
	case "persistence":
		status = http.StatusInternalServerError
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", reason)
	default:
		status = http.StatusInternalServerError
	}
	helpers.WriteJSONErrorDetails(w, status, reason.Kind(), reason.Error(), reason)
}

// ListRegistrationsResponse is the data payload for GET /admin/events/{eventID}/registrations (200).
type ListRegistrationsResponse struct {
	Items      []*domain.RegistrationRecord `json:"items"`
	Pagination helpers.PaginationMeta       `json:"pagination"`
}

// ListRegistrationsSuccessResponse is the success response envelope for GET /admin/events/{eventID}/registrations (200).
type ListRegistrationsSuccessResponse struct {
	Data  ListRegistrationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListEventRegistrations godoc
// @Summary List registrations for an event
// @Description Returns a paginated list of registrations for the event, newest first. Use page and page_size query params. Requires admin authentication.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (slug)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/registrations [get]
func (c *RegistrationController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	params := helpers.ParsePagination(r)
	recs, total, err := c.Service.ListByEvent(r.Context(), eventID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{Items: recs, Pagination: meta})
}
