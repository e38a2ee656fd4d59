package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"festregistration/internal/delivery/http/helpers"
	"festregistration/internal/domain"
)

// maxContentBody caps PUT /admin/content/{section} bodies at 1 MiB.
const maxContentBody = 1 << 20

type ContentController struct {
	Logger  *slog.Logger
	Service domain.ContentService
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{
		Logger:  logger,
		Service: svc,
	}
}

// GetContent godoc
// @Summary Get a site-content section
// @Description Returns the JSON document stored for the section (about, council, sponsors, ...).
// @Tags content
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} helpers.APIResponse "data contains the section document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /content/{section} [get]
func (c *ContentController) GetContent(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	if section == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing section")
		return
	}
	body, err := c.Service.GetSection(r.Context(), section)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "section not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, body)
}

// PutContentResponse is the data payload for PUT /admin/content/{section} (200).
type PutContentResponse struct {
	Status string `json:"status"`
}

// PutContent godoc
// @Summary Replace a site-content section
// @Description Replaces the JSON document stored for the section. The body must be valid JSON. A subsequent GET observes the new document. Requires admin authentication.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section name"
// @Param body body object true "Section document (any JSON)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid JSON)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/content/{section} [put]
func (c *ContentController) PutContent(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	if section == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing section")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxContentBody+1))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "failed to read body")
		return
	}
	if len(body) > maxContentBody {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "body too large")
		return
	}
	if err := c.Service.PutSection(r.Context(), section, json.RawMessage(body)); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PutContentResponse{Status: "updated"})
}
