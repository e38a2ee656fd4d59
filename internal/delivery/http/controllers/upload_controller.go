package controllers

import (
	"log/slog"
	"net/http"

	"festregistration/internal/delivery/http/helpers"
	"festregistration/internal/domain"
)

// maxUploadSize caps college-ID uploads at 5 MiB.
const maxUploadSize = 5 << 20

type UploadController struct {
	Logger *slog.Logger
	Store  domain.FileStore
}

func NewUploadController(logger *slog.Logger, store domain.FileStore) *UploadController {
	return &UploadController{
		Logger: logger,
		Store:  store,
	}
}

// UploadResponse is the data payload for POST /uploads (201).
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadSuccessResponse is the success response envelope for POST /uploads (201).
type UploadSuccessResponse struct {
	Data  UploadResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Upload godoc
// @Summary Upload a college-ID document
// @Description Accepts a multipart form with a "file" field and returns an opaque URL to reference in a registration submission as college_id_reference.
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "College ID image or PDF (max 5 MiB)"
// @Success 201 {object} controllers.UploadSuccessResponse "data contains the file URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /uploads [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form or file too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := c.Store.Upload(r.Context(), header.Filename, file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "upload failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadResponse{URL: url})
}
