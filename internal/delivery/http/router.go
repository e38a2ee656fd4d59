package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "festregistration/docs"
	"festregistration/internal/delivery/http/controllers"
	"festregistration/internal/delivery/http/helpers"
	"festregistration/internal/delivery/http/middleware"
	"festregistration/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	events *controllers.EventController,
	registrations *controllers.RegistrationController,
	content *controllers.ContentController,
	auth *controllers.AuthController,
	uploads *controllers.UploadController,
	uploadDir string,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdmin(verifier, logger)

	// Event catalog. The literal /events/open segment wins over {eventID}.
	mux.HandleFunc("GET /events", events.ListEvents)
	mux.HandleFunc("GET /events/open", events.ListOpenEvents)
	mux.HandleFunc("GET /events/{eventID}", events.GetEvent)
	mux.HandleFunc("GET /events/{eventID}/status", events.GetEventStatus)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", registrations.SubmitRegistration)
	mux.HandleFunc("GET /admin/events/{eventID}/registrations", requireAdmin(registrations.ListEventRegistrations))

	// Site content
	mux.HandleFunc("GET /content/{section}", content.GetContent)
	mux.HandleFunc("PUT /admin/content/{section}", requireAdmin(content.PutContent))

	// Auth
	mux.HandleFunc("POST /auth/login", auth.Login)

	// College-ID uploads
	mux.HandleFunc("POST /uploads", uploads.Upload)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
