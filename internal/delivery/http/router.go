package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /user/signup", userController.SignUp)
	mux.HandleFunc("POST /user/login", userController.Login)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.Create))
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.Delete))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/register", requireAuth(registrationController.Register))
	mux.HandleFunc("POST /events/{eventID}/unregister", requireAuth(registrationController.Unregister))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
