package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// MessageResponse is the data payload for registration endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// MessageSuccessResponse is the success response envelope for registration endpoints (200).
type MessageSuccessResponse struct {
	Data  MessageResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

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

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated user for the event. Registering twice fails.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	if _, err := c.Service.Register(r.Context(), id, userID); err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "registered for event"})
}

// Unregister godoc
// @Summary Cancel an event registration
// @Description Removes the authenticated user's registration for the event. Fails if no registration exists.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/unregister [post]
func (c *RegistrationController) Unregister(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Unregister(r.Context(), id, userID); err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "registration cancelled"})
}

func (c *RegistrationController) writeRegistrationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeConflict, "already registered for this event")
	case errors.Is(err, domain.ErrNotRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "not registered for this event")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
