package controllers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"regexp"
	"strings"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// maxUploadBytes caps the in-memory portion of multipart event bodies.
const maxUploadBytes = 10 << 20

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
// On update all fields are optional; empty fields keep their stored values.
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events (200).
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Images  domain.ImageStore
}

func NewEventController(logger *slog.Logger, svc domain.EventService, images domain.ImageStore) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Images:  images,
	}
}

// eventID extracts and validates the {eventID} path value. Writes a 400 and
// returns false on a malformed ID.
func eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("eventID")
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event id")
		return "", false
	}
	return id, true
}

// requesterID extracts the authenticated user ID set by the auth middleware.
func requesterID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", false
	}
	return claims.UserID, true
}

// parseEventBody reads an event payload from either a JSON body or a
// multipart form with an optional "image" file part. When an image is
// present it is handed to the image store and the stored path is set on
// the returned fields. Writes the error response itself and returns false
// on failure.
func (c *EventController) parseEventBody(w http.ResponseWriter, r *http.Request) (title, description, date, location, imagePath, imageContentType string, ok bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req EventRequest
		if !helpers.DecodeAndValidate(w, r, &req) {
			return "", "", "", "", "", "", false
		}
		return req.Title, req.Description, req.Date, req.Location, "", "", true
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return "", "", "", "", "", "", false
	}
	title = r.FormValue("title")
	description = r.FormValue("description")
	date = r.FormValue("date")
	location = r.FormValue("location")

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return title, description, date, location, "", "", true
	}
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid image upload")
		return "", "", "", "", "", "", false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	path, err := c.Images.Save(header.Filename, contentType, file)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, vErr.Error())
			return "", "", "", "", "", "", false
		}
		c.Logger.ErrorContext(r.Context(), "image save failed", "filename", header.Filename, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not store image")
		return "", "", "", "", "", "", false
	}
	return title, description, date, location, path, contentType, true
}

// Create godoc
// @Summary Create a new event
// @Description Creates an event owned by the authenticated user. Accepts JSON or a multipart form with an optional image file.
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requesterID(w, r)
	if !ok {
		return
	}
	title, description, date, location, imagePath, imageContentType, ok := c.parseEventBody(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Create(r.Context(), ownerID, domain.CreateEventInput{
		Title:            title,
		Description:      description,
		Date:             date,
		Location:         location,
		ImagePath:        imagePath,
		ImageContentType: imageContentType,
	})
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// List godoc
// @Summary List all events
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse "data contains all events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not list events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Get(r.Context(), id)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Updates the authenticated owner's event. Empty fields keep their stored values. Accepts JSON or a multipart form with an optional image file.
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body EventRequest true "Fields to update"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	title, description, date, location, imagePath, imageContentType, ok := c.parseEventBody(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Update(r.Context(), id, userID, domain.UpdateEventInput{
		Title:            title,
		Description:      description,
		Date:             date,
		Location:         location,
		ImagePath:        imagePath,
		ImageContentType: imageContentType,
	})
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the authenticated owner's event. Registrations for the event are removed with it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id, userID); err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// writeEventError maps service errors to API responses. Existence is reported
// before ownership, so 404 never leaks into 403 or vice versa.
func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(vErr.Fields, "; "))
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not the event owner")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
