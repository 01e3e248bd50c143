package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// SignUpRequest is the request body for POST /user/signup.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate implements Validator. Field-level rules live in the service; this
// only rejects bodies with nothing to work with.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if s.Email == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginRequest is the request body for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Email == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthResponse is the data payload returned by signup and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// AuthSuccessResponse is the success response envelope for signup (201) and login (200).
type AuthSuccessResponse struct {
	Data  AuthResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Create a new account
// @Description Registers a user with email, password, and name. Returns the created user and a bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param user body SignUpRequest true "Signup data"
// @Success 201 {object} controllers.AuthSuccessResponse "data contains the user and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /user/signup [post]
func (c *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, vErr.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeConflict, "email already in use")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not create user")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, AuthResponse{
		Message: "user created",
		User:    user,
		Token:   token,
	})
}

// Login godoc
// @Summary Log in
// @Description Verifies email and password and returns the user and a bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.AuthSuccessResponse "data contains the user and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credentials"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /user/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not log in")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthResponse{
		Message: "login successful",
		User:    user,
		Token:   token,
	})
}
