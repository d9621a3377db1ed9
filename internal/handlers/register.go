package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/sbilibin2017/geo-articles/internal/validation"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) (*models.UserProfile, string, error)
}

// CookieSetter writes the session cookie.
type CookieSetter interface {
	SetCookie(w http.ResponseWriter, token string)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,min=3,max=50"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: john_doe
	Username string `json:"username"`

	// example: john@example.com
	Email string `json:"email"`
}

// RegisterErrorResponse represents an error response for registration
// swagger:model RegisterErrorResponse
type RegisterErrorResponse struct {
	// Error message
	// default: Username or email already exists
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account and logs it in. Username and email must be unique. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered, session cookie set"
// @Failure 400 {object} handlers.RegisterErrorResponse "Username or email already exists / invalid request"
// @Failure 500 {object} handlers.RegisterErrorResponse
// @Router /register [post]
func NewRegisterHandler(svc Registerer, cookies CookieSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, RegisterErrorResponse{Error: "invalid request body"})
			return
		}
		if err := validation.ValidateStruct(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, RegisterErrorResponse{Error: err.Error()})
			return
		}

		profile, token, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeJSON(w, http.StatusBadRequest, RegisterErrorResponse{
					Error: "Username or email already exists",
				})
			case errors.Is(err, services.ErrPasswordTooLong):
				writeJSON(w, http.StatusBadRequest, RegisterErrorResponse{Error: err.Error()})
			default:
				writeInternalError(w, err)
			}
			return
		}

		cookies.SetCookie(w, token)
		writeJSON(w, http.StatusCreated, RegisterResponse{
			ID:       profile.ID,
			Username: profile.Username,
			Email:    profile.Email,
		})
	}
}
