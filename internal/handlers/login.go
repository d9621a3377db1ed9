package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/sbilibin2017/geo-articles/internal/validation"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserProfile, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

// LoginErrorResponse represents an error response for login
// swagger:model LoginErrorResponse
type LoginErrorResponse struct {
	// Error message
	// default: Invalid credentials
	Error string `json:"error"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by email and password. Sets the session cookie and returns the profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} models.UserProfile "Session cookie set"
// @Failure 400 {object} handlers.LoginErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.LoginErrorResponse "Invalid credentials"
// @Failure 500 {object} handlers.LoginErrorResponse
// @Router /login [post]
func NewLoginHandler(svc Loginer, cookies CookieSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, LoginErrorResponse{Error: "invalid request body"})
			return
		}
		// missing credentials are bad credentials
		if err := validation.ValidateStruct(&req); err != nil {
			writeJSON(w, http.StatusUnauthorized, LoginErrorResponse{Error: "Invalid credentials"})
			return
		}

		profile, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeJSON(w, http.StatusUnauthorized, LoginErrorResponse{
					Error: "Invalid credentials",
				})
			default:
				writeInternalError(w, err)
			}
			return
		}

		cookies.SetCookie(w, token)
		writeJSON(w, http.StatusOK, profile)
	}
}
