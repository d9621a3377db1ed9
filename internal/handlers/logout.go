package handlers

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/middlewares"
)

// Logouter ends a session.
type Logouter interface {
	Logout(ctx context.Context, sessionID string) error
}

// CookieClearer expires the session cookie.
type CookieClearer interface {
	ClearCookie(w http.ResponseWriter)
}

// NewLogoutHandler returns an HTTP handler that ends the current session.
// @Summary Log out
// @Description Destroys the server-side session and expires the session cookie
// @Tags auth
// @Produce json
// @Security SessionCookie
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /logout [post]
func NewLogoutHandler(svc Logouter, cookies CookieClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := middlewares.SessionIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			writeInternalError(w, err)
			return
		}

		cookies.ClearCookie(w)
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
	}
}
