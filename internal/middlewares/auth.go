package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
)

// Tokener extracts the session token from a request and reads the session id it carries
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetSessionID(ctx context.Context, tokenString string) (string, error)
}

// SessionGetter resolves a session id to the id of its user
type SessionGetter interface {
	Get(ctx context.Context, sessionID string) (int64, error)
}

type identityKey struct{}

type identity struct {
	userID    int64
	sessionID string
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	return id.userID, ok
}

// SessionIDFromContext returns the id of the session the request was authenticated with.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	return id.sessionID, ok
}

// WithIdentity returns a copy of ctx carrying an authenticated identity.
func WithIdentity(ctx context.Context, userID int64, sessionID string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{userID: userID, sessionID: sessionID})
}

var errUnauthorized = errors.New("Unauthorized")

// AuthMiddleware rejects requests without a live session with 401
func AuthMiddleware(tokener Tokener, sessions SessionGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, tokener, sessions)
			if err != nil {
				if errors.Is(err, errUnauthorized) {
					writeError(w, http.StatusUnauthorized, errUnauthorized.Error())
				} else {
					writeError(w, http.StatusInternalServerError, err.Error())
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches the identity when a live session is
// presented and otherwise lets the request through anonymously
func OptionalAuthMiddleware(tokener Tokener, sessions SessionGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ctx, err := authenticate(r, tokener, sessions); err == nil {
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(r *http.Request, tokener Tokener, sessions SessionGetter) (context.Context, error) {
	ctx := r.Context()

	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Debugw("no session token", "err", err)
		return nil, errUnauthorized
	}

	sessionID, err := tokener.GetSessionID(ctx, tokenString)
	if err != nil {
		logger.Log.Infow("authorization failed", "err", err)
		return nil, errUnauthorized
	}

	userID, err := sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			logger.Log.Infow("session expired or revoked", "session_id", sessionID)
			return nil, errUnauthorized
		}
		logger.Log.Errorw("failed to resolve session", "err", err)
		return nil, err
	}

	return WithIdentity(ctx, userID, sessionID), nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
