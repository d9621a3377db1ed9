package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/geo-articles/internal/logger"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps server-side sessions in Redis
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // fixed lifetime of every session
}

// NewSessionRepository creates a new repository whose sessions live for expiration
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// TTL returns the lifetime given to new sessions.
func (r *SessionRepository) TTL() time.Duration {
	return r.exp
}

// Create starts a session for userID and returns its opaque id
func (r *SessionRepository) Create(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()
	key := sessionKey(sessionID)

	err := r.client.Set(ctx, key, strconv.FormatInt(userID, 10), r.exp).Err()
	logger.Log.Debugw("session create", "key", key, "user_id", userID, "error", err)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sessionID, nil
}

// Get returns the user id of the session
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (int64, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Debugw("session get", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Errorw("session holds a malformed user id", "key", key, "value", val, "error", err)
		return 0, ErrSessionNotFound
	}
	return userID, nil
}

// Delete ends the session; deleting an unknown session is not an error
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := sessionKey(sessionID)

	n, err := r.client.Del(ctx, key).Result()
	logger.Log.Debugw("session delete", "key", key, "deleted", n, "error", err)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
