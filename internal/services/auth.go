package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (int64, error)
	UpdateLocation(ctx context.Context, id int64, latitude, longitude float64) error
}

// SessionStore keeps server-side sessions.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// TokenGenerator signs a session id into a client token.
type TokenGenerator interface {
	Generate(ctx context.Context, sessionID string) (string, error)
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	sessions SessionStore
	tokens   TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, sessions SessionStore, tokens TokenGenerator) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Register creates a user account and logs it in. It returns the new
// profile and the session token.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.UserProfile, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", ErrPasswordTooLong
		}
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	id, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Infow("user already exists", "username", username, "email", email)
			return nil, "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	token, err := svc.startSession(ctx, id)
	if err != nil {
		return nil, "", err
	}

	return &models.UserProfile{ID: id, Username: username, Email: email}, token, nil
}

// Login authenticates a user by email and password and returns the
// profile and a new session token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			logger.Log.Infow("login with unknown email", "email", email)
			return nil, "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user.Profile(), token, nil
}

// Logout destroys the server-side session.
func (svc *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := svc.sessions.Delete(ctx, sessionID); err != nil {
		logger.Log.Errorw("failed to delete session", "err", err)
		return err
	}
	return nil
}

func (svc *AuthService) startSession(ctx context.Context, userID int64) (string, error) {
	sessionID, err := svc.sessions.Create(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to create session", "user_id", userID, "err", err)
		return "", err
	}

	token, err := svc.tokens.Generate(ctx, sessionID)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "user_id", userID, "err", err)
		return "", err
	}
	return token, nil
}
