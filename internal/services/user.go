package services

import (
	"context"

	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
)

// UserService serves the authenticated user's own profile.
type UserService struct {
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{reader: reader, writer: writer}
}

// Profile returns the profile of userID.
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	return user.Profile(), nil
}

// UpdateLocation stores the user's current position.
func (s *UserService) UpdateLocation(ctx context.Context, userID int64, p geo.Point) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.writer.UpdateLocation(ctx, userID, p.Latitude, p.Longitude); err != nil {
		if repositories.IsNotFound(err) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to update location", "user_id", userID, "err", err)
		return err
	}
	return nil
}
