package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	svc := services.NewUserService(mockReader, nil)
	ctx := context.Background()

	lat, lon := 1.5, 2.5
	mockReader.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(&models.UserDB{ID: 1, Username: "alice", Email: "a@example.com", PasswordHash: "h", Latitude: &lat, Longitude: &lon}, nil)

	profile, err := svc.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, &lat, profile.Latitude)

	mockReader.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, fmt.Errorf("get user: %w", sql.ErrNoRows))
	_, err = svc.Profile(ctx, 2)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	mockReader.EXPECT().GetByID(gomock.Any(), int64(3)).Return(nil, errors.New("db error"))
	_, err = svc.Profile(ctx, 3)
	assert.EqualError(t, err, "db error")
}

func TestUserService_UpdateLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(nil, mockWriter)

	tests := []struct {
		name      string
		point     geo.Point
		expectDB  bool
		writerErr error
		wantErr   error
	}{
		{
			name:     "stored",
			point:    geo.Point{Latitude: 10, Longitude: 20},
			expectDB: true,
		},
		{
			name:    "latitude out of range",
			point:   geo.Point{Latitude: 95, Longitude: 20},
			wantErr: geo.ErrInvalidCoordinates,
		},
		{
			name:      "user vanished",
			point:     geo.Point{Latitude: 1, Longitude: 1},
			expectDB:  true,
			writerErr: fmt.Errorf("update: %w", sql.ErrNoRows),
			wantErr:   services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectDB {
				mockWriter.EXPECT().
					UpdateLocation(gomock.Any(), int64(1), tt.point.Latitude, tt.point.Longitude).
					Return(tt.writerErr)
			}

			err := svc.UpdateLocation(context.Background(), 1, tt.point)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
