package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockSessions := services.NewMockSessionStore(ctrl)
	mockTokens := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockSessions, mockTokens)

	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		saveID     int64
		saveErr    error
		sessionErr error
		tokenErr   error
		wantErr    error
		wantToken  string
	}{
		{
			name:      "successful registration",
			username:  "alice",
			email:     "alice@example.com",
			password:  "pass123",
			saveID:    1,
			wantToken: "token-1",
		},
		{
			name:     "user already exists",
			username: "bob",
			email:    "bob@example.com",
			password: "pass123",
			saveErr:  fmt.Errorf("save user: %w", repositories.ErrUniqueViolation),
			wantErr:  services.ErrUserAlreadyExists,
		},
		{
			name:     "writer error",
			username: "carol",
			email:    "carol@example.com",
			password: "pass123",
			saveErr:  errors.New("save error"),
			wantErr:  errors.New("save error"),
		},
		{
			name:       "session error",
			username:   "dave",
			email:      "dave@example.com",
			password:   "pass123",
			saveID:     4,
			sessionErr: errors.New("redis down"),
			wantErr:    errors.New("redis down"),
		},
		{
			name:     "token error",
			username: "erin",
			email:    "erin@example.com",
			password: "pass123",
			saveID:   5,
			tokenErr: errors.New("sign error"),
			wantErr:  errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWriter.EXPECT().
				Save(gomock.Any(), tt.username, tt.email, gomock.Any()).
				DoAndReturn(func(_ context.Context, _, _, hash string) (int64, error) {
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.password)))
					return tt.saveID, tt.saveErr
				})

			if tt.saveErr == nil {
				mockSessions.EXPECT().Create(gomock.Any(), tt.saveID).Return("sid", tt.sessionErr)
				if tt.sessionErr == nil {
					mockTokens.EXPECT().Generate(gomock.Any(), "sid").Return(tt.wantToken, tt.tokenErr)
				}
			}

			profile, token, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, profile)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, &models.UserProfile{ID: tt.saveID, Username: tt.username, Email: tt.email}, profile)
		})
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := services.NewAuthService(
		services.NewMockUserReader(ctrl),
		services.NewMockUserWriter(ctrl),
		services.NewMockSessionStore(ctrl),
		services.NewMockTokenGenerator(ctrl),
	)

	profile, token, err := svc.Register(context.Background(), "frank", "frank@example.com", strings.Repeat("x", 80))
	assert.ErrorIs(t, err, services.ErrPasswordTooLong)
	assert.Nil(t, profile)
	assert.Empty(t, token)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockSessions := services.NewMockSessionStore(ctrl)
	mockTokens := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockSessions, mockTokens)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &models.UserDB{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		email     string
		loginPass string
		user      *models.UserDB
		readerErr error
		wantErr   error
		wantToken string
	}{
		{
			name:      "successful login",
			email:     "alice@example.com",
			loginPass: password,
			user:      user,
			wantToken: "token123",
		},
		{
			name:      "unknown email",
			email:     "nobody@example.com",
			loginPass: password,
			readerErr: fmt.Errorf("get user: %w", sql.ErrNoRows),
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			email:     "alice@example.com",
			loginPass: "wrong",
			user:      user,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			email:     "alice@example.com",
			loginPass: password,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().GetByEmail(gomock.Any(), tt.email).Return(tt.user, tt.readerErr)

			if tt.wantErr == nil {
				mockSessions.EXPECT().Create(gomock.Any(), user.ID).Return("sid", nil)
				mockTokens.EXPECT().Generate(gomock.Any(), "sid").Return(tt.wantToken, nil)
			}

			profile, token, err := svc.Login(context.Background(), tt.email, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, user.Profile(), profile)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := services.NewMockSessionStore(ctrl)
	svc := services.NewAuthService(nil, nil, mockSessions, nil)

	mockSessions.EXPECT().Delete(gomock.Any(), "sid").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "sid"))

	mockSessions.EXPECT().Delete(gomock.Any(), "sid").Return(errors.New("redis down"))
	assert.EqualError(t, svc.Logout(context.Background(), "sid"), "redis down")
}
