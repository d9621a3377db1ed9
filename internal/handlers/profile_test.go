package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestProfileHandler(t *testing.T) {
	lat, lon := 48.8566, 2.3522
	profile := &models.UserProfile{ID: 5, Username: "ann", Email: "ann@example.com", Latitude: &lat, Longitude: &lon}

	tests := []struct {
		name               string
		authenticated      bool
		setupMocks         func(svc *MockProfiler)
		expectedStatusCode int
		expectedError      string
	}{
		{
			name:          "returns the profile",
			authenticated: true,
			setupMocks: func(svc *MockProfiler) {
				svc.EXPECT().Profile(gomock.Any(), int64(5)).Return(profile, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "anonymous",
			setupMocks:         func(svc *MockProfiler) {},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Unauthorized",
		},
		{
			name:          "user gone",
			authenticated: true,
			setupMocks: func(svc *MockProfiler) {
				svc.EXPECT().Profile(gomock.Any(), int64(5)).Return(nil, services.ErrUserNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedError:      "User not found",
		},
		{
			name:          "internal error",
			authenticated: true,
			setupMocks: func(svc *MockProfiler) {
				svc.EXPECT().Profile(gomock.Any(), int64(5)).Return(nil, assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockProfiler(ctrl)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.authenticated {
				req = withUser(req, 5)
			}
			rr := httptest.NewRecorder()
			NewProfileHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var resp models.UserProfile
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, *profile, resp)
		})
	}
}
