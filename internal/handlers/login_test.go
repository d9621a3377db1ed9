package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	profile := &models.UserProfile{ID: 3, Username: "john_doe", Email: "john@example.com"}

	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(svc *MockLoginer, cookies *MockCookieSetter)
		expectedStatusCode int
		expectedError      string
	}{
		{
			name:        "successful login",
			requestBody: LoginRequest{Email: "john@example.com", Password: "secret123"},
			setupMocks: func(svc *MockLoginer, cookies *MockCookieSetter) {
				svc.EXPECT().Login(gomock.Any(), "john@example.com", "secret123").Return(profile, "tok", nil)
				cookies.EXPECT().SetCookie(gomock.Any(), "tok")
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "invalid json",
			requestBody:        "[]",
			setupMocks:         func(svc *MockLoginer, cookies *MockCookieSetter) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "invalid request body",
		},
		{
			name:               "missing password",
			requestBody:        LoginRequest{Email: "john@example.com"},
			setupMocks:         func(svc *MockLoginer, cookies *MockCookieSetter) {},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Invalid credentials",
		},
		{
			name:               "missing email",
			requestBody:        LoginRequest{Password: "secret123"},
			setupMocks:         func(svc *MockLoginer, cookies *MockCookieSetter) {},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Invalid credentials",
		},
		{
			name:        "invalid credentials",
			requestBody: LoginRequest{Email: "john@example.com", Password: "wrong"},
			setupMocks: func(svc *MockLoginer, cookies *MockCookieSetter) {
				svc.EXPECT().Login(gomock.Any(), "john@example.com", "wrong").Return(nil, "", services.ErrInvalidCredentials)
			},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Invalid credentials",
		},
		{
			name:        "internal error",
			requestBody: LoginRequest{Email: "john@example.com", Password: "secret123"},
			setupMocks: func(svc *MockLoginer, cookies *MockCookieSetter) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, "", assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockLoginer(ctrl)
			cookies := NewMockCookieSetter(ctrl)
			tt.setupMocks(svc, cookies)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(bodyBytes))
			rr := httptest.NewRecorder()

			NewLoginHandler(svc, cookies).ServeHTTP(rr, req)

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
