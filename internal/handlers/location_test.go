package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLocationHandler(t *testing.T) {
	paris := geo.Point{Latitude: 48.8566, Longitude: 2.3522}

	tests := []struct {
		name               string
		body               string
		setupMocks         func(svc *MockLocationUpdater)
		expectedStatusCode int
		expectedError      string
	}{
		{
			name: "stores the location",
			body: `{"latitude":48.8566,"longitude":2.3522}`,
			setupMocks: func(svc *MockLocationUpdater) {
				svc.EXPECT().UpdateLocation(gomock.Any(), int64(9), paris).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name: "zero is a valid coordinate",
			body: `{"latitude":0,"longitude":0}`,
			setupMocks: func(svc *MockLocationUpdater) {
				svc.EXPECT().UpdateLocation(gomock.Any(), int64(9), geo.Point{}).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "invalid json",
			body:               `{"latitude":`,
			setupMocks:         func(svc *MockLocationUpdater) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "invalid request body",
		},
		{
			name:               "missing longitude",
			body:               `{"latitude":1}`,
			setupMocks:         func(svc *MockLocationUpdater) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "longitude is required",
		},
		{
			name:               "latitude out of range",
			body:               `{"latitude":91,"longitude":0}`,
			setupMocks:         func(svc *MockLocationUpdater) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "latitude must be between -90 and 90",
		},
		{
			name: "user gone",
			body: `{"latitude":48.8566,"longitude":2.3522}`,
			setupMocks: func(svc *MockLocationUpdater) {
				svc.EXPECT().UpdateLocation(gomock.Any(), int64(9), paris).Return(services.ErrUserNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedError:      "User not found",
		},
		{
			name: "internal error",
			body: `{"latitude":48.8566,"longitude":2.3522}`,
			setupMocks: func(svc *MockLocationUpdater) {
				svc.EXPECT().UpdateLocation(gomock.Any(), int64(9), paris).Return(assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockLocationUpdater(ctrl)
			tt.setupMocks(svc)

			req := withUser(httptest.NewRequest(http.MethodPut, "/api/user/location", strings.NewReader(tt.body)), 9)
			rr := httptest.NewRecorder()
			NewLocationHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var resp geo.Point
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		req := httptest.NewRequest(http.MethodPut, "/api/user/location", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		NewLocationHandler(NewMockLocationUpdater(ctrl)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
