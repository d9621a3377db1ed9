package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestArticleDeleteHandler(t *testing.T) {
	tests := []struct {
		name               string
		id                 string
		authenticated      bool
		setupMocks         func(svc *MockArticleDeleter)
		expectedStatusCode int
		expectedError      string
	}{
		{
			name:          "owner deletes",
			id:            "6",
			authenticated: true,
			setupMocks: func(svc *MockArticleDeleter) {
				svc.EXPECT().Delete(gomock.Any(), int64(1), int64(6)).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "anonymous",
			id:                 "6",
			setupMocks:         func(svc *MockArticleDeleter) {},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Unauthorized",
		},
		{
			name:               "bad id",
			id:                 "-1",
			authenticated:      true,
			setupMocks:         func(svc *MockArticleDeleter) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      errInvalidID.Error(),
		},
		{
			name:          "someone else's article",
			id:            "6",
			authenticated: true,
			setupMocks: func(svc *MockArticleDeleter) {
				svc.EXPECT().Delete(gomock.Any(), int64(1), int64(6)).Return(services.ErrForbidden)
			},
			expectedStatusCode: http.StatusForbidden,
			expectedError:      "Unauthorized to delete this article",
		},
		{
			name:          "service failure",
			id:            "6",
			authenticated: true,
			setupMocks: func(svc *MockArticleDeleter) {
				svc.EXPECT().Delete(gomock.Any(), int64(1), int64(6)).Return(assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockArticleDeleter(ctrl)
			tt.setupMocks(svc)

			req := withID(httptest.NewRequest(http.MethodDelete, "/api/articles/"+tt.id, nil), tt.id)
			if tt.authenticated {
				req = withUser(req, 1)
			}
			rr := httptest.NewRecorder()
			NewArticleDeleteHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var resp MessageResponse
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "Article deleted successfully", resp.Message)
		})
	}
}
