package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserPostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := uuid.New()
	postID := uuid.New()

	tests := []struct {
		name          string
		postID        string
		mockSetup     func(m *MockPostGetter)
		expectedCode  int
		expectedError string
	}{
		{
			name:   "success",
			postID: postID.String(),
			mockSetup: func(m *MockPostGetter) {
				m.EXPECT().Get(gomock.Any(), alice, postID).
					Return(&models.PostDB{PostID: postID, UserID: alice, Title: "Hello", Content: "world"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "not owner",
			postID: postID.String(),
			mockSetup: func(m *MockPostGetter) {
				m.EXPECT().Get(gomock.Any(), alice, postID).Return(nil, services.ErrForbidden)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "You can only view your own post",
		},
		{
			name:   "unknown post",
			postID: postID.String(),
			mockSetup: func(m *MockPostGetter) {
				m.EXPECT().Get(gomock.Any(), alice, postID).Return(nil, services.ErrPostNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Post not found",
		},
		{
			name:          "malformed id",
			postID:        "nope",
			mockSetup:     func(m *MockPostGetter) {},
			expectedCode:  http.StatusNotFound,
			expectedError: "Post not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPostGetter(ctrl)
			tt.mockSetup(mockSvc)

			req := newRequest(t, http.MethodGet, "/posts/getuserpost/"+tt.postID, nil, alice, map[string]string{"postId": tt.postID})
			rr := httptest.NewRecorder()

			NewGetUserPostHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var got models.PostDB
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, "Hello", got.Title)
		})
	}
}
