package handlers

//go:generate mockgen -source=get_user.go -destination=get_user_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

// UserGetter looks up an account by email.
type UserGetter interface {
	GetByEmail(ctx context.Context, subjectID uuid.UUID, email string) (*models.UserDB, error)
}

// GetUserRequest names the account to fetch.
// swagger:model GetUserRequest
type GetUserRequest struct {
	// default: a@x.com
	Email string `json:"email"`
}

// NewGetUserHandler returns an HTTP handler fetching the caller's account by email.
// The email is read from the JSON body, or from the email query parameter when
// the body is empty.
// @Summary Get user
// @Description Fetch the authenticated user's own account by email
// @Tags users
// @Accept json
// @Produce json
// @Param email query string false "Email, used when no body is sent"
// @Param request body handlers.GetUserRequest false "Email"
// @Success 200 {object} models.UserDB
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/getuser [get]
// @Security Bearer
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}

		var req GetUserRequest
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, msgInvalidBody)
				return
			}
		}
		if req.Email == "" {
			req.Email = r.URL.Query().Get("email")
		}

		user, err := svc.GetByEmail(r.Context(), subject, req.Email)
		if err != nil {
			writeServiceError(w, err, "You can only view your own account")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// RegisterGetUserHandler registers the account lookup route
func RegisterGetUserHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Get("/users/getuser", h)
}
