package handlers

//go:generate mockgen -source=update_user.go -destination=update_user_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

const msgUpdateForbidden = "Unauthorized to update this account"

// UserUpdater changes an account's username or email.
type UserUpdater interface {
	Update(ctx context.Context, subjectID, targetID uuid.UUID, username, email string) (*models.UserDB, error)
}

// UpdateUserRequest carries the fields to change. Empty fields are kept.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// default: alice2
	Username string `json:"username"`
	// default: alice2@x.com
	Email string `json:"email"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.RuneLength(1, maxUsernameLen).Error(msgUsernameTooLong)),
		validation.Field(&r.Email, validation.RuneLength(1, maxEmailLen).Error(msgEmailTooLong)),
	)
}

// NewUpdateUserHandler returns an HTTP handler updating the caller's account.
// @Summary Update user
// @Description Update username and/or email of the authenticated user's own account
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body handlers.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.UserDB
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /users/update/{id} [put]
// @Security Bearer
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}
		target, ok := uuidParam(w, r, "id", http.StatusForbidden, msgUpdateForbidden)
		if !ok {
			return
		}

		var req UpdateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Update(r.Context(), subject, target, req.Username, req.Email)
		if err != nil {
			writeServiceError(w, err, msgUpdateForbidden)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// RegisterUpdateUserHandler registers the account update route
func RegisterUpdateUserHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Put("/users/update/{id}", h)
}
