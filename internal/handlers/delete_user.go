package handlers

//go:generate mockgen -source=delete_user.go -destination=delete_user_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const msgDeleteUserForbidden = "You can only delete your own account"

// UserDeleter removes an account.
type UserDeleter interface {
	Delete(ctx context.Context, subjectID, targetID uuid.UUID) error
}

// NewDeleteUserHandler returns an HTTP handler deleting the caller's account.
// @Summary Delete user
// @Description Delete the authenticated user's own account together with its posts
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/delete/{id} [delete]
// @Security Bearer
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}
		target, ok := uuidParam(w, r, "id", http.StatusForbidden, msgDeleteUserForbidden)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), subject, target); err != nil {
			writeServiceError(w, err, msgDeleteUserForbidden)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully."})
	}
}

// RegisterDeleteUserHandler registers the account deletion route
func RegisterDeleteUserHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Delete("/users/delete/{id}", h)
}
