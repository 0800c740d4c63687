package handlers

//go:generate mockgen -source=get_user_posts.go -destination=get_user_posts_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

// PostLister lists a user's posts.
type PostLister interface {
	ListByOwner(ctx context.Context, subjectID uuid.UUID) ([]models.PostDB, error)
}

// NewGetUserPostsHandler returns an HTTP handler listing the caller's posts.
// @Summary List posts
// @Description List all posts of the authenticated user, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostDB
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "No posts found for this user."
// @Router /posts/getuserposts [get]
// @Security Bearer
func NewGetUserPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}

		posts, err := svc.ListByOwner(r.Context(), subject)
		if err != nil {
			writeServiceError(w, err, "")
			return
		}

		writeJSON(w, http.StatusOK, posts)
	}
}

// RegisterGetUserPostsHandler registers the post listing route
func RegisterGetUserPostsHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Get("/posts/getuserposts", h)
}
