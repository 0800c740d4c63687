package handlers

//go:generate mockgen -source=get_user_post.go -destination=get_user_post_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

// PostGetter fetches a single post.
type PostGetter interface {
	Get(ctx context.Context, subjectID, postID uuid.UUID) (*models.PostDB, error)
}

// NewGetUserPostHandler returns an HTTP handler fetching one of the caller's posts.
// @Summary Get post
// @Description Fetch a single post owned by the authenticated user
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} models.PostDB
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /posts/getuserpost/{postId} [get]
// @Security Bearer
func NewGetUserPostHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}
		postID, ok := uuidParam(w, r, "postId", http.StatusNotFound, "Post not found")
		if !ok {
			return
		}

		post, err := svc.Get(r.Context(), subject, postID)
		if err != nil {
			writeServiceError(w, err, "You can only view your own post")
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// RegisterGetUserPostHandler registers the single post route
func RegisterGetUserPostHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Get("/posts/getuserpost/{postId}", h)
}
