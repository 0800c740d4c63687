package handlers

//go:generate mockgen -source=delete_post.go -destination=delete_post_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PostDeleter removes a post.
type PostDeleter interface {
	Delete(ctx context.Context, subjectID, postID uuid.UUID) error
}

// NewDeletePostHandler returns an HTTP handler deleting one of the caller's posts.
// @Summary Delete post
// @Description Delete a post owned by the authenticated user
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /posts/deletepost/{postId} [delete]
// @Security Bearer
func NewDeletePostHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}
		postID, ok := uuidParam(w, r, "postId", http.StatusNotFound, "Post not found")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), subject, postID); err != nil {
			writeServiceError(w, err, "You can only delete your own post")
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully."})
	}
}

// RegisterDeletePostHandler registers the post deletion route
func RegisterDeletePostHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Delete("/posts/deletepost/{postId}", h)
}
