package handlers

//go:generate mockgen -source=create_post.go -destination=create_post_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

const msgCreatePostForbidden = "You can only create posts for your own account"

// PostCreator stores a new post.
type PostCreator interface {
	Create(ctx context.Context, subjectID, ownerID uuid.UUID, title, content string) (*models.PostDB, error)
}

// CreatePostRequest represents the JSON body for a new post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// required: true
	// default: Hello
	Title string `json:"title"`
	// required: true
	// default: world
	Content string `json:"content"`
}

// NewCreatePostHandler returns an HTTP handler creating a post for the caller.
// @Summary Create post
// @Description Create a post owned by the authenticated user. The path id must be the caller's id.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Owner user ID"
// @Param request body handlers.CreatePostRequest true "Post"
// @Success 201 {object} models.PostDB
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /posts/newpost/{id} [post]
// @Security Bearer
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := subjectID(w, r)
		if !ok {
			return
		}
		owner, ok := uuidParam(w, r, "id", http.StatusForbidden, msgCreatePostForbidden)
		if !ok {
			return
		}

		var req CreatePostRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		post, err := svc.Create(r.Context(), subject, owner, req.Title, req.Content)
		if err != nil {
			writeServiceError(w, err, msgCreatePostForbidden)
			return
		}

		writeJSON(w, http.StatusCreated, post)
	}
}

// RegisterCreatePostHandler registers the post creation route
func RegisterCreatePostHandler(r chi.Router, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Post("/posts/newpost/{id}", h)
}
