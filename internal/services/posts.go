package services

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/repositories"
)

// PostReader defines post lookups.
type PostReader interface {
	GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PostDB, error)
}

// PostWriter defines post creation and deletion.
type PostWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title, content string) (*models.PostDB, error)
	Delete(ctx context.Context, postID uuid.UUID) error
}

// PostService manages posts owned by the authenticated user.
type PostService struct {
	reader    PostReader
	writer    PostWriter
	publisher Publisher
}

func NewPostService(reader PostReader, writer PostWriter, publisher Publisher) *PostService {
	return &PostService{reader: reader, writer: writer, publisher: publisher}
}

// Create stores a post for ownerID, which must be the subject.
func (s *PostService) Create(ctx context.Context, subjectID, ownerID uuid.UUID, title, content string) (*models.PostDB, error) {
	if err := Authorize(subjectID, ownerID); err != nil {
		logger.Log.Warnw("post create forbidden", "subject", subjectID, "owner", ownerID)
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, ErrMissingFields
	}

	post, err := s.writer.Save(ctx, subjectID, title, content)
	if errors.Is(err, repositories.ErrNotFound) {
		logger.Log.Warnw("post owner no longer exists", "userID", subjectID)
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to save post", "userID", subjectID, "err", err)
		return nil, err
	}

	publish(ctx, s.publisher, models.EventPostCreated, subjectID, post.PostID)
	return post, nil
}

// Get returns a single post owned by the subject.
func (s *PostService) Get(ctx context.Context, subjectID, postID uuid.UUID) (*models.PostDB, error) {
	post, err := s.reader.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		logger.Log.Errorw("failed to get post", "postID", postID, "err", err)
		return nil, err
	}

	if err := Authorize(subjectID, post.UserID); err != nil {
		logger.Log.Warnw("post read forbidden", "subject", subjectID, "postID", postID)
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by the subject. A missing post is reported
// before ownership is checked.
func (s *PostService) Delete(ctx context.Context, subjectID, postID uuid.UUID) error {
	if _, err := s.Get(ctx, subjectID, postID); err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPostNotFound
		}
		logger.Log.Errorw("failed to delete post", "postID", postID, "err", err)
		return err
	}

	publish(ctx, s.publisher, models.EventPostDeleted, subjectID, postID)
	return nil
}

// ListByOwner returns the subject's posts. An empty list is ErrNoPosts.
func (s *PostService) ListByOwner(ctx context.Context, subjectID uuid.UUID) ([]models.PostDB, error) {
	posts, err := s.reader.ListByUserID(ctx, subjectID)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "userID", subjectID, "err", err)
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	return posts, nil
}
