package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

const postColumns = `post_id, user_id, title, content, created_at, updated_at`

// PostReadRepository handles post lookups
type PostReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostReadRepository(db *sqlx.DB, txGetter TxGetter) *PostReadRepository {
	return &PostReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the post or ErrNotFound.
func (r *PostReadRepository) GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.PostDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, postID)
	logQuery(query, []any{postID}, err)

	if err = classify(err); err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// ListByUserID returns the user's posts, newest first. No posts is an empty slice.
func (r *PostReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PostDB, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	posts := []models.PostDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &posts, query, userID)
	logQuery(query, []any{userID}, err)

	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// PostWriteRepository handles post inserts and deletes
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostWriteRepository(db *sqlx.DB, txGetter TxGetter) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a post owned by userID. A missing owner yields ErrNotFound.
func (r *PostWriteRepository) Save(ctx context.Context, userID uuid.UUID, title, content string) (*models.PostDB, error) {
	query := `
		INSERT INTO posts (post_id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + postColumns

	postID := uuid.New()
	var post models.PostDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, postID, userID, title, content)
	logQuery(query, []any{postID, userID, title}, err)

	if err = classify(err); err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("save post: %w", err)
	}
	return &post, nil
}

// Delete removes the post or returns ErrNotFound.
func (r *PostWriteRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	const query = `DELETE FROM posts WHERE post_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, postID)
	logQuery(query, []any{postID}, err)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
