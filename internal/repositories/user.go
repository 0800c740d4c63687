package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

const userColumns = `user_id, username, email, password_hash, created_at, updated_at`

// UserReadRepository handles user lookups
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email or ErrNotFound.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByUsername returns the user with the given username or ErrNotFound.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByID returns the user with the given id or ErrNotFound.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)
	logQuery(query, []any{arg}, err)

	if err = classify(err); err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UserWriteRepository handles user inserts, updates and deletes
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user. A duplicate username or email yields ErrConflict.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash, email string) (*models.UserDB, error) {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns

	userID := uuid.New()
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, userID, username, email, passwordHash)
	logQuery(query, []any{userID, username, email}, err)

	if err = classify(err); err != nil {
		if err == ErrConflict {
			return nil, err
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &user, nil
}

// Update changes username and/or email; empty values keep the current ones.
func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, username, email string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET username = COALESCE(NULLIF($2, ''), username),
		    email = COALESCE(NULLIF($3, ''), email),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, userID, username, email)
	logQuery(query, []any{userID, username, email}, err)

	if err = classify(err); err != nil {
		if err == ErrNotFound || err == ErrConflict {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// Delete removes the user; posts are removed by the foreign key cascade.
func (r *UserWriteRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM users WHERE user_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID)
	logQuery(query, []any{userID}, err)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
