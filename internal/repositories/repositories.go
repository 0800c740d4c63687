package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
)

var (
	// ErrNotFound is returned when no row matches the lookup or a referenced
	// row no longer exists.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert or update violates a unique constraint.
	ErrConflict = errors.New("record already exists")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor returns the request transaction if present, otherwise the pool.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// classify maps driver errors onto ErrNotFound and ErrConflict.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

func logQuery(query string, args []any, err error) {
	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}
