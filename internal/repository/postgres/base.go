package postgres

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrStoreUnavailable is returned by the few write paths that cannot
// degrade silently when no database connection exists.
var ErrStoreUnavailable = errors.New("store unavailable: no database connection")

// BaseRepository provides common functionality for all repositories.
// The handle may be nil when the process runs without a backing store;
// reads then return their documented empty values.
type BaseRepository struct {
	db *sqlx.DB
}

func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// Available reports whether a store connection exists.
func (r *BaseRepository) Available() bool {
	return r.db != nil
}

// WithTx executes a function within a transaction.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
