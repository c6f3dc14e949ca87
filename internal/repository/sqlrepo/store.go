package sqlrepo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/repository"
)

// Store builds repositories over a database handle and implements
// repository.TxManager.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by d.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Repositories returns repositories bound to the connection pool.
func (s *Store) Repositories() repository.Repositories {
	return newRepositories(s.db.DB)
}

// WithinTx implements repository.TxManager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(ctx, newRepositories(tx))
	})
}

func newRepositories(q sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		Species:  NewSpeciesRepository(q),
		Users:    NewUserRepository(q),
		Reviews:  NewReviewRepository(q),
		Progress: NewProgressRepository(q),
		Badges:   NewBadgeRepository(q),
		Events:   NewEventRepository(q),
		Sessions: NewSessionRepository(q),
	}
}

// builder returns a squirrel builder using the placeholder style of q's driver.
func builder(q sqlx.ExtContext) sq.StatementBuilderType {
	if q.DriverName() == db.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// insertReturningID runs an INSERT ... RETURNING id statement written with
// '?' placeholders.
func insertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// execAffected runs a statement and reports whether it touched any row.
func execAffected(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (bool, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
