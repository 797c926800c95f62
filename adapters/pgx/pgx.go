// Package pgx implements the storage ports on PostgreSQL via pgxpool.
package pgx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowlyhq/flowly/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.Storage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

// uniqueViolation maps a 23505 on the accounts table to the conflict the
// caller can act on. Any other error passes through untouched.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "username") {
		return core.ErrUsernameTaken
	}
	return core.ErrEmailTaken
}
