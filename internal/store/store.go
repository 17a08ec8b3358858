// Package store implements the service repositories on PostgreSQL.
package store

import (
	"errors"
	"fmt"

	"eventhub/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// mapErr converts driver errors into the common taxonomy.
func mapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%s: %w", op, common.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
