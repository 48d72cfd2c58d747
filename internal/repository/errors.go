package repository

import (
	"errors"

	"mindcare-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// storeErr classifies a driver error: unique violations become conflicts, everything else a store failure
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &apperror.Error{Kind: apperror.KindConflict, Message: op + ": record already exists", Err: err}
	}
	return apperror.Store(op, err)
}
