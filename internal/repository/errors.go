package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fsanano/garden-shop/internal/model"
)

const (
	uniqueViolationCode      = "23505"
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	adminShutdownCode        = "57P01"
	connectionExceptionClass = "08"
)

// convertErr maps a store error to the model taxonomy:
//   - pgx.ErrNoRows becomes notFound (when given);
//   - a unique violation becomes model.ErrConflict;
//   - anything else is wrapped in a *model.PersistenceError.
func convertErr(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}

	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%s: %w (%s)", op, model.ErrConflict, pgErr.ConstraintName)
	}

	return &model.PersistenceError{Op: op, Err: err}
}
