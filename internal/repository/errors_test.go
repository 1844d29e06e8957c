package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"fsanano/garden-shop/internal/model"
)

func TestConvertErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, convertErr(nil, model.ErrUserNotFound, "op"))
	assert.Equal(t, model.ErrUserNotFound, convertErr(pgx.ErrNoRows, model.ErrUserNotFound, "op"))

	// without a not-found mapping no rows is a store failure
	assert.ErrorIs(t, convertErr(pgx.ErrNoRows, nil, "op"), &model.PersistenceError{})

	conflict := convertErr(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "usuaris_correu_key"}, nil, "create user")
	assert.ErrorIs(t, conflict, model.ErrConflict)
	assert.Contains(t, conflict.Error(), "usuaris_correu_key")

	other := convertErr(assert.AnError, nil, "list users")
	assert.ErrorIs(t, other, &model.PersistenceError{})
	assert.ErrorIs(t, other, assert.AnError)
	assert.Contains(t, other.Error(), "list users")
}
