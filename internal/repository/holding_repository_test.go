package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsanano/garden-shop/internal/model"
)

func TestHoldingRepository_Upsert(t *testing.T) {
	t.Parallel()

	mock, db := newMockDatabase(t)
	lines := []model.BasketLine{{ItemID: 5, Quantity: 2}, {ItemID: 3, Quantity: 1}}

	// the store may return rows in any order
	mock.ExpectQuery("INSERT INTO items_usuaris").
		WithArgs(int64(1), []int64{5, 3}, []int64{2, 1}).
		WillReturnRows(pgxmock.NewRows([]string{"usuari_id", "item_id", "quantitat"}).
			AddRow(int64(1), int64(3), int64(1)).
			AddRow(int64(1), int64(5), int64(9)))

	holdings, err := NewHoldingRepository(db).Upsert(context.Background(), 1, lines)

	require.NoError(t, err)
	assert.Equal(t, []model.Holding{
		{UserID: 1, ItemID: 5, Quantity: 9},
		{UserID: 1, ItemID: 3, Quantity: 1},
	}, holdings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_UpsertFailure(t *testing.T) {
	t.Parallel()

	mock, db := newMockDatabase(t)
	mock.ExpectQuery("INSERT INTO items_usuaris").
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "integer out of range"})

	_, err := NewHoldingRepository(db).Upsert(context.Background(), 1, []model.BasketLine{{ItemID: 5, Quantity: 2}})

	assert.ErrorIs(t, err, &model.PersistenceError{})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_ListByUser(t *testing.T) {
	t.Parallel()

	mock, db := newMockDatabase(t)
	mock.ExpectQuery("SELECT usuari_id, item_id, quantitat FROM items_usuaris").
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"usuari_id", "item_id", "quantitat"}).
			AddRow(int64(4), int64(1), int64(3)))

	holdings, err := NewHoldingRepository(db).ListByUser(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, []model.Holding{{UserID: 4, ItemID: 1, Quantity: 3}}, holdings)
	assert.NoError(t, mock.ExpectationsWereMet())
}
