package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"fsanano/garden-shop/internal/model"
)

const itemColumns = `id, nom, descripcio, preu`

type ItemRepository struct {
	db *Database
}

func NewItemRepository(db *Database) *ItemRepository {
	return &ItemRepository{db: db}
}

func scanItem(row pgx.Row) (model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price)
	return it, err
}

func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.read(ctx, func(q PgxExecutor) error {
		rows, err := q.Query(ctx, "SELECT "+itemColumns+" FROM items ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()

		items = items[:0]
		for rows.Next() {
			it, err := scanItem(rows)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, convertErr(err, nil, "list items")
	}
	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	err := r.db.read(ctx, func(q PgxExecutor) error {
		var err error
		it, err = scanItem(q.QueryRow(ctx, "SELECT "+itemColumns+" FROM items WHERE id = $1", id))
		return err
	})
	if err != nil {
		return model.Item{}, convertErr(err, model.ErrItemNotFound, "get item")
	}
	return it, nil
}

func (r *ItemRepository) Create(ctx context.Context, in model.ItemInput) (model.Item, error) {
	row := r.db.getExecutor(ctx).QueryRow(ctx,
		"INSERT INTO items (nom, descripcio, preu) VALUES ($1, $2, $3) RETURNING "+itemColumns,
		in.Name, in.Description, in.Price,
	)
	it, err := scanItem(row)
	if err != nil {
		return model.Item{}, convertErr(err, nil, "create item")
	}
	return it, nil
}

func (r *ItemRepository) Update(ctx context.Context, id int64, in model.ItemInput) (model.Item, error) {
	row := r.db.getExecutor(ctx).QueryRow(ctx,
		"UPDATE items SET nom = $2, descripcio = $3, preu = $4 WHERE id = $1 RETURNING "+itemColumns,
		id, in.Name, in.Description, in.Price,
	)
	it, err := scanItem(row)
	if err != nil {
		return model.Item{}, convertErr(err, model.ErrItemNotFound, "update item")
	}
	return it, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.getExecutor(ctx).Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return convertErr(err, nil, "delete item")
	}
	return mustOneRow(tag, model.ErrItemNotFound)
}

// Prices returns the current price of every id that exists. Missing ids are absent from the map.
func (r *ItemRepository) Prices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	prices := make(map[int64]decimal.Decimal, len(ids))
	err := r.db.read(ctx, func(q PgxExecutor) error {
		rows, err := q.Query(ctx, "SELECT id, preu FROM items WHERE id = ANY($1)", ids)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id    int64
				price decimal.Decimal
			)
			if err := rows.Scan(&id, &price); err != nil {
				return err
			}
			prices[id] = price
		}
		return rows.Err()
	})
	if err != nil {
		return nil, convertErr(err, nil, "get item prices")
	}
	return prices, nil
}
