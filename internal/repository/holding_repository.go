package repository

import (
	"context"

	"fsanano/garden-shop/internal/model"
)

type HoldingRepository struct {
	db *Database
}

func NewHoldingRepository(db *Database) *HoldingRepository {
	return &HoldingRepository{db: db}
}

func (r *HoldingRepository) ListByUser(ctx context.Context, userID int64) ([]model.Holding, error) {
	holdings := []model.Holding{}
	err := r.db.read(ctx, func(q PgxExecutor) error {
		rows, err := q.Query(ctx,
			"SELECT usuari_id, item_id, quantitat FROM items_usuaris WHERE usuari_id = $1 ORDER BY item_id",
			userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		holdings = holdings[:0]
		for rows.Next() {
			var h model.Holding
			if err := rows.Scan(&h.UserID, &h.ItemID, &h.Quantity); err != nil {
				return err
			}
			holdings = append(holdings, h)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, convertErr(err, nil, "list holdings")
	}
	return holdings, nil
}

// Upsert adds every line to the user's holdings in one statement. Lines must not repeat an item
// (see model.PurchaseRequest.Merge). The result follows the order of lines.
func (r *HoldingRepository) Upsert(ctx context.Context, userID int64, lines []model.BasketLine) ([]model.Holding, error) {
	itemIDs := make([]int64, len(lines))
	quantities := make([]int64, len(lines))
	for i, line := range lines {
		itemIDs[i] = line.ItemID
		quantities[i] = line.Quantity
	}

	rows, err := r.db.getExecutor(ctx).Query(ctx,
		`INSERT INTO items_usuaris (usuari_id, item_id, quantitat)
		SELECT $1, t.item_id, t.quantitat
		FROM unnest($2::bigint[], $3::bigint[]) AS t(item_id, quantitat)
		ON CONFLICT (usuari_id, item_id)
		DO UPDATE SET quantitat = items_usuaris.quantitat + EXCLUDED.quantitat
		RETURNING usuari_id, item_id, quantitat`,
		userID, itemIDs, quantities,
	)
	if err != nil {
		return nil, convertErr(err, nil, "upsert holdings")
	}
	defer rows.Close()

	byItem := make(map[int64]model.Holding, len(lines))
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.UserID, &h.ItemID, &h.Quantity); err != nil {
			return nil, convertErr(err, nil, "upsert holdings")
		}
		byItem[h.ItemID] = h
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, nil, "upsert holdings")
	}

	holdings := make([]model.Holding, 0, len(lines))
	for _, line := range lines {
		if h, ok := byItem[line.ItemID]; ok {
			holdings = append(holdings, h)
		}
	}
	return holdings, nil
}
