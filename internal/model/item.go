package model

import "github.com/shopspring/decimal"

type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nom"`
	Description string          `json:"descripcio"`
	Price       decimal.Decimal `json:"preu"`
}

type ItemInput struct {
	Name        string          `json:"nom" validate:"required,max=255"`
	Description string          `json:"descripcio" validate:"max=4096"`
	Price       decimal.Decimal `json:"preu" validate:"gte=0"`
}

// Check validates the price exactly.
func (in ItemInput) Check() error {
	if in.Price.IsNegative() {
		return NewValidationError("preu must not be negative")
	}
	return nil
}

// Holding is how many units of an item a user owns.
type Holding struct {
	UserID   int64 `json:"usuari_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantitat"`
}
