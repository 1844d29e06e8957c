package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest number of units a holding can store.
const MaxQuantity = math.MaxInt32

type BasketLine struct {
	ItemID   int64 `json:"itemId" validate:"gt=0"`
	Quantity int64 `json:"quantitat" validate:"gt=0,lte=2147483647"`
}

type PurchaseRequest struct {
	UserID    int64           `json:"userId" validate:"gt=0"`
	Items     []BasketLine    `json:"items" validate:"required,min=1,max=100,dive"`
	TotalCost decimal.Decimal `json:"totalCost" validate:"gte=0"`
}

// Merge sums the lines referring to the same item, keeping the order of first occurrence.
// Lines must have a quantity in (0, MaxQuantity]. A merged quantity above MaxQuantity is a
// ValidationError.
func (r PurchaseRequest) Merge() ([]BasketLine, error) {
	merged := make([]BasketLine, 0, len(r.Items))
	index := make(map[int64]int, len(r.Items))
	for _, line := range r.Items {
		i, ok := index[line.ItemID]
		if !ok {
			index[line.ItemID] = len(merged)
			merged = append(merged, line)
			continue
		}
		if line.Quantity > MaxQuantity-merged[i].Quantity {
			return nil, NewValidationError("quantitat of item %d exceeds %d", line.ItemID, MaxQuantity)
		}
		merged[i].Quantity += line.Quantity
	}
	return merged, nil
}

type Receipt struct {
	UserID   int64           `json:"userId"`
	Total    decimal.Decimal `json:"totalCost"`
	Balance  decimal.Decimal `json:"btc"`
	Holdings []Holding       `json:"items"`
}
