package model

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseRequest_Merge(t *testing.T) {
	req := PurchaseRequest{Items: []BasketLine{
		{ItemID: 5, Quantity: 2},
		{ItemID: 3, Quantity: 1},
		{ItemID: 5, Quantity: 4},
	}}

	lines, err := req.Merge()
	require.NoError(t, err)
	assert.Equal(t, []BasketLine{
		{ItemID: 5, Quantity: 6},
		{ItemID: 3, Quantity: 1},
	}, lines)
}

func TestPurchaseRequest_MergeBoundsQuantity(t *testing.T) {
	tests := map[string]struct {
		items   []BasketLine
		wantErr bool
	}{
		"sum at the limit": {
			items: []BasketLine{{ItemID: 5, Quantity: MaxQuantity - 1}, {ItemID: 5, Quantity: 1}},
		},
		"sum above the limit": {
			items:   []BasketLine{{ItemID: 5, Quantity: MaxQuantity}, {ItemID: 5, Quantity: 1}},
			wantErr: true,
		},
		"sum that would wrap int64": {
			items:   []BasketLine{{ItemID: 5, Quantity: math.MaxInt64}, {ItemID: 5, Quantity: math.MaxInt64}},
			wantErr: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			lines, err := PurchaseRequest{Items: tc.items}.Merge()
			if tc.wantErr {
				assert.ErrorIs(t, err, &ValidationError{})
				assert.Nil(t, lines)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []BasketLine{{ItemID: 5, Quantity: MaxQuantity}}, lines)
		})
	}
}

func TestPurchaseRequest_MergeKeepsInput(t *testing.T) {
	req := PurchaseRequest{Items: []BasketLine{{ItemID: 1, Quantity: 1}, {ItemID: 1, Quantity: 1}}}
	_, _ = req.Merge()

	assert.Len(t, req.Items, 2)
	assert.Equal(t, int64(1), req.Items[0].Quantity)
}

func TestErrors_Is(t *testing.T) {
	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrItemNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrInsufficientBalance, ErrNotFound)

	var err error = NewValidationError("bad %s", "input")
	assert.ErrorIs(t, err, &ValidationError{})
	assert.Equal(t, "bad input", err.Error())

	pErr := &PersistenceError{Op: "select user", Err: assert.AnError}
	assert.ErrorIs(t, pErr, assert.AnError)
	assert.ErrorIs(t, pErr, &PersistenceError{})
}

func TestItemInput_Check(t *testing.T) {
	assert.NoError(t, ItemInput{Price: decimal.Zero}.Check())
	assert.NoError(t, ItemInput{Price: decimal.RequireFromString("0.5")}.Check())

	err := ItemInput{Price: decimal.New(-1, -400)}.Check()
	assert.ErrorIs(t, err, &ValidationError{})
}
