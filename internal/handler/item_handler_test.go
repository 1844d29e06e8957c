package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsanano/garden-shop/internal/model"
)

func TestItemHandler(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name           string
		method         string
		path           string
		body           any
		prepareFn      func(d testDeps)
		expectedStatus int
	}

	rake := model.Item{ID: 5, Name: "Rastell", Price: decimal.NewFromInt(2)}

	tests := []testCase{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/items",
			prepareFn: func(d testDeps) {
				d.items.EXPECT().List(gomock.Any()).Return([]model.Item{rake}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/items/5",
			prepareFn: func(d testDeps) {
				d.items.EXPECT().Get(gomock.Any(), int64(5)).Return(rake, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/items",
			body:   `{"nom": "Rastell", "preu": 2}`,
			prepareFn: func(d testDeps) {
				d.items.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in model.ItemInput) (model.Item, error) {
						assert.True(t, in.Price.Equal(decimal.NewFromInt(2)))
						return rake, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "create with negative price",
			method:         http.MethodPost,
			path:           "/items",
			body:           `{"nom": "Rastell", "preu": -1}`,
			prepareFn:      func(testDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "create with negative price below float precision",
			method:         http.MethodPost,
			path:           "/items",
			body:           `{"nom": "Rastell", "preu": -1e-400}`,
			prepareFn:      func(testDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "update unknown",
			method: http.MethodPut,
			path:   "/items/6",
			body:   `{"nom": "Rastell", "preu": 3}`,
			prepareFn: func(d testDeps) {
				d.items.EXPECT().Update(gomock.Any(), int64(6), gomock.Any()).Return(model.Item{}, model.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/items/5",
			prepareFn: func(d testDeps) {
				d.items.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "holdings",
			method: http.MethodGet,
			path:   "/items/items_usuaris/1",
			prepareFn: func(d testDeps) {
				d.purchases.EXPECT().Holdings(gomock.Any(), int64(1)).
					Return([]model.Holding{{UserID: 1, ItemID: 5, Quantity: 2}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "holdings of unknown user",
			method: http.MethodGet,
			path:   "/items/items_usuaris/9999",
			prepareFn: func(d testDeps) {
				d.purchases.EXPECT().Holdings(gomock.Any(), int64(9999)).Return(nil, model.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, d := newTestHandler(t)
			tc.prepareFn(d)

			rec := serve(h, tc.method, tc.path, tc.body)

			require.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
		})
	}
}
