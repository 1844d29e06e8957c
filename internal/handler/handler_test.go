package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsanano/garden-shop/internal/handler"
	"fsanano/garden-shop/internal/handler/mocks"
	"fsanano/garden-shop/internal/idempotency"
	"fsanano/garden-shop/internal/logger"
	"fsanano/garden-shop/internal/metrics"
	"fsanano/garden-shop/internal/model"
)

type testDeps struct {
	users     *mocks.MockUserService
	items     *mocks.MockItemService
	plants    *mocks.MockPlantService
	purchases *mocks.MockPurchaseService
	db        *mocks.MockPinger
	metrics   *metrics.Metrics
}

func newTestHandler(t *testing.T) (*handler.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := idempotency.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	d := testDeps{
		users:     mocks.NewMockUserService(ctrl),
		items:     mocks.NewMockItemService(ctrl),
		plants:    mocks.NewMockPlantService(ctrl),
		purchases: mocks.NewMockPurchaseService(ctrl),
		db:        mocks.NewMockPinger(ctrl),
		metrics:   metrics.New(),
	}

	h := handler.NewHandler(handler.Deps{
		Users:          d.users,
		Items:          d.items,
		Plants:         d.plants,
		Purchases:      d.purchases,
		DB:             d.db,
		Idempotency:    store,
		IdempotencyTTL: time.Minute,
		Metrics:        d.metrics,
		Log:            logger.Discard(),
	})
	return h, d
}

func serve(h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			buf = bytes.NewBufferString(s)
		} else {
			b, _ := json.Marshal(body)
			buf = bytes.NewBuffer(b)
		}
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_HealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("store up", func(t *testing.T) {
		t.Parallel()

		h, d := newTestHandler(t)
		d.db.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := serve(h, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decodeBody(t, rec)["status"])
	})

	t.Run("store down", func(t *testing.T) {
		t.Parallel()

		h, d := newTestHandler(t)
		d.db.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		rec := serve(h, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandler_UnknownRoute(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/skins", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "/skins")
}

func TestHandler_Metrics(t *testing.T) {
	t.Parallel()

	h, d := newTestHandler(t)
	d.items.EXPECT().Get(gomock.Any(), int64(3)).Return(model.Item{}, model.ErrItemNotFound)

	require.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/items/3", nil).Code)
	rec := serve(h, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`garden_shop_http_requests_total{method="GET",route="/items/{id}",status="404"} 1`)
}

func TestHandler_BrotliCompression(t *testing.T) {
	t.Parallel()

	h, d := newTestHandler(t)
	plants := make([]model.Plant, 50)
	for i := range plants {
		plants[i] = model.Plant{ID: int64(i + 1), Name: "Ficus", Species: "Ficus lyrata"}
	}
	d.plants.EXPECT().List(gomock.Any()).Return(plants, nil)

	rec := serve(h, http.MethodGet, "/plantas", nil, "Accept-Encoding", "br")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))

	raw, err := io.ReadAll(brotli.NewReader(rec.Body))
	require.NoError(t, err)

	var got []model.Plant
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, plants, got)
}
