package idempotency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fsanano/garden-shop/internal/logger"
)

type failingStore struct{}

func (failingStore) Reserve(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func (failingStore) Release(context.Context, string) error { return nil }

func (failingStore) Close() error { return nil }

func newTestHandler(t *testing.T, store Store, status int) (http.Handler, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
	})
	return Middleware(store, time.Minute, logger.Discard())(next), &calls
}

func doRequest(h http.Handler, key string) int {
	req := httptest.NewRequest(http.MethodPost, "/items/items_usuaris", nil)
	if key != "" {
		req.Header.Set(HeaderKey, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("replay is rejected", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })
		h, calls := newTestHandler(t, store, http.StatusOK)
		key := uuid.NewString()

		assert.Equal(t, http.StatusOK, doRequest(h, key))
		assert.Equal(t, http.StatusConflict, doRequest(h, key))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failed request releases the key", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })
		h, calls := newTestHandler(t, store, http.StatusBadRequest)
		key := uuid.NewString()

		assert.Equal(t, http.StatusBadRequest, doRequest(h, key))
		assert.Equal(t, http.StatusBadRequest, doRequest(h, key))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("server error keeps the key", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })
		h, calls := newTestHandler(t, store, http.StatusInternalServerError)
		key := uuid.NewString()

		assert.Equal(t, http.StatusInternalServerError, doRequest(h, key))
		assert.Equal(t, http.StatusConflict, doRequest(h, key))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("panic releases the key", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })

		var calls atomic.Int32
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				panic("boom")
			}
			w.WriteHeader(http.StatusOK)
		})
		h := middleware.Recoverer(Middleware(store, time.Minute, logger.Discard())(next))
		key := uuid.NewString()

		assert.Equal(t, http.StatusInternalServerError, doRequest(h, key))
		assert.Equal(t, http.StatusOK, doRequest(h, key))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("no header passes through", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })
		h, calls := newTestHandler(t, store, http.StatusOK)

		assert.Equal(t, http.StatusOK, doRequest(h, ""))
		assert.Equal(t, http.StatusOK, doRequest(h, ""))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("malformed key", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(0)
		t.Cleanup(func() { _ = store.Close() })
		h, calls := newTestHandler(t, store, http.StatusOK)

		assert.Equal(t, http.StatusBadRequest, doRequest(h, "not-a-uuid"))
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		h, calls := newTestHandler(t, failingStore{}, http.StatusOK)

		assert.Equal(t, http.StatusInternalServerError, doRequest(h, uuid.NewString()))
		assert.Equal(t, int32(0), calls.Load())
	})
}
