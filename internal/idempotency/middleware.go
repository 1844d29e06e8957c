package idempotency

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const HeaderKey = "Idempotency-Key"

// Middleware lets a request with a given Idempotency-Key through once per ttl. A replay gets
// 409. Requests that end with a 4xx, or that panic before writing a response, release their
// key so the client can retry. A 5xx keeps the key: the write may have been committed.
// Requests without the header are not affected.
func Middleware(store Store, ttl time.Duration, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if _, err := uuid.Parse(key); err != nil {
				writeError(w, http.StatusBadRequest, HeaderKey+" must be a UUID")
				return
			}

			scoped := r.Method + " " + r.URL.Path + " " + key
			ok, err := store.Reserve(r.Context(), scoped, ttl)
			if err != nil {
				log.WithError(err).WithField("key", key).Error("reserve idempotency key")
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !ok {
				writeError(w, http.StatusConflict, "request already processed")
				return
			}

			release := func() {
				if err := store.Release(context.WithoutCancel(r.Context()), scoped); err != nil {
					log.WithError(err).WithField("key", key).Warn("release idempotency key")
				}
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rec := recover(); rec != nil {
					if ww.Status() == 0 {
						release()
					}
					panic(rec)
				}
			}()

			next.ServeHTTP(ww, r)

			if retryable(ww.Status()) {
				release()
			}
		})
	}
}

// retryable reports whether a response status means nothing was written.
func retryable(status int) bool {
	return status >= 400 && status < 500
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
