package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/idempotency"
	"fsanano/garden-shop/internal/metrics"
)

const healthTimeout = 2 * time.Second

type Deps struct {
	Users     UserService
	Items     ItemService
	Plants    PlantService
	Purchases PurchaseService
	// DB is pinged by /health; nil skips the check.
	DB Pinger

	Idempotency    idempotency.Store
	IdempotencyTTL time.Duration

	Metrics *metrics.Metrics
	Log     *logrus.Logger
}

type Handler struct {
	router *chi.Mux
	deps   Deps

	users     *UserHandler
	items     *ItemHandler
	plants    *PlantHandler
	purchases *PurchaseHandler
}

func NewHandler(deps Deps) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(deps.Log))
	router.Use(middleware.Recoverer)
	router.Use(deps.Metrics.Middleware)
	router.Use(compressor())

	h := &Handler{
		router:    router,
		deps:      deps,
		users:     NewUserHandler(deps.Users, deps.Log),
		items:     NewItemHandler(deps.Items, deps.Log),
		plants:    NewPlantHandler(deps.Plants, deps.Log),
		purchases: NewPurchaseHandler(deps.Purchases, deps.Metrics, deps.Log),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	idem := idempotency.Middleware(h.deps.Idempotency, h.deps.IdempotencyTTL, h.deps.Log)

	h.router.NotFound(notFoundHandler)
	h.router.Get("/health", h.HealthCheck)
	h.router.Method(http.MethodGet, "/metrics", h.deps.Metrics.Handler())

	h.router.Route("/usuaris", func(r chi.Router) {
		r.Get("/", h.users.List)
		r.Post("/", h.users.Create)
		r.Get("/correu/{correu}", h.users.GetByEmail)
		r.With(idem).Put("/btc/{userId}", h.users.AdjustBalance)
		r.Get("/{id}", h.users.Get)
		r.Put("/{id}", h.users.Update)
		r.Delete("/{id}", h.users.Delete)
	})

	h.router.Route("/items", func(r chi.Router) {
		r.Get("/", h.items.List)
		r.Post("/", h.items.Create)
		r.Get("/items_usuaris/{userId}", h.purchases.Holdings)
		r.With(idem).Post("/items_usuaris", h.purchases.Purchase)
		r.Get("/{id}", h.items.Get)
		r.Put("/{id}", h.items.Update)
		r.Delete("/{id}", h.items.Delete)
	})

	h.router.Route("/plantas", func(r chi.Router) {
		r.Get("/", h.plants.List)
		r.Post("/", h.plants.Create)
		r.Get("/{id}", h.plants.Get)
		r.Put("/{id}", h.plants.Update)
		r.Delete("/{id}", h.plants.Delete)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := h.deps.DB.Ping(ctx); err != nil {
			h.deps.Log.WithError(err).Warn("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
