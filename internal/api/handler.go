package api

import (
	"roombook-backend/internal/auth"
	"roombook-backend/internal/booking"
	"roombook-backend/internal/catalog"
	"roombook-backend/internal/notify"
	"roombook-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	catalog *catalog.Catalog
	// live recomputes availability straight from the store, for the
	// search-on-selection-change flow.
	live *booking.Service
	// grid serves the admin schedule from the polled snapshot.
	grid *booking.Service
	pool *notify.WorkerPool
	auth *auth.Manager
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cat *catalog.Catalog, live, grid *booking.Service, pool *notify.WorkerPool, authMgr *auth.Manager) *Handler {
	return &Handler{
		store:   s,
		catalog: cat,
		live:    live,
		grid:    grid,
		pool:    pool,
		auth:    authMgr,
	}
}
