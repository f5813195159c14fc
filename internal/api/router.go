// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
)

// Router builds the HTTP handler tree.
type Router struct {
	handler *Handler
	cfg     *config.Config
}

// NewRouter wires routes to a handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup returns the complete chi handler. Backup routes live outside /api,
// matching the paths the owner dashboard downloads from.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	h := rt.handler
	apiLimit := RateLimit(requestBudget(rt.cfg.Server), time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimit)

		r.With(LoginThrottle(1, 5)).Post("/owner-login", h.OwnerLogin)
		r.With(LoginThrottle(1, 5)).Post("/farmer-login", h.FarmerLogin)

		r.Get("/health", h.Health)

		r.Route("/tree", func(r chi.Router) {
			r.Get("/", h.TreeExists)
			r.Post("/", h.CreateTree)
			r.With(RequireOwner).Delete("/", h.DeleteTree)
			r.Get("/all", h.ListTrees)
			r.Get("/last", h.LastTree)
		})

		r.Route("/daily-update", func(r chi.Router) {
			r.Post("/", h.CreateDailyUpdate)
			r.Get("/", h.ListDailyUpdates)
		})

		r.Route("/farmers", func(r chi.Router) {
			r.Get("/", h.ListFarmers)
			r.With(RequireOwner).Post("/", h.CreateFarmer)
			r.With(RequireOwner).Delete("/", h.DeleteFarmer)
		})

		fertilizers := h.fertilizerHandlers()
		r.Route("/fertilizers", func(r chi.Router) {
			r.Get("/", fertilizers.listHandler)
			r.With(RequireOwner).Post("/", fertilizers.createHandler)
			r.With(RequireOwner).Delete("/", fertilizers.deleteHandler)
		})

		pests := h.pestHandlers()
		r.Route("/pests", func(r chi.Router) {
			r.Get("/", pests.listHandler)
			r.With(RequireOwner).Post("/", pests.createHandler)
			r.With(RequireOwner).Delete("/", pests.deleteHandler)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(RequireOwner)
			r.Get("/updates-per-day", h.AnalyticsUpdatesPerDay)
			r.Get("/watering-summary", h.AnalyticsWateringSummary)
			r.Get("/flag-breakdown", h.AnalyticsFlagBreakdown)
		})
	})

	r.Route("/backup", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(RequireOwner)
		r.Get("/month", h.BackupMonth)
		r.Get("/range", h.BackupRange)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestBudget folds the sustained rate and its burst headroom into a
// per-minute sliding-window budget. Zero RPS disables limiting.
func requestBudget(cfg config.ServerConfig) int {
	if cfg.RateLimitRPS <= 0 {
		return 0
	}
	return int(cfg.RateLimitRPS*60) + cfg.RateLimitBurst
}
