// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package api provides the chi HTTP surface: routing, middleware, and
// handlers for trees, daily updates, reference data, analytics, and backup
// export.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ireshudayanga/coconut-farm-application/internal/backup"
	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
	"github.com/Ireshudayanga/coconut-farm-application/internal/media"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

// Store is the full store surface the handlers use. *store.Store satisfies
// it; tests substitute fakes.
type Store interface {
	Ping(ctx context.Context) error

	TreeExists(ctx context.Context, treeID string) (bool, error)
	InsertTree(ctx context.Context, tree models.Tree) error
	DeleteTree(ctx context.Context, treeID string) (bool, error)
	ListTrees(ctx context.Context) ([]models.Tree, error)
	LastTreeNumber(ctx context.Context) (int, error)

	InsertUpdate(ctx context.Context, update models.Update) error
	ListUpdates(ctx context.Context, treeID string, limit int64) ([]models.Update, error)

	ListFarmers(ctx context.Context) ([]models.Farmer, error)
	InsertFarmer(ctx context.Context, farmer models.Farmer) error
	DeleteFarmer(ctx context.Context, id primitive.ObjectID) error

	ListFertilizers(ctx context.Context) ([]models.Fertilizer, error)
	InsertFertilizerIfAbsent(ctx context.Context, name string) (bool, error)
	DeleteFertilizer(ctx context.Context, name string) (bool, error)
	ListPests(ctx context.Context) ([]models.Pest, error)
	InsertPestIfAbsent(ctx context.Context, name string) (bool, error)
	DeletePest(ctx context.Context, name string) (bool, error)

	UpdatesPerDay(ctx context.Context, treeID string) ([]store.DayCount, error)
	WateringSummary(ctx context.Context, treeID string) ([]store.WateredCount, error)
	FlagBreakdown(ctx context.Context, treeID string) ([]store.FlagCount, error)

	UpdatesBetween(ctx context.Context, from, to string, inclusive bool) ([]models.Update, error)
	TreesCreatedBetween(ctx context.Context, start, end time.Time, inclusive bool) ([]models.Tree, error)
}

// ImageUploader sends daily-update photos to the image host.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*media.UploadResult, error)
}

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	store    Store
	exporter *backup.Exporter
	uploader ImageUploader
	cfg      *config.Config
}

// NewHandler wires the handler set.
func NewHandler(st Store, uploader ImageUploader, cfg *config.Config) *Handler {
	return &Handler{
		store:    st,
		exporter: backup.NewExporter(st),
		uploader: uploader,
		cfg:      cfg,
	}
}

// Health reports liveness and store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"store":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
