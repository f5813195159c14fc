// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Ireshudayanga/coconut-farm-application/internal/backup"
	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/metrics"
)

// BackupMonth exports one calendar month as a downloadable JSON payload.
func (h *Handler) BackupMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "Missing ?month=YYYY-MM")
		return
	}

	payload, err := h.exporter.ExportMonth(r.Context(), month)
	if err != nil {
		if errors.Is(err, backup.ErrInvalidMonth) {
			metrics.BackupExportsTotal.WithLabelValues("month", "invalid").Inc()
			writeError(w, http.StatusBadRequest, "Invalid month format")
			return
		}
		metrics.BackupExportsTotal.WithLabelValues("month", "error").Inc()
		logging.Error().Err(err).Str("month", month).Msg("Backup export failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate backup")
		return
	}

	metrics.BackupExportsTotal.WithLabelValues("month", "success").Inc()
	h.sendPayload(w, payload)
}

// BackupRange exports an inclusive date range as a downloadable JSON payload.
func (h *Handler) BackupRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "Missing ?start=YYYY-MM-DD&end=YYYY-MM-DD")
		return
	}

	payload, err := h.exporter.ExportRange(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, backup.ErrInvalidRange) {
			metrics.BackupExportsTotal.WithLabelValues("range", "invalid").Inc()
			writeError(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		metrics.BackupExportsTotal.WithLabelValues("range", "error").Inc()
		logging.Error().Err(err).Str("start", start).Str("end", end).Msg("Backup export failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate backup")
		return
	}

	metrics.BackupExportsTotal.WithLabelValues("range", "success").Inc()
	h.sendPayload(w, payload)
}

func (h *Handler) sendPayload(w http.ResponseWriter, payload *backup.Payload) {
	metrics.BackupExportDocuments.WithLabelValues("updates").Observe(float64(len(payload.Updates)))
	metrics.BackupExportDocuments.WithLabelValues("trees").Observe(float64(len(payload.Trees)))
	metrics.BackupExportDocuments.WithLabelValues("farmers").Observe(float64(len(payload.Farmers)))
	metrics.BackupExportDocuments.WithLabelValues("fertilizers").Observe(float64(len(payload.Fertilizers)))
	metrics.BackupExportDocuments.WithLabelValues("pests").Observe(float64(len(payload.Pests)))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename()))
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to stream backup payload")
	}
}
