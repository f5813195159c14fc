// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"net/http"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// nameValue is the chart-friendly row shape the dashboard consumes.
type nameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// AnalyticsUpdatesPerDay returns daily update counts, oldest first.
func (h *Handler) AnalyticsUpdatesPerDay(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.UpdatesPerDay(r.Context(), r.URL.Query().Get("treeId"))
	if err != nil {
		logging.Error().Err(err).Msg("Updates-per-day aggregation failed")
		writeError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	type dayRow struct {
		Date  string `json:"date"`
		Count int64  `json:"count"`
	}
	out := make([]dayRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dayRow{Date: row.Date, Count: row.Count})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updates": out})
}

// AnalyticsWateringSummary returns watered vs not-watered totals.
func (h *Handler) AnalyticsWateringSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.WateringSummary(r.Context(), r.URL.Query().Get("treeId"))
	if err != nil {
		logging.Error().Err(err).Msg("Watering summary aggregation failed")
		writeError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	out := make([]nameValue, 0, len(rows))
	for _, row := range rows {
		name := "Not Watered"
		if row.Watered {
			name = "Watered"
		}
		out = append(out, nameValue{Name: name, Value: row.Count})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": out})
}

// AnalyticsFlagBreakdown returns occurrence counts per flag, labelled.
func (h *Handler) AnalyticsFlagBreakdown(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.FlagBreakdown(r.Context(), r.URL.Query().Get("treeId"))
	if err != nil {
		logging.Error().Err(err).Msg("Flag breakdown aggregation failed")
		writeError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	out := make([]nameValue, 0, len(rows))
	for _, row := range rows {
		out = append(out, nameValue{Name: models.FlagLabel(row.Flag), Value: row.Count})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": out})
}
