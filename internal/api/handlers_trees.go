// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

// TreeExists reports whether a scanned tree code is registered.
func (h *Handler) TreeExists(w http.ResponseWriter, r *http.Request) {
	treeID := r.URL.Query().Get("id")
	if treeID == "" {
		writeError(w, http.StatusBadRequest, "Missing ?id=")
		return
	}

	exists, err := h.store.TreeExists(r.Context(), treeID)
	if err != nil {
		logging.Error().Err(err).Str("tree_id", treeID).Msg("Tree lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to check tree")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// CreateTree registers a new tree code. Form fields: treeId, date.
func (h *Handler) CreateTree(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	treeID := r.FormValue("treeId")
	if treeID == "" {
		writeError(w, http.StatusBadRequest, "Missing treeId")
		return
	}

	createdAt := time.Now().UTC()
	if date := r.FormValue("date"); date != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC); err == nil {
			createdAt = parsed
		}
	}

	err := h.store.InsertTree(r.Context(), models.Tree{ID: treeID, CreatedAt: createdAt})
	if err != nil {
		if errors.Is(err, store.ErrTreeExists) {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"ok":      false,
				"message": "Tree already exists",
			})
			return
		}
		logging.Error().Err(err).Str("tree_id", treeID).Msg("Tree insert failed")
		writeError(w, http.StatusInternalServerError, "Failed to create tree")
		return
	}
	writeOK(w, map[string]interface{}{"message": "Tree registered"})
}

// DeleteTree removes a tree record. Owner only.
func (h *Handler) DeleteTree(w http.ResponseWriter, r *http.Request) {
	treeID := r.URL.Query().Get("id")
	if treeID == "" {
		writeError(w, http.StatusBadRequest, "Missing ?id=")
		return
	}

	deleted, err := h.store.DeleteTree(r.Context(), treeID)
	if err != nil {
		logging.Error().Err(err).Str("tree_id", treeID).Msg("Tree delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete tree")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Tree not found")
		return
	}
	writeOK(w, nil)
}

// ListTrees returns every registered tree id, sorted.
func (h *Handler) ListTrees(w http.ResponseWriter, r *http.Request) {
	trees, err := h.store.ListTrees(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Tree list failed")
		writeError(w, http.StatusInternalServerError, "Failed to list trees")
		return
	}

	out := make([]map[string]string, 0, len(trees))
	for _, t := range trees {
		out = append(out, map[string]string{"id": t.ID})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"trees": out})
}

// LastTree returns the highest TREE-<number> suffix, for generating the
// next code.
func (h *Handler) LastTree(w http.ResponseWriter, r *http.Request) {
	last, err := h.store.LastTreeNumber(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Last tree lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to find last tree")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"lastNumber": last})
}
