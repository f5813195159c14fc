// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/media"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// maxUpdateUpload bounds the multipart form, image included.
const maxUpdateUpload = 10 << 20

// CreateDailyUpdate records one observation. Multipart fields: treeId,
// date, watered, fertilizers (JSON array), flags (JSON array), notes,
// pestNotes, and an optional image file.
func (h *Handler) CreateDailyUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpdateUpload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	treeID := r.FormValue("treeId")
	date := r.FormValue("date")
	if treeID == "" || date == "" {
		writeError(w, http.StatusBadRequest, "Missing treeId or date")
		return
	}
	if _, err := time.ParseInLocation("2006-01-02", date, time.UTC); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	fertilizers := []string{}
	if raw := r.FormValue("fertilizers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fertilizers); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid fertilizers list")
			return
		}
	}
	flags := []int{}
	if raw := r.FormValue("flags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &flags); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid flags list")
			return
		}
	}

	var imageURL *string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		result, upErr := h.uploader.Upload(r.Context(), header.Filename, file)
		switch {
		case upErr == nil:
			imageURL = &result.SecureURL
		case errors.Is(upErr, media.ErrNotConfigured):
			// Updates still save without a hosted image.
			logging.Warn().Str("tree_id", treeID).Msg("Image dropped, host not configured")
		default:
			logging.Error().Err(upErr).Str("tree_id", treeID).Msg("Image upload failed")
			writeError(w, http.StatusBadGateway, "Failed to upload image")
			return
		}
	}

	update := models.Update{
		TreeID:      treeID,
		Date:        date,
		Watered:     r.FormValue("watered") == "true",
		Fertilizers: fertilizers,
		Flags:       flags,
		Notes:       r.FormValue("notes"),
		PestNotes:   r.FormValue("pestNotes"),
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.InsertUpdate(r.Context(), update); err != nil {
		logging.Error().Err(err).Str("tree_id", treeID).Msg("Update insert failed")
		writeError(w, http.StatusInternalServerError, "Failed to save update")
		return
	}
	writeOK(w, nil)
}

// ListDailyUpdates returns the most recent updates for one tree,
// newest first.
func (h *Handler) ListDailyUpdates(w http.ResponseWriter, r *http.Request) {
	treeID := r.URL.Query().Get("treeId")
	if treeID == "" {
		writeError(w, http.StatusBadRequest, "Missing ?treeId=")
		return
	}

	updates, err := h.store.ListUpdates(r.Context(), treeID, 100)
	if err != nil {
		logging.Error().Err(err).Str("tree_id", treeID).Msg("Update list failed")
		writeError(w, http.StatusInternalServerError, "Failed to list updates")
		return
	}
	if updates == nil {
		updates = []models.Update{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updates": updates})
}
