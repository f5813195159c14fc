// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"context"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
)

type nameRequest struct {
	Name string `json:"name"`
}

// referenceHandlers builds the GET/POST/DELETE trio for a name-keyed
// reference list. Fertilizers and pests behave identically.
type referenceHandlers struct {
	label  string
	list   func(context.Context) ([]string, error)
	insert func(context.Context, string) (bool, error)
	remove func(context.Context, string) (bool, error)
}

func (rh referenceHandlers) listHandler(w http.ResponseWriter, r *http.Request) {
	names, err := rh.list(r.Context())
	if err != nil {
		logging.Error().Err(err).Str("category", rh.label).Msg("Reference list failed")
		writeError(w, http.StatusInternalServerError, "Failed to list "+rh.label)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{rh.label: names})
}

func (rh referenceHandlers) createHandler(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Missing name")
		return
	}

	added, err := rh.insert(r.Context(), name)
	if err != nil {
		logging.Error().Err(err).Str("category", rh.label).Str("name", name).Msg("Reference insert failed")
		writeError(w, http.StatusInternalServerError, "Failed to add to "+rh.label)
		return
	}
	writeOK(w, map[string]interface{}{"added": added})
}

func (rh referenceHandlers) deleteHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Missing ?name=")
		return
	}

	removed, err := rh.remove(r.Context(), name)
	if err != nil {
		logging.Error().Err(err).Str("category", rh.label).Str("name", name).Msg("Reference delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to remove from "+rh.label)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeOK(w, nil)
}

func (h *Handler) fertilizerHandlers() referenceHandlers {
	return referenceHandlers{
		label: "fertilizers",
		list: func(ctx context.Context) ([]string, error) {
			items, err := h.store.ListFertilizers(ctx)
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(items))
			for _, f := range items {
				names = append(names, f.Name)
			}
			return names, nil
		},
		insert: h.store.InsertFertilizerIfAbsent,
		remove: h.store.DeleteFertilizer,
	}
}

func (h *Handler) pestHandlers() referenceHandlers {
	return referenceHandlers{
		label: "pests",
		list: func(ctx context.Context) ([]string, error) {
			items, err := h.store.ListPests(ctx)
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(items))
			for _, p := range items {
				names = append(names, p.Name)
			}
			return names, nil
		},
		insert: h.store.InsertPestIfAbsent,
		remove: h.store.DeletePest,
	}
}
