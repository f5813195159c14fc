// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

// farmerView is the list representation. The password hash is used by the
// farmer-login flow, so it travels with the list; ids are hex strings.
type farmerView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// ListFarmers returns all farmer accounts sorted by name.
func (h *Handler) ListFarmers(w http.ResponseWriter, r *http.Request) {
	farmers, err := h.store.ListFarmers(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Farmer list failed")
		writeError(w, http.StatusInternalServerError, "Failed to list farmers")
		return
	}

	out := make([]farmerView, 0, len(farmers))
	for _, f := range farmers {
		out = append(out, farmerView{
			ID:           f.OID.Hex(),
			Name:         f.Name,
			Username:     f.Username,
			PasswordHash: f.PasswordHash,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"farmers": out})
}

type createFarmerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateFarmer registers one account. Owner only.
func (h *Handler) CreateFarmer(w http.ResponseWriter, r *http.Request) {
	var req createFarmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logging.Error().Err(err).Msg("Password hash failed")
		writeError(w, http.StatusInternalServerError, "Failed to create farmer")
		return
	}

	farmer := models.Farmer{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.store.InsertFarmer(r.Context(), farmer); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}
		logging.Error().Err(err).Str("username", req.Username).Msg("Farmer insert failed")
		writeError(w, http.StatusInternalServerError, "Failed to create farmer")
		return
	}
	writeOK(w, nil)
}

// DeleteFarmer removes one account by id. Owner only.
func (h *Handler) DeleteFarmer(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing ?id=")
		return
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.store.DeleteFarmer(r.Context(), oid); err != nil {
		logging.Error().Err(err).Str("farmer_id", id).Msg("Farmer delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete farmer")
		return
	}
	writeOK(w, nil)
}
