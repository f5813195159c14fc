// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
)

type ownerLoginRequest struct {
	Password string `json:"password"`
}

// OwnerLogin checks the shared owner password and sets the owner cookie.
func (h *Handler) OwnerLogin(w http.ResponseWriter, r *http.Request) {
	var req ownerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if h.cfg.Security.OwnerPassword == "" || req.Password != h.cfg.Security.OwnerPassword {
		logging.Warn().Msg("Owner login rejected")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ownerCookieName,
		Value:    ownerCookieValue,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})
	writeOK(w, nil)
}

type farmerLoginRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// FarmerLogin compares a submitted password against a farmer's stored hash.
// The client looks up the hash from the farmer list it already holds, so
// this endpoint only does the bcrypt comparison.
func (h *Handler) FarmerLogin(w http.ResponseWriter, r *http.Request) {
	var req farmerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" || req.Hash == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(req.Hash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}
	writeOK(w, nil)
}
