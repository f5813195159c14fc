// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimitZeroDisables(t *testing.T) {
	h := RateLimit(0, time.Minute)(okHandler)

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tree/all", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	h := RateLimit(2, time.Minute)(okHandler)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tree/all", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tree/all", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"error": "Too many requests"}`, rr.Body.String())
}

func TestRequestBudget(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ServerConfig
		want int
	}{
		{"sustained rate plus headroom", config.ServerConfig{RateLimitRPS: 50, RateLimitBurst: 100}, 3100},
		{"zero rps disables", config.ServerConfig{RateLimitRPS: 0, RateLimitBurst: 100}, 0},
		{"negative rps disables", config.ServerConfig{RateLimitRPS: -1, RateLimitBurst: 100}, 0},
		{"fractional rate rounds down", config.ServerConfig{RateLimitRPS: 0.5, RateLimitBurst: 10}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, requestBudget(tt.cfg))
		})
	}
}
