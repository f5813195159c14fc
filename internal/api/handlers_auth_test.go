// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestOwnerLoginSetsCookie(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp := postJSON(t, srv.URL+"/api/owner-login", `{"password": "secret"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == ownerCookieName && c.Value == ownerCookieValue {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "owner cookie not set")
	resp.Body.Close()
}

func TestOwnerLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp := postJSON(t, srv.URL+"/api/owner-login", `{"password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	resp.Body.Close()
}

func TestFarmerLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("field123"), bcrypt.MinCost)
	require.NoError(t, err)
	srv := newTestServer(t, &fakeStore{})

	resp := postJSON(t, srv.URL+"/api/farmer-login", `{"password": "field123", "hash": "`+string(hash)+`"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["ok"])

	resp = postJSON(t, srv.URL+"/api/farmer-login", `{"password": "nope", "hash": "`+string(hash)+`"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.False(t, body["ok"])
}

func TestFarmerLoginMissingFields(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp := postJSON(t, srv.URL+"/api/farmer-login", `{"password": "x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
