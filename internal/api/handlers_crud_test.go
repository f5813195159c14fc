// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ireshudayanga/coconut-farm-application/internal/media"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

func TestTreeExists(t *testing.T) {
	st := &fakeStore{trees: []models.Tree{{ID: "TREE-001", CreatedAt: time.Now()}}}
	srv := newTestServer(t, st)

	resp, err := http.Get(srv.URL + "/api/tree?id=TREE-001")
	require.NoError(t, err)
	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["exists"])

	resp, err = http.Get(srv.URL + "/api/tree?id=TREE-999")
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	assert.False(t, body["exists"])
}

func TestCreateTree(t *testing.T) {
	st := &fakeStore{}
	srv := newTestServer(t, st)

	form := url.Values{"treeId": {"TREE-001"}, "date": {"2024-06-01"}}
	resp, err := http.PostForm(srv.URL+"/api/tree", form)
	require.NoError(t, err)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, true, body["ok"])
	require.Len(t, st.trees, 1)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), st.trees[0].CreatedAt)

	// Duplicate registration is reported, not retried.
	resp, err = http.PostForm(srv.URL+"/api/tree", form)
	require.NoError(t, err)
	decodeBody(t, resp, &body)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Tree already exists", body["message"])
}

func TestDeleteTreeRequiresOwner(t *testing.T) {
	srv := newTestServer(t, &fakeStore{trees: []models.Tree{{ID: "TREE-001"}}})

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/tree?id=TREE-001", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateDailyUpdateWithImage(t *testing.T) {
	st := &fakeStore{}
	cfg := testConfig()
	uploader := &fakeUploader{result: &media.UploadResult{SecureURL: "https://img.example/abc.jpg"}}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("treeId", "TREE-001"))
	require.NoError(t, mw.WriteField("date", "2024-06-15"))
	require.NoError(t, mw.WriteField("watered", "true"))
	require.NoError(t, mw.WriteField("fertilizers", `["Urea"]`))
	require.NoError(t, mw.WriteField("flags", `[0, 3]`))
	require.NoError(t, mw.WriteField("notes", "healthy"))
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	handler := NewHandler(st, uploader, cfg)
	srv := newTestServerWith(t, handler, cfg)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/daily-update", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, st.updates, 1)
	u := st.updates[0]
	assert.Equal(t, "TREE-001", u.TreeID)
	assert.Equal(t, "2024-06-15", u.Date)
	assert.True(t, u.Watered)
	assert.Equal(t, []string{"Urea"}, u.Fertilizers)
	assert.Equal(t, []int{0, 3}, u.Flags)
	require.NotNil(t, u.ImageURL)
	assert.Equal(t, "https://img.example/abc.jpg", *u.ImageURL)
}

func TestCreateDailyUpdateRejectsBadDate(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("treeId", "TREE-001"))
	require.NoError(t, mw.WriteField("date", "June 15"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/daily-update", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateFarmer(t *testing.T) {
	st := &fakeStore{}
	srv := newTestServer(t, st)

	body := `{"name": "Sunil", "username": "sunil", "password": "field123"}`
	resp, err := http.DefaultClient.Do(ownerRequest(t, http.MethodPost, srv.URL+"/api/farmers", strings.NewReader(body)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Len(t, st.farmers, 1)
	// Stored as a bcrypt hash, never plaintext.
	assert.NotEqual(t, "field123", st.farmers[0].PasswordHash)
	assert.True(t, strings.HasPrefix(st.farmers[0].PasswordHash, "$2"))

	// Duplicate username conflicts.
	resp, err = http.DefaultClient.Do(ownerRequest(t, http.MethodPost, srv.URL+"/api/farmers", strings.NewReader(body)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateFarmerMissingFields(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, err := http.DefaultClient.Do(ownerRequest(t, http.MethodPost, srv.URL+"/api/farmers", strings.NewReader(`{"name": "X"}`)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestFertilizerRoundTrip(t *testing.T) {
	st := &fakeStore{}
	srv := newTestServer(t, st)

	resp, err := http.DefaultClient.Do(ownerRequest(t, http.MethodPost, srv.URL+"/api/fertilizers", strings.NewReader(`{"name": "  Urea  "}`)))
	require.NoError(t, err)
	var created map[string]interface{}
	decodeBody(t, resp, &created)
	assert.Equal(t, true, created["added"])

	// Names are trimmed and inserted once.
	resp, err = http.DefaultClient.Do(ownerRequest(t, http.MethodPost, srv.URL+"/api/fertilizers", strings.NewReader(`{"name": "Urea"}`)))
	require.NoError(t, err)
	decodeBody(t, resp, &created)
	assert.Equal(t, false, created["added"])

	resp, err = http.Get(srv.URL + "/api/fertilizers")
	require.NoError(t, err)
	var list map[string][]string
	decodeBody(t, resp, &list)
	assert.Equal(t, []string{"Urea"}, list["fertilizers"])
}
