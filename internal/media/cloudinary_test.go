// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
)

func testUploader(t *testing.T, handler http.HandlerFunc) *Uploader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u := NewUploader(&config.MediaConfig{
		CloudName:    "demo",
		UploadPreset: "treeFarm",
		Folder:       "tree-updates",
		Timeout:      5 * time.Second,
	})
	u.baseURL = srv.URL
	return u
}

func TestUpload(t *testing.T) {
	var gotPreset, gotFolder string
	u := testUploader(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotPreset = r.FormValue("upload_preset")
		gotFolder = r.FormValue("folder")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url": "https://img.example/tree-updates/abc.jpg", "public_id": "tree-updates/abc"}`))
	})

	res, err := u.Upload(context.Background(), "photo.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.Equal(t, "treeFarm", gotPreset)
	assert.Equal(t, "tree-updates", gotFolder)
	assert.Equal(t, "https://img.example/tree-updates/abc.jpg", res.SecureURL)
	assert.Equal(t, "tree-updates/abc", res.PublicID)
}

func TestUploadHostError(t *testing.T) {
	u := testUploader(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "Invalid upload preset"}}`, http.StatusBadRequest)
	})

	_, err := u.Upload(context.Background(), "photo.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestUploadMissingSecureURL(t *testing.T) {
	u := testUploader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"public_id": "abc"}`))
	})

	_, err := u.Upload(context.Background(), "photo.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}

func TestUploadNotConfigured(t *testing.T) {
	u := NewUploader(&config.MediaConfig{Timeout: time.Second})
	_, err := u.Upload(context.Background(), "photo.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}
