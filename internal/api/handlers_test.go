// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
	"github.com/Ireshudayanga/coconut-farm-application/internal/media"
	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

// fakeStore embeds the Store interface so each test stubs only what it
// touches; calling anything unstubbed panics and fails the test loudly.
type fakeStore struct {
	Store

	trees       []models.Tree
	updates     []models.Update
	farmers     []models.Farmer
	fertilizers []models.Fertilizer
	pests       []models.Pest

	queried bool
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) TreeExists(_ context.Context, id string) (bool, error) {
	for _, t := range f.trees {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertTree(_ context.Context, t models.Tree) error {
	for _, existing := range f.trees {
		if existing.ID == t.ID {
			return store.ErrTreeExists
		}
	}
	f.trees = append(f.trees, t)
	return nil
}

func (f *fakeStore) ListTrees(context.Context) ([]models.Tree, error) {
	return f.trees, nil
}

func (f *fakeStore) InsertUpdate(_ context.Context, u models.Update) error {
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeStore) ListUpdates(_ context.Context, treeID string, _ int64) ([]models.Update, error) {
	var out []models.Update
	for _, u := range f.updates {
		if u.TreeID == treeID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) ListFarmers(context.Context) ([]models.Farmer, error) {
	return f.farmers, nil
}

func (f *fakeStore) InsertFarmer(_ context.Context, farmer models.Farmer) error {
	for _, existing := range f.farmers {
		if existing.Username == farmer.Username {
			return store.ErrUsernameTaken
		}
	}
	f.farmers = append(f.farmers, farmer)
	return nil
}

func (f *fakeStore) ListFertilizers(context.Context) ([]models.Fertilizer, error) {
	return f.fertilizers, nil
}

func (f *fakeStore) InsertFertilizerIfAbsent(_ context.Context, name string) (bool, error) {
	for _, existing := range f.fertilizers {
		if existing.Name == name {
			return false, nil
		}
	}
	f.fertilizers = append(f.fertilizers, models.Fertilizer{Name: name})
	return true, nil
}

func (f *fakeStore) ListPests(context.Context) ([]models.Pest, error) {
	return f.pests, nil
}

func (f *fakeStore) UpdatesBetween(_ context.Context, from, to string, inclusive bool) ([]models.Update, error) {
	f.queried = true
	var out []models.Update
	for _, u := range f.updates {
		if u.Date >= from && (u.Date < to || (inclusive && u.Date == to)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) TreesCreatedBetween(_ context.Context, start, end time.Time, inclusive bool) ([]models.Tree, error) {
	f.queried = true
	var out []models.Tree
	for _, t := range f.trees {
		if !t.CreatedAt.Before(start) && (t.CreatedAt.Before(end) || (inclusive && t.CreatedAt.Equal(end))) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUploader struct {
	result *media.UploadResult
	err    error
}

func (f *fakeUploader) Upload(context.Context, string, io.Reader) (*media.UploadResult, error) {
	return f.result, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Security: config.SecurityConfig{OwnerPassword: "secret"},
	}
}

func newTestServer(t *testing.T, st Store) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	return newTestServerWith(t, NewHandler(st, &fakeUploader{}, cfg), cfg)
}

func newTestServerWith(t *testing.T, handler *Handler, cfg *config.Config) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(handler, cfg).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func ownerRequest(t *testing.T, method, url string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: ownerCookieName, Value: ownerCookieValue})
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func newObjectID() primitive.ObjectID { return primitive.NewObjectID() }
