// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

type analyticsStore struct {
	fakeStore

	gotTreeID string
	days      []store.DayCount
	watering  []store.WateredCount
	flags     []store.FlagCount
}

func (a *analyticsStore) UpdatesPerDay(_ context.Context, treeID string) ([]store.DayCount, error) {
	a.gotTreeID = treeID
	return a.days, nil
}

func (a *analyticsStore) WateringSummary(_ context.Context, treeID string) ([]store.WateredCount, error) {
	a.gotTreeID = treeID
	return a.watering, nil
}

func (a *analyticsStore) FlagBreakdown(_ context.Context, treeID string) ([]store.FlagCount, error) {
	a.gotTreeID = treeID
	return a.flags, nil
}

func TestAnalyticsRequiresOwner(t *testing.T) {
	srv := newTestServer(t, &analyticsStore{})

	resp, err := http.Get(srv.URL + "/api/analytics/updates-per-day")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAnalyticsUpdatesPerDay(t *testing.T) {
	st := &analyticsStore{days: []store.DayCount{{Date: "2024-06-01", Count: 3}, {Date: "2024-06-02", Count: 1}}}
	srv := newTestServer(t, st)

	resp, err := http.DefaultClient.Do(ownerRequest(t, http.MethodGet, srv.URL+"/api/analytics/updates-per-day?treeId=TREE-001", nil))
	require.NoError(t, err)

	var body struct {
		Updates []struct {
			Date  string `json:"date"`
			Count int64  `json:"count"`
		} `json:"updates"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "TREE-001", st.gotTreeID)
	require.Len(t, body.Updates, 2)
	assert.Equal(t, "2024-06-01", body.Updates[0].Date)
	assert.Equal(t, int64(3), body.Updates[0].Count)
}

func TestAnalyticsWateringSummaryLabels(t *testing.T) {
	st := &analyticsStore{watering: []store.WateredCount{{Watered: true, Count: 5}, {Watered: false, Count: 2}}}
	srv := newTestServer(t, st)

	resp, err := http.DefaultClient.Do(ownerRequest(t, http.MethodGet, srv.URL+"/api/analytics/watering-summary", nil))
	require.NoError(t, err)

	var body struct {
		Summary []nameValue `json:"summary"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []nameValue{{Name: "Watered", Value: 5}, {Name: "Not Watered", Value: 2}}, body.Summary)
}

func TestAnalyticsFlagBreakdownLabels(t *testing.T) {
	st := &analyticsStore{flags: []store.FlagCount{{Flag: 0, Count: 4}, {Flag: 1, Count: 2}, {Flag: 9, Count: 1}}}
	srv := newTestServer(t, st)

	resp, err := http.DefaultClient.Do(ownerRequest(t, http.MethodGet, srv.URL+"/api/analytics/flag-breakdown", nil))
	require.NoError(t, err)

	var body struct {
		Summary []nameValue `json:"summary"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []nameValue{
		{Name: "Healthy", Value: 4},
		{Name: "Pests", Value: 2},
		{Name: "Flag 9", Value: 1},
	}, body.Summary)
}
