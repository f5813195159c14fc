// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// DayCount is one bucket of the updates-per-day series.
type DayCount struct {
	Date  string `bson:"_id"`
	Count int64  `bson:"count"`
}

// boolCount and intCount decode the grouped aggregation rows before they
// are labelled by the handlers.

type boolCount struct {
	Watered bool  `bson:"_id"`
	Count   int64 `bson:"count"`
}

type intCount struct {
	Value int   `bson:"_id"`
	Count int64 `bson:"count"`
}

// WateredCount pairs a watered/not-watered bucket with its total.
type WateredCount struct {
	Watered bool
	Count   int64
}

// FlagCount pairs a flag value with its total across all updates.
type FlagCount struct {
	Flag  int
	Count int64
}

func matchStage(treeID string) []bson.D {
	if treeID == "" {
		return nil
	}
	return []bson.D{{{Key: "$match", Value: bson.M{"treeId": treeID}}}}
}

// UpdatesPerDay groups updates by calendar date, ascending, capped at the
// most recent 30 buckets surfaced by the dashboard.
func (s *Store) UpdatesPerDay(ctx context.Context, treeID string) ([]DayCount, error) {
	pipeline := append(matchStage(treeID),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$date",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
		bson.D{{Key: "$limit", Value: 30}},
	)

	cur, err := s.updates.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate updates per day: %w", err)
	}

	var rows []DayCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode updates per day: %w", err)
	}
	return rows, nil
}

// WateringSummary groups updates by their watered flag.
func (s *Store) WateringSummary(ctx context.Context, treeID string) ([]WateredCount, error) {
	pipeline := append(matchStage(treeID),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$watered",
			"count": bson.M{"$sum": 1},
		}}},
	)

	cur, err := s.updates.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate watering summary: %w", err)
	}

	var rows []boolCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode watering summary: %w", err)
	}

	out := make([]WateredCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, WateredCount{Watered: r.Watered, Count: r.Count})
	}
	return out, nil
}

// FlagBreakdown unwinds update flags and counts occurrences per value.
func (s *Store) FlagBreakdown(ctx context.Context, treeID string) ([]FlagCount, error) {
	pipeline := append(matchStage(treeID),
		bson.D{{Key: "$unwind", Value: "$flags"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$flags",
			"count": bson.M{"$sum": 1},
		}}},
	)

	cur, err := s.updates.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate flag breakdown: %w", err)
	}

	var rows []intCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode flag breakdown: %w", err)
	}

	out := make([]FlagCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, FlagCount{Flag: r.Value, Count: r.Count})
	}
	return out, nil
}
