// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// InsertUpdate stores a new daily update. Updates are immutable once
// created; there is no modify path.
func (s *Store) InsertUpdate(ctx context.Context, update models.Update) (err error) {
	defer observe("insert", colUpdates, time.Now(), &err)

	if _, err := s.updates.InsertOne(ctx, update); err != nil {
		return fmt.Errorf("insert update for %s: %w", update.TreeID, err)
	}
	return nil
}

// ListUpdates returns updates newest-first (date, then createdAt within the
// day), optionally filtered by tree, capped at limit.
func (s *Store) ListUpdates(ctx context.Context, treeID string, limit int64) ([]models.Update, error) {
	filter := bson.M{}
	if treeID != "" {
		filter["treeId"] = treeID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := s.updates.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}

	var updates []models.Update
	if err := cur.All(ctx, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

// UpdatesBetween returns updates whose calendar date string falls in
// [from, to), or [from, to] when inclusive is set. Lexicographic comparison
// is safe because the date format is fixed-width YYYY-MM-DD. Results are
// ascending by (date, createdAt).
func (s *Store) UpdatesBetween(ctx context.Context, from, to string, inclusive bool) (_ []models.Update, err error) {
	defer observe("find", colUpdates, time.Now(), &err)

	endOp := "$lt"
	if inclusive {
		endOp = "$lte"
	}
	filter := bson.M{"date": bson.M{"$gte": from, endOp: to}}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cur, err := s.updates.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find updates in window: %w", err)
	}

	var updates []models.Update
	if err := cur.All(ctx, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

// ReplaceUpdate upserts a restored update document using the composite key
// built by the restorer (treeId, date, createdAt, imageUrl-or-null).
func (s *Store) ReplaceUpdate(ctx context.Context, key bson.M, doc bson.M) (err error) {
	defer observe("upsert", colUpdates, time.Now(), &err)

	_, err = s.updates.UpdateOne(ctx, key,
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert update: %w", err)
	}
	return nil
}
