// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// Fertilizer and pest reference lists share the same name-keyed shape;
// each is backed by its own collection.

// ListFertilizers returns every fertilizer sorted by name.
func (s *Store) ListFertilizers(ctx context.Context) ([]models.Fertilizer, error) {
	cur, err := s.fertilizers.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list fertilizers: %w", err)
	}

	var items []models.Fertilizer
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode fertilizers: %w", err)
	}
	return items, nil
}

// InsertFertilizerIfAbsent creates the named fertilizer unless it exists.
// Existing entries are never modified. Returns true when a new document was
// inserted.
func (s *Store) InsertFertilizerIfAbsent(ctx context.Context, name string) (bool, error) {
	return s.insertNameIfAbsent(ctx, s.fertilizers, name)
}

// DeleteFertilizer removes the named fertilizer. Returns false when no such
// name exists.
func (s *Store) DeleteFertilizer(ctx context.Context, name string) (bool, error) {
	return s.deleteByName(ctx, s.fertilizers, name)
}

// ListPests returns every pest sorted by name.
func (s *Store) ListPests(ctx context.Context) ([]models.Pest, error) {
	cur, err := s.pests.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pests: %w", err)
	}

	var items []models.Pest
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode pests: %w", err)
	}
	return items, nil
}

// InsertPestIfAbsent creates the named pest unless it exists. Existing
// entries are never modified. Returns true when a new document was inserted.
func (s *Store) InsertPestIfAbsent(ctx context.Context, name string) (bool, error) {
	return s.insertNameIfAbsent(ctx, s.pests, name)
}

// DeletePest removes the named pest. Returns false when no such name exists.
func (s *Store) DeletePest(ctx context.Context, name string) (bool, error) {
	return s.deleteByName(ctx, s.pests, name)
}

func (s *Store) insertNameIfAbsent(ctx context.Context, col *mongo.Collection, name string) (bool, error) {
	res, err := col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": bson.M{"name": name}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert %s name %q: %w", col.Name(), name, err)
	}
	return res.UpsertedCount > 0, nil
}

func (s *Store) deleteByName(ctx context.Context, col *mongo.Collection, name string) (bool, error) {
	res, err := col.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("delete %s name %q: %w", col.Name(), name, err)
	}
	return res.DeletedCount > 0, nil
}
