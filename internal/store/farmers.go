// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// ErrUsernameTaken is returned when inserting a farmer whose username is
// already registered.
var ErrUsernameTaken = errors.New("username already taken")

// ListFarmers returns every farmer sorted by name.
func (s *Store) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	cur, err := s.farmers.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}

	var farmers []models.Farmer
	if err := cur.All(ctx, &farmers); err != nil {
		return nil, fmt.Errorf("decode farmers: %w", err)
	}
	return farmers, nil
}

// InsertFarmer creates a new farmer account. Returns ErrUsernameTaken when
// the username exists.
func (s *Store) InsertFarmer(ctx context.Context, farmer models.Farmer) error {
	err := s.farmers.FindOne(ctx, bson.M{"username": farmer.Username}).Err()
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("find farmer %s: %w", farmer.Username, err)
	}

	if _, err := s.farmers.InsertOne(ctx, farmer); err != nil {
		return fmt.Errorf("insert farmer %s: %w", farmer.Username, err)
	}
	return nil
}

// DeleteFarmer removes a farmer by database identifier.
func (s *Store) DeleteFarmer(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.farmers.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete farmer %s: %w", id.Hex(), err)
	}
	return nil
}

// ReplaceFarmer upserts a restored farmer document keyed by its database
// identifier (materialized or freshly generated by the restorer).
func (s *Store) ReplaceFarmer(ctx context.Context, id interface{}, doc bson.M) error {
	_, err := s.farmers.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert farmer: %w", err)
	}
	return nil
}
