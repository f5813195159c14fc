// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// ErrTreeExists is returned when inserting a tree whose id is already taken.
var ErrTreeExists = errors.New("tree already exists")

// TreeExists reports whether a tree with the given id is registered.
func (s *Store) TreeExists(ctx context.Context, treeID string) (bool, error) {
	err := s.trees.FindOne(ctx, bson.M{"id": treeID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find tree %s: %w", treeID, err)
	}
	return true, nil
}

// InsertTree registers a new tree. Returns ErrTreeExists if the id is taken.
func (s *Store) InsertTree(ctx context.Context, tree models.Tree) error {
	exists, err := s.TreeExists(ctx, tree.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrTreeExists
	}

	if _, err := s.trees.InsertOne(ctx, tree); err != nil {
		return fmt.Errorf("insert tree %s: %w", tree.ID, err)
	}
	return nil
}

// DeleteTree removes a tree record by its human-readable id.
func (s *Store) DeleteTree(ctx context.Context, treeID string) (bool, error) {
	res, err := s.trees.DeleteOne(ctx, bson.M{"id": treeID})
	if err != nil {
		return false, fmt.Errorf("delete tree %s: %w", treeID, err)
	}
	return res.DeletedCount > 0, nil
}

// ListTrees returns every tree sorted by id.
func (s *Store) ListTrees(ctx context.Context) ([]models.Tree, error) {
	cur, err := s.trees.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}

	var trees []models.Tree
	if err := cur.All(ctx, &trees); err != nil {
		return nil, fmt.Errorf("decode trees: %w", err)
	}
	return trees, nil
}

// LastTreeNumber returns the highest numeric suffix among TREE-<n> ids,
// or 0 when no trees exist.
func (s *Store) LastTreeNumber(ctx context.Context) (int, error) {
	filter := bson.M{"id": primitive.Regex{Pattern: `^TREE-\d+$`}}
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var tree models.Tree
	err := s.trees.FindOne(ctx, filter, opts).Decode(&tree)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find last tree: %w", err)
	}

	parts := strings.SplitN(tree.ID, "-", 2)
	if len(parts) != 2 {
		return 0, nil
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// TreesCreatedBetween returns trees whose createdAt falls in the window,
// ascending by createdAt. The end bound is exclusive unless inclusive is set
// (range-mode exports include the whole end day).
func (s *Store) TreesCreatedBetween(ctx context.Context, start, end time.Time, inclusive bool) (_ []models.Tree, err error) {
	defer observe("find", colTrees, time.Now(), &err)

	endOp := "$lt"
	if inclusive {
		endOp = "$lte"
	}
	filter := bson.M{"createdAt": bson.M{"$gte": start, endOp: end}}

	cur, err := s.trees.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find trees in window: %w", err)
	}

	var trees []models.Tree
	if err := cur.All(ctx, &trees); err != nil {
		return nil, fmt.Errorf("decode trees: %w", err)
	}
	return trees, nil
}

// ReplaceTree upserts a restored tree document keyed by its id string.
// The document is applied as-is ($set), matching the export shape.
func (s *Store) ReplaceTree(ctx context.Context, doc bson.M) (err error) {
	defer observe("upsert", colTrees, time.Now(), &err)

	id, _ := doc["id"].(string)
	if id == "" {
		return errors.New("tree document missing id")
	}

	_, err = s.trees.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert tree %s: %w", id, err)
	}
	return nil
}
