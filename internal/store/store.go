// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package store is the MongoDB persistence layer. A Store is constructed
// explicitly by each process entry point and passed down; there is no
// lazily-initialized package-level handle.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
	"github.com/Ireshudayanga/coconut-farm-application/internal/metrics"
)

// Collection names.
const (
	colTrees       = "trees"
	colUpdates     = "updates"
	colFarmers     = "farmers"
	colFertilizers = "fertilizers"
	colPests       = "pests"
)

// defaultDatabase is used when neither the config nor the connection string
// names a database.
const defaultDatabase = "coconut-farm"

// Store wraps a MongoDB client and the collections used by the application.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	trees       *mongo.Collection
	updates     *mongo.Collection
	farmers     *mongo.Collection
	fertilizers *mongo.Collection
	pests       *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg *config.MongoConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(databaseName(cfg))

	return &Store{
		client:      client,
		db:          db,
		trees:       db.Collection(colTrees),
		updates:     db.Collection(colUpdates),
		farmers:     db.Collection(colFarmers),
		fertilizers: db.Collection(colFertilizers),
		pests:       db.Collection(colPests),
	}, nil
}

// databaseName picks the database for a connection. An explicit Database
// setting wins, then the name embedded in the connection string, then the
// default.
func databaseName(cfg *config.MongoConfig) string {
	if cfg.Database != "" {
		return cfg.Database
	}
	if cs, err := connstring.Parse(cfg.URI); err == nil && cs.Database != "" {
		return cs.Database
	}
	return defaultDatabase
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies connectivity, for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// EnsureBackupIndexes creates the lookup structures the restore workflow
// relies on. Safe to call repeatedly.
func (s *Store) EnsureBackupIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := s.trees.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create trees.id index: %w", err)
	}

	if _, err := s.farmers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create farmers.username index: %w", err)
	}

	if _, err := s.updates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "treeId", Value: 1}, {Key: "date", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create updates(treeId,date) index: %w", err)
	}

	return nil
}

// observe feeds the Prometheus store instruments. Called as
// defer observe("find", colUpdates, time.Now(), &err) with a named return.
func observe(operation, collection string, start time.Time, err *error) {
	metrics.ObserveStoreQuery(operation, collection, time.Since(start), *err)
}

// CategoryCounts reports document totals per category, for the restore
// summary.
type CategoryCounts struct {
	Farmers     int64
	Fertilizers int64
	Pests       int64
	Trees       int64
	Updates     int64
}

// Counts returns document totals for every category.
func (s *Store) Counts(ctx context.Context) (CategoryCounts, error) {
	var c CategoryCounts
	var err error

	if c.Farmers, err = s.farmers.CountDocuments(ctx, bson.M{}); err != nil {
		return c, fmt.Errorf("count farmers: %w", err)
	}
	if c.Fertilizers, err = s.fertilizers.CountDocuments(ctx, bson.M{}); err != nil {
		return c, fmt.Errorf("count fertilizers: %w", err)
	}
	if c.Pests, err = s.pests.CountDocuments(ctx, bson.M{}); err != nil {
		return c, fmt.Errorf("count pests: %w", err)
	}
	if c.Trees, err = s.trees.CountDocuments(ctx, bson.M{}); err != nil {
		return c, fmt.Errorf("count trees: %w", err)
	}
	if c.Updates, err = s.updates.CountDocuments(ctx, bson.M{}); err != nil {
		return c, fmt.Errorf("count updates: %w", err)
	}

	return c, nil
}
