// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package models defines the five record categories stored in MongoDB.
//
// BSON and JSON field names are identical on purpose: backup payloads must
// carry the stored field names with no renaming.
package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flag is a coarse health/status signal attached to a daily update.
type Flag int

const (
	FlagHealthy   Flag = 0
	FlagPests     Flag = 1
	FlagAttention Flag = 2
	FlagRain      Flag = 3
)

// FlagLabel returns the display name for a flag value. Unknown values get a
// generic label so stored data never fails to render.
func FlagLabel(flag int) string {
	switch Flag(flag) {
	case FlagHealthy:
		return "Healthy"
	case FlagPests:
		return "Pests"
	case FlagAttention:
		return "Attention"
	case FlagRain:
		return "Rain"
	default:
		return "Flag " + strconv.Itoa(flag)
	}
}

// Tree is a uniquely identified physical unit, tagged with a scannable code.
// Created once, never updated, deleted explicitly by the owner.
type Tree struct {
	OID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID        string             `bson:"id" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Update is one farmer-submitted observation for a tree on a given day.
// Immutable once created.
//
// Date is a plain YYYY-MM-DD calendar string, not a timestamp; CreatedAt is
// the tie-breaker when a tree receives several updates on one day.
type Update struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TreeID      string             `bson:"treeId" json:"treeId"`
	Date        string             `bson:"date" json:"date"`
	Watered     bool               `bson:"watered" json:"watered"`
	Fertilizers []string           `bson:"fertilizers" json:"fertilizers"`
	Flags       []int              `bson:"flags" json:"flags"`
	Notes       string             `bson:"notes" json:"notes"`
	PestNotes   string             `bson:"pestNotes" json:"pestNotes"`
	ImageURL    *string            `bson:"imageUrl" json:"imageUrl"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Farmer is a field-operator account.
type Farmer struct {
	OID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"passwordHash"`
}

// Fertilizer is a reference-list entry keyed by exact name.
type Fertilizer struct {
	OID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name string             `bson:"name" json:"name"`
}

// Pest is a reference-list entry keyed by exact name.
type Pest struct {
	OID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name string             `bson:"name" json:"name"`
}
