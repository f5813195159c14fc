// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package backup implements the export and restore contract: a single JSON
// payload carrying every record category for a time window, importable into
// an empty or partially populated database without creating duplicates.
package backup

import (
	"time"

	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// Meta describes how a payload was produced. Month exports carry Month and
// Note; range exports carry Start and End.
type Meta struct {
	Month       string    `json:"month,omitempty"`
	Start       string    `json:"start,omitempty"`
	End         string    `json:"end,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	Note        string    `json:"note,omitempty"`
}

// TreeDoc is a tree record as it appears on the wire, with the store id
// flattened to a string.
type TreeDoc struct {
	ID string `json:"_id,omitempty"`
	models.Tree
}

// UpdateDoc is a daily update record on the wire.
type UpdateDoc struct {
	ID string `json:"_id,omitempty"`
	models.Update
}

// FarmerDoc is a farmer account on the wire. The password hash travels as
// stored so restored accounts keep their credentials.
type FarmerDoc struct {
	ID string `json:"_id,omitempty"`
	models.Farmer
}

// FertilizerDoc is a fertilizer reference entry on the wire.
type FertilizerDoc struct {
	ID string `json:"_id,omitempty"`
	models.Fertilizer
}

// PestDoc is a pest reference entry on the wire.
type PestDoc struct {
	ID string `json:"_id,omitempty"`
	models.Pest
}

// Payload is the complete backup document. Updates and trees are scoped to
// the export window; farmers, fertilizers, and pests are always complete so
// any payload restores into a working system on its own.
type Payload struct {
	Meta        Meta            `json:"meta"`
	Updates     []UpdateDoc     `json:"updates"`
	Trees       []TreeDoc       `json:"trees"`
	Farmers     []FarmerDoc     `json:"farmers"`
	Fertilizers []FertilizerDoc `json:"fertilizers"`
	Pests       []PestDoc       `json:"pests"`
}
