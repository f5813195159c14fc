// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package backup

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/metrics"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

// RestoreStore is the write surface a restorer needs. *store.Store
// satisfies it; tests provide fakes.
type RestoreStore interface {
	EnsureBackupIndexes(ctx context.Context) error
	ReplaceFarmer(ctx context.Context, id interface{}, doc bson.M) error
	InsertFertilizerIfAbsent(ctx context.Context, name string) (bool, error)
	InsertPestIfAbsent(ctx context.Context, name string) (bool, error)
	ReplaceTree(ctx context.Context, doc bson.M) error
	ReplaceUpdate(ctx context.Context, key, doc bson.M) error
	Counts(ctx context.Context) (store.CategoryCounts, error)
}

// Applied counts the documents written per category during one restore.
// Reference entries that already existed are not counted.
type Applied struct {
	Farmers     int `json:"farmers"`
	Fertilizers int `json:"fertilizers"`
	Pests       int `json:"pests"`
	Trees       int `json:"trees"`
	Updates     int `json:"updates"`
}

// Skip records one document the restore could not apply, with enough
// context to find it in the payload.
type Skip struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Reason   string `json:"reason"`
}

// Result is the outcome of one restore run: what was applied, what was
// skipped, and the store totals after the run.
type Result struct {
	Applied Applied              `json:"applied"`
	Skipped []Skip               `json:"skipped,omitempty"`
	Totals  store.CategoryCounts `json:"totals"`
}

// Restorer applies backup payloads to a store. A restore is best-effort
// per document: malformed or conflicting documents are skipped with a
// reason and the run continues.
type Restorer struct {
	store RestoreStore
}

// NewRestorer wires a restorer to its store.
func NewRestorer(s RestoreStore) *Restorer {
	return &Restorer{store: s}
}

// rawPayload defers per-document decoding so one malformed document skips
// itself instead of failing the whole payload.
type rawPayload struct {
	Meta        Meta              `json:"meta"`
	Updates     []json.RawMessage `json:"updates"`
	Trees       []json.RawMessage `json:"trees"`
	Farmers     []json.RawMessage `json:"farmers"`
	Fertilizers []json.RawMessage `json:"fertilizers"`
	Pests       []json.RawMessage `json:"pests"`
}

type rawFarmer struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

type rawNamed struct {
	Name string `json:"name"`
}

type rawTree struct {
	ID        string   `json:"_id"`
	TreeID    string   `json:"id"`
	CreatedAt wireTime `json:"createdAt"`
}

type rawUpdate struct {
	ID          string   `json:"_id"`
	TreeID      string   `json:"treeId"`
	Date        string   `json:"date"`
	Watered     bool     `json:"watered"`
	Fertilizers []string `json:"fertilizers"`
	Flags       []int    `json:"flags"`
	Notes       string   `json:"notes"`
	PestNotes   string   `json:"pestNotes"`
	ImageURL    *string  `json:"imageUrl"`
	CreatedAt   wireTime `json:"createdAt"`
}

// Restore parses a payload and folds it into the store. The order matters:
// reference categories land before trees, and trees before the updates
// that point at them.
func (r *Restorer) Restore(ctx context.Context, data []byte) (*Result, error) {
	var p rawPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	if err := r.store.EnsureBackupIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	res := &Result{}
	r.restoreFarmers(ctx, p.Farmers, res)
	r.restoreNamed(ctx, "fertilizer", p.Fertilizers, r.store.InsertFertilizerIfAbsent, &res.Applied.Fertilizers, res)
	r.restoreNamed(ctx, "pest", p.Pests, r.store.InsertPestIfAbsent, &res.Applied.Pests, res)
	r.restoreTrees(ctx, p.Trees, res)
	r.restoreUpdates(ctx, p.Updates, res)

	metrics.RestoreDocumentsTotal.WithLabelValues("farmer", "applied").Add(float64(res.Applied.Farmers))
	metrics.RestoreDocumentsTotal.WithLabelValues("fertilizer", "applied").Add(float64(res.Applied.Fertilizers))
	metrics.RestoreDocumentsTotal.WithLabelValues("pest", "applied").Add(float64(res.Applied.Pests))
	metrics.RestoreDocumentsTotal.WithLabelValues("tree", "applied").Add(float64(res.Applied.Trees))
	metrics.RestoreDocumentsTotal.WithLabelValues("update", "applied").Add(float64(res.Applied.Updates))

	totals, err := r.store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count totals: %w", err)
	}
	res.Totals = totals
	return res, nil
}

func (r *Restorer) restoreFarmers(ctx context.Context, docs []json.RawMessage, res *Result) {
	for i, raw := range docs {
		var f rawFarmer
		if err := json.Unmarshal(raw, &f); err != nil {
			res.skip("farmer", i, "malformed document: "+err.Error())
			continue
		}
		if f.Username == "" {
			res.skip("farmer", i, "missing username")
			continue
		}

		// A farmer without a native id gets a fresh one.
		var id interface{}
		if f.ID == "" {
			id = primitive.NewObjectID()
		} else {
			id = materializeID(f.ID)
		}

		doc := bson.M{
			"name":         f.Name,
			"username":     f.Username,
			"passwordHash": f.PasswordHash,
		}
		if err := r.store.ReplaceFarmer(ctx, id, doc); err != nil {
			res.skip("farmer", i, err.Error())
			continue
		}
		res.Applied.Farmers++
	}
}

func (r *Restorer) restoreNamed(ctx context.Context, category string, docs []json.RawMessage, insert func(context.Context, string) (bool, error), applied *int, res *Result) {
	for i, raw := range docs {
		var n rawNamed
		if err := json.Unmarshal(raw, &n); err != nil {
			res.skip(category, i, "malformed document: "+err.Error())
			continue
		}
		if n.Name == "" {
			res.skip(category, i, "missing name")
			continue
		}
		inserted, err := insert(ctx, n.Name)
		if err != nil {
			res.skip(category, i, err.Error())
			continue
		}
		if inserted {
			*applied++
		}
	}
}

func (r *Restorer) restoreTrees(ctx context.Context, docs []json.RawMessage, res *Result) {
	for i, raw := range docs {
		var t rawTree
		if err := json.Unmarshal(raw, &t); err != nil {
			res.skip("tree", i, "malformed document: "+err.Error())
			continue
		}
		if t.TreeID == "" {
			res.skip("tree", i, "missing id")
			continue
		}
		doc := bson.M{"id": t.TreeID}
		// An absent createdAt stays absent rather than landing as the
		// zero instant.
		if !t.CreatedAt.IsZero() {
			doc["createdAt"] = t.CreatedAt.Time
		}
		if t.ID != "" {
			doc["_id"] = materializeID(t.ID)
		}
		if err := r.store.ReplaceTree(ctx, doc); err != nil {
			res.skip("tree", i, err.Error())
			continue
		}
		res.Applied.Trees++
	}
}

func (r *Restorer) restoreUpdates(ctx context.Context, docs []json.RawMessage, res *Result) {
	for i, raw := range docs {
		var u rawUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			res.skip("update", i, "malformed document: "+err.Error())
			continue
		}
		if u.TreeID == "" || u.Date == "" {
			res.skip("update", i, "missing treeId or date")
			continue
		}

		// Identity of an update: same tree, same day, same creation
		// instant, same image (or both imageless). Re-importing the
		// same payload matches and rewrites instead of duplicating.
		var image interface{}
		if u.ImageURL != nil {
			image = *u.ImageURL
		}
		key := bson.M{
			"treeId":    u.TreeID,
			"date":      u.Date,
			"createdAt": u.CreatedAt.Time,
			"imageUrl":  image,
		}
		doc := bson.M{
			"treeId":      u.TreeID,
			"date":        u.Date,
			"watered":     u.Watered,
			"fertilizers": emptyIfNil(u.Fertilizers),
			"flags":       emptyIfNilInts(u.Flags),
			"notes":       u.Notes,
			"pestNotes":   u.PestNotes,
			"imageUrl":    image,
			"createdAt":   u.CreatedAt.Time,
		}
		if u.ID != "" {
			doc["_id"] = materializeID(u.ID)
		}
		if err := r.store.ReplaceUpdate(ctx, key, doc); err != nil {
			res.skip("update", i, err.Error())
			continue
		}
		res.Applied.Updates++
	}
}

func (res *Result) skip(category string, index int, reason string) {
	metrics.RestoreDocumentsTotal.WithLabelValues(category, "skipped").Inc()
	logging.Warn().
		Str("category", category).
		Int("index", index).
		Str("reason", reason).
		Msg("Skipping document during restore")
	res.Skipped = append(res.Skipped, Skip{Category: category, Index: index, Reason: reason})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
