// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/Ireshudayanga/coconut-farm-application/internal/models"
)

// ExportStore is the read surface an exporter needs. *store.Store satisfies
// it; tests provide fakes.
type ExportStore interface {
	UpdatesBetween(ctx context.Context, from, to string, inclusive bool) ([]models.Update, error)
	TreesCreatedBetween(ctx context.Context, start, end time.Time, inclusive bool) ([]models.Tree, error)
	ListFarmers(ctx context.Context) ([]models.Farmer, error)
	ListFertilizers(ctx context.Context) ([]models.Fertilizer, error)
	ListPests(ctx context.Context) ([]models.Pest, error)
}

// Exporter assembles backup payloads from a store.
type Exporter struct {
	store ExportStore
	now   func() time.Time
}

// NewExporter wires an exporter to its store.
func NewExporter(s ExportStore) *Exporter {
	return &Exporter{store: s, now: time.Now}
}

const monthNote = "Includes trees created in month and all farmers/fertilizers/pests"

// ExportMonth builds the payload for one calendar month.
func (e *Exporter) ExportMonth(ctx context.Context, month string) (*Payload, error) {
	w, err := MonthWindow(month)
	if err != nil {
		return nil, err
	}
	p, err := e.collect(ctx, w)
	if err != nil {
		return nil, err
	}
	p.Meta = Meta{
		Month:       month,
		GeneratedAt: e.now().UTC(),
		Note:        monthNote,
	}
	return p, nil
}

// ExportRange builds the payload for an inclusive date range.
func (e *Exporter) ExportRange(ctx context.Context, startDate, endDate string) (*Payload, error) {
	w, err := RangeWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	p, err := e.collect(ctx, w)
	if err != nil {
		return nil, err
	}
	p.Meta = Meta{
		Start:       startDate,
		End:         endDate,
		GeneratedAt: e.now().UTC(),
	}
	return p, nil
}

// collect gathers the five categories for a window. Slices are initialized
// so empty categories serialize as [] rather than null.
func (e *Exporter) collect(ctx context.Context, w Window) (*Payload, error) {
	updates, err := e.store.UpdatesBetween(ctx, w.FromDate, w.ToDate, w.EndInclusive)
	if err != nil {
		return nil, fmt.Errorf("collect updates: %w", err)
	}
	trees, err := e.store.TreesCreatedBetween(ctx, w.Start, w.End, w.EndInclusive)
	if err != nil {
		return nil, fmt.Errorf("collect trees: %w", err)
	}
	farmers, err := e.store.ListFarmers(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect farmers: %w", err)
	}
	fertilizers, err := e.store.ListFertilizers(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect fertilizers: %w", err)
	}
	pests, err := e.store.ListPests(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect pests: %w", err)
	}

	p := &Payload{
		Updates:     make([]UpdateDoc, 0, len(updates)),
		Trees:       make([]TreeDoc, 0, len(trees)),
		Farmers:     make([]FarmerDoc, 0, len(farmers)),
		Fertilizers: make([]FertilizerDoc, 0, len(fertilizers)),
		Pests:       make([]PestDoc, 0, len(pests)),
	}
	for _, u := range updates {
		p.Updates = append(p.Updates, UpdateDoc{ID: hexOrEmpty(u.OID), Update: u})
	}
	for _, t := range trees {
		p.Trees = append(p.Trees, TreeDoc{ID: hexOrEmpty(t.OID), Tree: t})
	}
	for _, f := range farmers {
		p.Farmers = append(p.Farmers, FarmerDoc{ID: hexOrEmpty(f.OID), Farmer: f})
	}
	for _, f := range fertilizers {
		p.Fertilizers = append(p.Fertilizers, FertilizerDoc{ID: hexOrEmpty(f.OID), Fertilizer: f})
	}
	for _, pe := range pests {
		p.Pests = append(p.Pests, PestDoc{ID: hexOrEmpty(pe.OID), Pest: pe})
	}
	return p, nil
}

// Filename names the download after the window so files sort and read well
// in a backup folder.
func (p *Payload) Filename() string {
	if p.Meta.Month != "" {
		return "backup-" + p.Meta.Month + ".json"
	}
	return "backup-" + p.Meta.Start + "_to_" + p.Meta.End + ".json"
}
