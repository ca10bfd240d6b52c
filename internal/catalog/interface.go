package catalog

import (
	"context"

	"pastalink-bot/internal/model"
)

// UseCase serves link lookups over the loaded catalog.
type UseCase interface {
	// GetEntries runs the bucket lookup for intent and region. An empty
	// region means "no region".
	GetEntries(intent model.Intent, region string) []model.CatalogEntry
	// GetLinks is GetEntries plus the caller-level fallback to no region.
	// It records usage stats.
	GetLinks(ctx context.Context, intent model.Intent, region string, confidence float64) []model.CatalogEntry
	GetRegions() []string
	GetIntents() []string
	Len() int

	Reload(ctx context.Context) bool
	OnReload(fn ReloadHook)

	Stats() Stats
	Validate() ValidationReport
}

// ReloadHook receives the region list of a freshly swapped-in index.
type ReloadHook func(regions []string)
