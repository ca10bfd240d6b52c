package repository

import (
	"context"

	"pastalink-bot/internal/model"
)

// Repository loads the raw catalog dataset.
type Repository interface {
	// Load returns every valid entry in dataset order. Invalid records are
	// skipped, not returned as errors.
	Load(ctx context.Context) ([]model.CatalogEntry, error)
	// Source describes where entries come from.
	Source() Source
}

type Source struct {
	Path   string
	Exists bool
}
