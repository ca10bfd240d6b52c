package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"pastalink-bot/internal/catalog/repository"
	"pastalink-bot/internal/model"
)

const logPrefix = "catalog/repository/file.Load"

// Load reads the dataset and returns its valid entries in file order.
func (r *implRepository) Load(ctx context.Context) ([]model.CatalogEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, r.path)
		}
		return nil, fmt.Errorf("%s: read %s: %w", logPrefix, r.path, err)
	}

	records, err := decode(r.path, data)
	if err != nil {
		return nil, err
	}

	entries := make([]model.CatalogEntry, 0, len(records))
	skipped := 0
	for i, rec := range records {
		entry, err := r.convert(rec)
		if err != nil {
			r.l.Warnf(ctx, "%s: invalid entry %d: %v", logPrefix, i, err)
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if skipped > 0 {
		r.l.Warnf(ctx, "%s: skipped %d invalid entries out of %d", logPrefix, skipped, len(records))
	}
	r.l.Infof(ctx, "%s: loaded %d entries from %s", logPrefix, len(entries), r.path)

	return entries, nil
}

// Source reports the dataset path and whether it currently exists.
func (r *implRepository) Source() repository.Source {
	_, err := os.Stat(r.path)
	return repository.Source{Path: r.path, Exists: err == nil}
}

func (r *implRepository) convert(rec any) (model.CatalogEntry, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return model.CatalogEntry{}, fmt.Errorf("failed to marshal record: %w", err)
	}

	result, err := r.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return model.CatalogEntry{}, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return model.CatalogEntry{}, fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
	}

	var entry model.CatalogEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return model.CatalogEntry{}, fmt.Errorf("failed to decode record: %w", err)
	}

	return model.NewCatalogEntry(entry)
}

func decode(path string, data []byte) ([]any, error) {
	var records []any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		var root any
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrDecode, err)
		}
		list, ok := root.([]any)
		if !ok {
			return nil, repository.ErrInvalidRecords
		}
		records = list
	case ".yaml", ".yml":
		var root any
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrDecode, err)
		}
		if root == nil {
			return nil, nil
		}
		list, ok := root.([]any)
		if !ok {
			return nil, repository.ErrInvalidRecords
		}
		records = list
	default:
		return nil, fmt.Errorf("%w: %s", repository.ErrUnsupported, filepath.Ext(path))
	}

	return records, nil
}
