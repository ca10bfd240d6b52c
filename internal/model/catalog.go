package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NationalRegion marks a service that applies to every region.
const NationalRegion = "Nazionale"

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidURL   = errors.New("url must use http or https")
)

// CatalogEntry is one (intent, region) -> link record. Treat as immutable.
type CatalogEntry struct {
	Intent      string   `json:"intent" yaml:"intent"`
	Region      string   `json:"region" yaml:"region"`
	Label       string   `json:"label" yaml:"label"`
	URL         string   `json:"url" yaml:"url"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NewCatalogEntry validates raw and returns a normalized entry.
func NewCatalogEntry(raw CatalogEntry) (CatalogEntry, error) {
	e := CatalogEntry{
		Intent:      strings.ToLower(strings.TrimSpace(raw.Intent)),
		Region:      strings.TrimSpace(raw.Region),
		Label:       strings.TrimSpace(raw.Label),
		URL:         strings.TrimSpace(raw.URL),
		Description: strings.TrimSpace(raw.Description),
	}

	switch {
	case e.Intent == "":
		return CatalogEntry{}, fmt.Errorf("%w: intent", ErrMissingField)
	case e.Region == "":
		return CatalogEntry{}, fmt.Errorf("%w: region", ErrMissingField)
	case e.Label == "":
		return CatalogEntry{}, fmt.Errorf("%w: label", ErrMissingField)
	case e.URL == "":
		return CatalogEntry{}, fmt.Errorf("%w: url", ErrMissingField)
	}

	if !HasWebScheme(e.URL) {
		return CatalogEntry{}, fmt.Errorf("%w: %q", ErrInvalidURL, e.URL)
	}

	if strings.EqualFold(e.Region, "national") || strings.EqualFold(e.Region, NationalRegion) {
		e.Region = NationalRegion
	}

	seen := make(map[string]struct{}, len(raw.Tags))
	for _, t := range raw.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		e.Tags = append(e.Tags, t)
	}

	return e, nil
}

// IsNational reports whether the entry applies to all regions.
func (e CatalogEntry) IsNational() bool {
	return e.Region == NationalRegion
}

// HasWebScheme reports whether raw is an absolute http(s) URL with a host.
func HasWebScheme(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
