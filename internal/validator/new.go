package validator

import (
	"sync/atomic"

	"pastalink-bot/internal/model"
	pkgLog "pastalink-bot/pkg/log"
)

// Validator checks inbound messages and resolves region names.
type Validator interface {
	ValidateMessage(text string) model.ValidationResult
	ValidateRegion(text string) model.ValidationResult
	UpdateRegions(regions []string)
	Regions() []string
	PopularRegions(n int) []string
	FilterRegions(query string) []string
	MinMessageLength() int
	MaxMessageLength() int
	Stats() Stats
}

type implValidator struct {
	l   pkgLog.Logger
	cfg Config
	set atomic.Pointer[regionSet]
}

var _ Validator = (*implValidator)(nil)

// New creates a validator over the given canonical regions.
func New(l pkgLog.Logger, cfg Config, regions []string) *implValidator {
	cfg.setDefaults()
	v := &implValidator{l: l, cfg: cfg}
	v.set.Store(buildRegionSet(regions))
	return v
}
