package usecase

import (
	"fmt"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/model"
)

// Validate reports duplicates, coverage gaps and malformed URLs in the
// loaded index.
func (uc *implUseCase) Validate() catalog.ValidationReport {
	idx := uc.idx.Load()

	report := catalog.ValidationReport{
		Valid:           true,
		TotalEntries:    len(idx.entries),
		IntentsCoverage: make(map[string]catalog.IntentCoverage, len(idx.intents)),
		RegionsCoverage: make(map[string]int, len(idx.regions)),
	}

	type triple struct{ intent, region, url string }
	seen := make(map[triple]struct{}, len(idx.entries))
	for i, e := range idx.entries {
		t := triple{e.Intent, e.Region, e.URL}
		if _, dup := seen[t]; dup {
			report.Warnings = append(report.Warnings, fmt.Sprintf("duplicate entry at index %d: (%s, %s, %s)", i, e.Intent, e.Region, e.URL))
		}
		seen[t] = struct{}{}
	}

	for _, intent := range idx.intents {
		var cov catalog.IntentCoverage
		for _, e := range idx.byIntent[intent] {
			if e.IsNational() {
				cov.National++
			} else {
				cov.Regional++
			}
		}
		cov.Total = cov.National + cov.Regional
		report.IntentsCoverage[intent] = cov
		if cov.Total == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("intent %q has no entries", intent))
		}
	}

	for _, region := range idx.regions {
		n := len(idx.byRegion[regionKey(region)])
		report.RegionsCoverage[region] = n
		if n == 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("region %q has no entries", region))
		}
	}

	for _, e := range idx.entries {
		if !model.HasWebScheme(e.URL) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("invalid URL format: %s", e.URL))
		}
	}

	for _, s := range model.ServiceIntents() {
		if _, ok := idx.byIntent[string(s)]; !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("service intent %q has no entries", s))
		}
	}

	if len(idx.entries) == 0 {
		report.Errors = append(report.Errors, catalog.ErrEmptyCatalog.Error())
	}
	report.Valid = len(report.Errors) == 0

	return report
}
