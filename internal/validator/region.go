package validator

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"pastalink-bot/internal/model"
	"pastalink-bot/pkg/similarity"
	"pastalink-bot/pkg/textnorm"
)

// ValidateRegion resolves free text to a canonical region name.
// Failed results carry up to MaxSuggestions suggestions.
func (v *implValidator) ValidateRegion(text string) model.ValidationResult {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return model.Invalid(model.ErrorKindEmpty)
	}

	set := v.set.Load()
	folded := textnorm.Fold(textnorm.Sanitize(raw))

	if canonical, ok := set.normalized[folded]; ok {
		return model.Valid(canonical)
	}
	if canonical, ok := set.aliases[folded]; ok {
		return model.Valid(canonical)
	}
	for _, region := range set.regions {
		if strings.EqualFold(region, raw) {
			return model.Valid(region)
		}
	}

	if v.cfg.AutoAcceptFuzzy {
		if best, ok := similarity.Best(folded, set.normKeys, v.cfg.FuzzyMatchThreshold); ok {
			return model.Valid(set.normalized[best.Value])
		}
	}

	return model.Invalid(model.ErrorKindUnknownRegion, v.suggest(set, folded)...)
}

func (v *implValidator) suggest(set *regionSet, folded string) []string {
	if folded == "" {
		return nil
	}

	var out []string
	add := func(canonical string) {
		for _, s := range out {
			if s == canonical {
				return
			}
		}
		out = append(out, canonical)
	}

	for _, m := range similarity.CloseMatches(folded, set.normKeys, MaxSuggestions, v.cfg.SuggestionThreshold) {
		add(set.normalized[m.Value])
	}
	for _, m := range similarity.CloseMatches(folded, set.aliasKeys, MaxSuggestions, v.cfg.SuggestionThreshold) {
		add(set.aliases[m.Value])
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// UpdateRegions swaps in a new canonical region set and rebuilds aliases.
func (v *implValidator) UpdateRegions(regions []string) {
	set := buildRegionSet(regions)
	v.set.Store(set)
	v.l.Infof(context.Background(), "%s: %d regions, %d aliases", LogPrefixUpdateRegions, len(set.regions), len(set.aliases))
}

// Regions returns the canonical regions, sorted.
func (v *implValidator) Regions() []string {
	set := v.set.Load()
	out := make([]string, len(set.regions))
	copy(out, set.regions)
	sort.Strings(out)
	return out
}

// PopularRegions returns the first n regions in sorted order.
func (v *implValidator) PopularRegions(n int) []string {
	regions := v.Regions()
	if n >= 0 && n < len(regions) {
		regions = regions[:n]
	}
	return regions
}

// FilterRegions returns regions matching query as a fuzzy subsequence, best
// first. An empty query returns every region.
func (v *implValidator) FilterRegions(query string) []string {
	regions := v.Regions()
	query = textnorm.Fold(query)
	if query == "" {
		return regions
	}

	folded := make([]string, len(regions))
	for i, r := range regions {
		folded[i] = textnorm.Fold(r)
	}

	matches := fuzzy.Find(query, folded)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, regions[m.Index])
	}
	return out
}

// Stats reports the loaded region set and thresholds.
func (v *implValidator) Stats() Stats {
	set := v.set.Load()
	return Stats{
		TotalRegions:        len(set.regions),
		Aliases:             len(set.aliases),
		MaxMessageLength:    v.cfg.MaxMessageLength,
		FuzzyMatchThreshold: v.cfg.FuzzyMatchThreshold,
		SuggestionThreshold: v.cfg.SuggestionThreshold,
	}
}

func buildRegionSet(regions []string) *regionSet {
	set := &regionSet{
		normalized: make(map[string]string, len(regions)),
		aliases:    make(map[string]string, len(regions)+len(regionAliases)),
	}

	present := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := present[r]; dup {
			continue
		}
		present[r] = struct{}{}
		set.regions = append(set.regions, r)

		key := textnorm.Fold(r)
		if _, ok := set.normalized[key]; !ok {
			set.normalized[key] = r
			set.normKeys = append(set.normKeys, key)
		}
	}

	addAlias := func(name, region string) {
		key := textnorm.Fold(name)
		if _, ok := set.aliases[key]; !ok {
			set.aliasKeys = append(set.aliasKeys, key)
		}
		set.aliases[key] = region
	}
	for _, a := range regionAliases {
		if _, ok := present[a.region]; ok {
			addAlias(a.name, a.region)
		}
	}
	for _, r := range set.regions {
		addAlias(r, r)
	}

	return set
}
