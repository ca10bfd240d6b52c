package telegram

import (
	"fmt"
	"sort"
	"strings"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/model"
	pkgTelegram "pastalink-bot/pkg/telegram"
)

// presenter turns use case results into chat text.
type presenter struct {
	regionsPerMessage int
}

func (p presenter) render(resp conversation.Response) string {
	switch resp.Kind {
	case conversation.KindLinks:
		return p.links(resp.Intent, resp.Entries)
	case conversation.KindConversational:
		return resp.Text
	case conversation.KindAskRegion:
		return p.regionRequest(resp.Examples)
	case conversation.KindValidationError:
		if resp.ErrorKind == model.ErrorKindUnknownRegion && resp.Input != "" {
			return p.regionSuggestions(resp.Input, resp.Suggestions)
		}
		return p.validationError(resp.Message, resp.Suggestions)
	case conversation.KindError:
		return p.errorText(resp.ErrorKind)
	}
	return TextGeneric
}

func (p presenter) links(intent model.Intent, entries []model.CatalogEntry) string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.URL == "" {
			continue
		}
		items = append(items, fmt.Sprintf("• %s: %s", e.Label, e.URL))
	}
	if len(items) == 0 {
		return TextNoLinks
	}

	msg := fmt.Sprintf(TextLinksHeader, intent.Title()) + "\n\n" + strings.Join(items, "\n")
	return truncate(msg)
}

func (p presenter) regionRequest(examples []string) string {
	if len(examples) == 0 {
		return TextRegionQuestion
	}
	return fmt.Sprintf(TextRegionExamples, strings.Join(examples, ", "))
}

func (p presenter) regionSuggestions(input string, suggestions []string) string {
	if len(suggestions) == 0 {
		return fmt.Sprintf(TextNoSuggestions, input)
	}
	return fmt.Sprintf(TextSuggestions, input, strings.Join(suggestions, ", "))
}

func (p presenter) validationError(message string, suggestions []string) string {
	if len(suggestions) == 0 {
		return message
	}
	return fmt.Sprintf("%s\n\n%s: %s", message, TextSuggestionsLabel, strings.Join(suggestions, ", "))
}

func (p presenter) errorText(kind model.ErrorKind) string {
	if kind == conversation.ErrorKindNoLinks {
		return TextNoLinks
	}
	return TextGeneric
}

// regions lists up to regionsPerMessage names, sorted.
func (p presenter) regions(regions []string, query string) string {
	if len(regions) == 0 {
		if query != "" {
			return fmt.Sprintf(TextNoRegionMatch, query)
		}
		return TextNoRegions
	}

	sorted := make([]string, len(regions))
	copy(sorted, regions)
	// Fuzzy results are already ranked by relevance.
	if query == "" {
		sort.Strings(sorted)
	}

	if len(sorted) <= p.regionsPerMessage {
		return fmt.Sprintf(TextRegionsAll, strings.Join(sorted, ", "))
	}
	return fmt.Sprintf(TextRegionsPartial, len(sorted), strings.Join(sorted[:p.regionsPerMessage], ", "))
}

func (p presenter) stats(s conversation.Stats) string {
	return fmt.Sprintf(TextStats,
		s.Catalog.Index.TotalEntries,
		s.Catalog.Index.Intents,
		s.Catalog.Index.Regions,
		s.Catalog.Cache.Hits,
		s.Catalog.Cache.Misses,
		s.Catalog.Cache.Size,
		s.Catalog.Cache.MaxSize,
		s.Classifier.Hits,
		s.Classifier.Misses,
		s.Classifier.Size,
		s.Classifier.MaxSize,
		s.Validator.TotalRegions,
		s.Validator.Aliases,
		s.ActiveSessions,
		s.PendingSessions,
	)
}

func truncate(msg string) string {
	r := []rune(msg)
	if len(r) <= SafeMessageLength {
		return msg
	}
	return string(r[:SafeMessageLength]) + "\n..."
}

// parseMode picks Markdown when the text carries formatting markers.
func parseMode(text string) string {
	if strings.ContainsAny(text, "*_`[") {
		return pkgTelegram.ParseModeMarkdown
	}
	return ""
}
