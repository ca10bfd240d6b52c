package usecase

import (
	"context"
	"math/rand/v2"
	"regexp"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/model"
)

func (uc *implUseCase) freeText(ctx context.Context, s *session, text, locale string) conversation.Response {
	v := uc.validator.ValidateMessage(text)
	if !v.IsValid {
		uc.l.Debugf(ctx, "%s: rejected message: %s", conversation.LogPrefixFreeText, v.ErrorKind)
		return conversation.Response{
			Kind:        conversation.KindValidationError,
			ErrorKind:   v.ErrorKind,
			Message:     conversation.ValidationMessage(v.ErrorKind, uc.validator.MinMessageLength(), uc.validator.MaxMessageLength()),
			Suggestions: v.Suggestions,
		}
	}
	text = v.NormalizedValue

	if matchesAny(text, conversation.HelpPatterns) {
		return conversational(model.IntentHelp)
	}
	if matchesAny(text, conversation.AboutPatterns) {
		return conversational(model.IntentAbout)
	}

	c := uc.classifier.Classify(ctx, text)

	if raw := c.RegionValue(); raw != "" {
		rv := uc.validator.ValidateRegion(raw)
		if rv.IsValid {
			region := rv.NormalizedValue
			c.Region = &region
		} else {
			uc.l.Warnf(ctx, "%s: classifier returned unknown region %q", conversation.LogPrefixFreeText, raw)
			c.Region = nil
			c.NeedsRegion = c.Intent.RequiresRegion()
		}
	}

	uc.l.Infof(ctx, "%s: intent=%s region=%q confidence=%.2f locale=%s", conversation.LogPrefixFreeText, c.Intent, c.RegionValue(), c.Confidence, locale)

	if !c.Intent.IsService() {
		return conversational(c.Intent)
	}

	if c.Intent.RequiresRegion() && c.Region == nil && c.NeedsRegion {
		s.set(&conversation.PendingRequest{
			Intent:       c.Intent,
			OriginalText: text,
			Confidence:   c.Confidence,
			CreatedAt:    uc.cfg.Now(),
		})
		return conversation.Response{
			Kind:     conversation.KindAskRegion,
			Intent:   c.Intent,
			Examples: firstN(uc.catalog.GetRegions(), conversation.AskRegionExamples),
		}
	}

	return uc.links(ctx, c.Intent, c.RegionValue(), c.Confidence)
}

func (uc *implUseCase) links(ctx context.Context, intent model.Intent, region string, confidence float64) conversation.Response {
	entries := uc.catalog.GetLinks(ctx, intent, region, confidence)
	if len(entries) == 0 {
		uc.l.Warnf(ctx, "%s: no links for intent=%s region=%q", conversation.LogPrefixFreeText, intent, region)
		return conversation.Response{Kind: conversation.KindError, ErrorKind: conversation.ErrorKindNoLinks, Intent: intent}
	}
	return conversation.Response{Kind: conversation.KindLinks, Intent: intent, Region: region, Entries: entries}
}

// conversational answers non-service intents from the canned texts.
// Unknown falls back to the off-topic guidance.
func conversational(intent model.Intent) conversation.Response {
	var text string
	switch intent {
	case model.IntentGreeting:
		text = pick(conversation.GreetingTexts)
	case model.IntentSmalltalk:
		text = pick(conversation.SmalltalkTexts)
	case model.IntentHelp:
		text = conversation.HelpText
	case model.IntentAbout:
		text = conversation.AboutText
	default:
		text = conversation.OffTopicText
	}
	return conversation.Response{Kind: conversation.KindConversational, ConversationalIntent: intent, Text: text}
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func pick(options []string) string {
	return options[rand.IntN(len(options))]
}

func firstN(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}
