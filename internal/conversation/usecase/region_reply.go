package usecase

import (
	"context"
	"strings"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/validator"
)

func (uc *implUseCase) regionReply(ctx context.Context, s *session, text, locale string) conversation.Response {
	pending := s.current(uc.cfg.Now(), uc.cfg.SessionTimeout)
	if pending == nil {
		uc.l.Warnf(ctx, "%s: region reply without a pending request", conversation.LogPrefixRegionReply)
		return genericError()
	}

	input := strings.TrimSpace(text)
	if input == "" {
		return conversation.Response{
			Kind:     conversation.KindAskRegion,
			Intent:   pending.Intent,
			Examples: firstN(uc.catalog.GetRegions(), conversation.RepromptExamples),
		}
	}

	rv := uc.validator.ValidateRegion(input)
	if !rv.IsValid {
		uc.l.Infof(ctx, "%s: unrecognized region %q, suggestions=%v locale=%s", conversation.LogPrefixRegionReply, input, rv.Suggestions, locale)
		return conversation.Response{
			Kind:        conversation.KindValidationError,
			ErrorKind:   rv.ErrorKind,
			Message:     conversation.ValidationMessage(rv.ErrorKind, 0, 0),
			Suggestions: firstN(rv.Suggestions, validator.MaxSuggestions),
			Input:       input,
		}
	}

	s.clear()
	uc.l.Infof(ctx, "%s: intent=%s region=%s", conversation.LogPrefixRegionReply, pending.Intent, rv.NormalizedValue)
	return uc.links(ctx, pending.Intent, rv.NormalizedValue, pending.Confidence)
}
