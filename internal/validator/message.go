package validator

import (
	"unicode"

	"pastalink-bot/internal/model"
	"pastalink-bot/pkg/textnorm"
)

// ValidateMessage sanitizes text and checks length and spam heuristics.
// On success NormalizedValue holds the sanitized text.
func (v *implValidator) ValidateMessage(text string) model.ValidationResult {
	if text == "" {
		return model.Invalid(model.ErrorKindEmpty)
	}

	sanitized := textnorm.Sanitize(text)
	runes := []rune(sanitized)

	switch n := len(runes); {
	case n == 0:
		return model.Invalid(model.ErrorKindEmpty)
	case n < v.cfg.MinMessageLength:
		return model.Invalid(model.ErrorKindTooShort)
	case n > v.cfg.MaxMessageLength:
		return model.Invalid(model.ErrorKindTooLong)
	}

	if kind := v.detectSpam(runes); kind != model.ErrorKindNone {
		return model.Invalid(kind)
	}

	return model.Valid(sanitized)
}

func (v *implValidator) detectSpam(runes []rune) model.ErrorKind {
	total := len(runes)

	if total > MinUniqueCharsForSpamCheck {
		unique := make(map[rune]struct{}, total)
		for _, r := range runes {
			unique[unicode.ToLower(r)] = struct{}{}
		}
		if float64(len(unique))/float64(total) < v.cfg.SpamRatio {
			return model.ErrorKindSpamRepetitive
		}
	}

	if total > PunctuationMinLength {
		punct := 0
		for _, r := range runes {
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r) {
				punct++
			}
		}
		if float64(punct)/float64(total) > MaxPunctuationRatio {
			return model.ErrorKindExcessivePunctuation
		}
	}

	return model.ErrorKindNone
}

// MinMessageLength and MaxMessageLength expose the bounds for user-facing errors.
func (v *implValidator) MinMessageLength() int {
	return v.cfg.MinMessageLength
}

func (v *implValidator) MaxMessageLength() int {
	return v.cfg.MaxMessageLength
}
