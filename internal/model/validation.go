package model

// ErrorKind names why validation failed.
type ErrorKind string

const (
	ErrorKindNone                 ErrorKind = ""
	ErrorKindEmpty                ErrorKind = "Empty"
	ErrorKindTooShort             ErrorKind = "TooShort"
	ErrorKindTooLong              ErrorKind = "TooLong"
	ErrorKindSpamRepetitive       ErrorKind = "SpamRepetitive"
	ErrorKindExcessivePunctuation ErrorKind = "ExcessivePunctuation"
	ErrorKindUnknownRegion        ErrorKind = "UnknownRegion"
)

// ValidationResult is shared by message and region validation.
type ValidationResult struct {
	IsValid         bool
	NormalizedValue string
	ErrorKind       ErrorKind
	Suggestions     []string
}

// Valid builds a successful result.
func Valid(value string) ValidationResult {
	return ValidationResult{IsValid: true, NormalizedValue: value}
}

// Invalid builds a failed result.
func Invalid(kind ErrorKind, suggestions ...string) ValidationResult {
	return ValidationResult{ErrorKind: kind, Suggestions: suggestions}
}
