package validator

// Log prefixes
const (
	LogPrefixUpdateRegions = "internal.validator.UpdateRegions"
)

// Defaults
const (
	DefaultMinMessageLength    = 3
	DefaultMaxMessageLength    = 1000
	DefaultSpamRatio           = 0.3
	DefaultFuzzyMatchThreshold = 0.7
	DefaultSuggestionThreshold = 0.4

	// MinUniqueCharsForSpamCheck: the repetition check only runs on texts longer than this.
	MinUniqueCharsForSpamCheck = 3

	// Punctuation check: texts longer than PunctuationMinLength fail when more
	// than MaxPunctuationRatio of their runes are neither letters, digits nor spaces.
	PunctuationMinLength = 10
	MaxPunctuationRatio  = 0.5

	MaxSuggestions = 3
)

type alias struct {
	name   string
	region string
}

// regionAliases maps English names, major cities and alternate spellings to
// canonical region names. Entries whose region is not loaded are skipped.
var regionAliases = []alias{
	// English names
	{"lombardy", "Lombardia"},
	{"piedmont", "Piemonte"},
	{"tuscany", "Toscana"},
	{"sicily", "Sicilia"},
	{"sardinia", "Sardegna"},
	{"apulia", "Puglia"},

	// Cities
	{"roma", "Lazio"},
	{"rome", "Lazio"},
	{"milano", "Lombardia"},
	{"milan", "Lombardia"},
	{"napoli", "Campania"},
	{"naples", "Campania"},
	{"torino", "Piemonte"},
	{"turin", "Piemonte"},
	{"firenze", "Toscana"},
	{"florence", "Toscana"},
	{"bologna", "Emilia-Romagna"},
	{"venezia", "Veneto"},
	{"venice", "Veneto"},
	{"genova", "Liguria"},
	{"genoa", "Liguria"},
	{"bari", "Puglia"},
	{"palermo", "Sicilia"},
	{"catania", "Sicilia"},

	// Alternate spellings
	{"emilia romagna", "Emilia-Romagna"},
	{"friuli venezia giulia", "Friuli-Venezia Giulia"},
	{"trentino alto adige", "Trentino-Alto Adige"},
	{"valle daosta", "Valle d'Aosta"},
}
