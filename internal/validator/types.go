package validator

// Config tunes message and region validation.
type Config struct {
	MinMessageLength    int
	MaxMessageLength    int
	SpamRatio           float64
	FuzzyMatchThreshold float64
	SuggestionThreshold float64
	// AutoAcceptFuzzy accepts the best fuzzy match above FuzzyMatchThreshold
	// without asking the user to confirm it.
	AutoAcceptFuzzy bool
}

func (c *Config) setDefaults() {
	if c.MinMessageLength <= 0 {
		c.MinMessageLength = DefaultMinMessageLength
	}
	if c.MaxMessageLength <= 0 {
		c.MaxMessageLength = DefaultMaxMessageLength
	}
	if c.SpamRatio <= 0 {
		c.SpamRatio = DefaultSpamRatio
	}
	if c.FuzzyMatchThreshold <= 0 {
		c.FuzzyMatchThreshold = DefaultFuzzyMatchThreshold
	}
	if c.SuggestionThreshold <= 0 {
		c.SuggestionThreshold = DefaultSuggestionThreshold
	}
}

// Stats describes the validator configuration and loaded region set.
type Stats struct {
	TotalRegions        int     `json:"total_regions"`
	Aliases             int     `json:"aliases"`
	MaxMessageLength    int     `json:"max_message_length"`
	FuzzyMatchThreshold float64 `json:"fuzzy_match_threshold"`
	SuggestionThreshold float64 `json:"suggestion_threshold"`
}

// regionSet is an immutable snapshot swapped in by UpdateRegions.
type regionSet struct {
	regions    []string          // canonical, in the order given
	normalized map[string]string // folded name -> canonical
	normKeys   []string          // folded names, same order as regions
	aliases    map[string]string // folded alias or name -> canonical
	aliasKeys  []string
}
