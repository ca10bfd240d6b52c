package catalog

// Stats is the catalog snapshot exposed by /stats and the HTTP API.
type Stats struct {
	Index  IndexStats             `json:"index"`
	Cache  CacheStats             `json:"cache"`
	Usage  map[string]IntentStats `json:"usage"`
	Source SourceInfo             `json:"source"`
}

type IndexStats struct {
	TotalEntries int `json:"total_entries"`
	Intents      int `json:"intents"`
	Regions      int `json:"regions"`
}

type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Size    int    `json:"size"`
	MaxSize int    `json:"max_size"`
}

type SourceInfo struct {
	Path                string `json:"path"`
	Exists              bool   `json:"exists"`
	MaxLinksPerResponse int    `json:"max_links_per_response"`
}

// IntentStats counts GetLinks calls for one intent.
type IntentStats struct {
	Intent              string   `json:"intent"`
	TotalRequests       int      `json:"total_requests"`
	SuccessfulResponses int      `json:"successful_responses"`
	FailedResponses     int      `json:"failed_responses"`
	AverageConfidence   float64  `json:"average_confidence"`
	RegionsRequested    []string `json:"regions_requested"`
}

func (s IntentStats) SuccessRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.SuccessfulResponses) / float64(s.TotalRequests)
}

// ValidationReport summarizes dataset integrity.
type ValidationReport struct {
	Valid           bool                      `json:"valid"`
	Errors          []string                  `json:"errors"`
	Warnings        []string                  `json:"warnings"`
	TotalEntries    int                       `json:"total_entries"`
	IntentsCoverage map[string]IntentCoverage `json:"intents_coverage"`
	RegionsCoverage map[string]int            `json:"regions_coverage"`
}

type IntentCoverage struct {
	National int `json:"national"`
	Regional int `json:"regional"`
	Total    int `json:"total"`
}
