package model

// Classification is the classifier's judgment for one message.
type Classification struct {
	Intent      Intent
	Region      *string
	NeedsRegion bool
	Confidence  float64
	Raw         string
}

// UnknownClassification is the degraded result used whenever the classifier
// cannot produce a usable answer.
func UnknownClassification() Classification {
	return Classification{Intent: IntentUnknown}
}

// RegionValue returns the region or "" when absent.
func (c Classification) RegionValue() string {
	if c.Region == nil {
		return ""
	}
	return *c.Region
}

// ClampConfidence bounds v to [0,1].
func ClampConfidence(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
