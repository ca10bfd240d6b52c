package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"pastalink-bot/internal/model"
)

// DecodeReply parses the span from the first '{' to the last '}' of raw,
// ignoring any commentary around it. Missing fields take their defaults.
func DecodeReply(raw string) (model.Classification, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return model.Classification{}, ErrNoJSONObject
	}

	span := raw[start : end+1]
	var r reply
	if err := json.Unmarshal([]byte(span), &r); err != nil {
		return model.Classification{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}

	out := model.UnknownClassification()
	out.Raw = span

	if r.Intent != nil {
		out.Intent = model.ParseIntent(*r.Intent)
	}
	if r.Region != nil {
		if region := strings.TrimSpace(*r.Region); region != "" && !strings.EqualFold(region, "null") {
			out.Region = &region
		}
	}
	if r.Confidence != nil {
		out.Confidence = model.ClampConfidence(*r.Confidence)
	}
	if r.NeedsRegion != nil {
		out.NeedsRegion = *r.NeedsRegion
	}

	return out, nil
}
