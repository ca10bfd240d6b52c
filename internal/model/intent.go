package model

import (
	"strings"
)

// Intent is the categorical purpose of a user message.
type Intent string

// Conversational intents.
const (
	IntentGreeting  Intent = "greeting"
	IntentSmalltalk Intent = "smalltalk"
	IntentHelp      Intent = "help"
	IntentAbout     Intent = "about"
	IntentOffTopic  Intent = "off_topic"
)

// Service intents that depend on the user's region.
const (
	IntentFascicoloSanitario Intent = "fascicolo_sanitario"
	IntentBolloAuto          Intent = "bollo_auto"
	IntentCUP                Intent = "cup"
)

// National service intents.
const (
	IntentPatente        Intent = "patente"
	IntentANPR           Intent = "anpr"
	IntentIOApp          Intent = "io_app"
	IntentPagoPA         Intent = "pagopa"
	IntentScuola         Intent = "scuola"
	IntentTARI           Intent = "tari"
	IntentSPID           Intent = "spid"
	IntentCIE            Intent = "cie"
	IntentINPS           Intent = "inps"
	IntentAgenziaEntrate Intent = "agenzia_entrate"
)

// IntentUnknown is the fallback for anything unrecognized.
const IntentUnknown Intent = "unknown"

var (
	conversationalIntents = map[Intent]struct{}{
		IntentGreeting:  {},
		IntentSmalltalk: {},
		IntentHelp:      {},
		IntentAbout:     {},
		IntentOffTopic:  {},
	}

	regionalIntents = map[Intent]struct{}{
		IntentFascicoloSanitario: {},
		IntentBolloAuto:          {},
		IntentCUP:                {},
	}

	serviceIntents = []Intent{
		IntentFascicoloSanitario,
		IntentBolloAuto,
		IntentCUP,
		IntentPatente,
		IntentANPR,
		IntentIOApp,
		IntentPagoPA,
		IntentScuola,
		IntentTARI,
		IntentSPID,
		IntentCIE,
		IntentINPS,
		IntentAgenziaEntrate,
	}
)

// ParseIntent maps raw classifier output onto the fixed intent set.
// Anything outside the set becomes IntentUnknown.
func ParseIntent(raw string) Intent {
	i := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if i == IntentUnknown || i.IsConversational() || i.IsService() {
		return i
	}
	return IntentUnknown
}

// RequiresRegion reports whether links for i differ per region.
func (i Intent) RequiresRegion() bool {
	_, ok := regionalIntents[i]
	return ok
}

// IsConversational reports whether i is answered from canned text, not links.
func (i Intent) IsConversational() bool {
	_, ok := conversationalIntents[i]
	return ok
}

// IsService reports whether i resolves to catalog links.
func (i Intent) IsService() bool {
	for _, s := range serviceIntents {
		if s == i {
			return true
		}
	}
	return false
}

// ServiceIntents returns every intent that resolves to links.
func ServiceIntents() []Intent {
	out := make([]Intent, len(serviceIntents))
	copy(out, serviceIntents)
	return out
}

// Title renders an intent for display: "bollo_auto" -> "Bollo Auto".
func (i Intent) Title() string {
	words := strings.Fields(strings.ReplaceAll(string(i), "_", " "))
	for n, w := range words {
		words[n] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (i Intent) String() string {
	return string(i)
}
