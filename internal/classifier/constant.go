package classifier

import "time"

// Log prefixes
const (
	LogPrefixClassify     = "internal.classifier.Classify"
	LogPrefixUpdatePrompt = "internal.classifier.UpdateSystemPrompt"
	LogPrefixHealthCheck  = "internal.classifier.HealthCheck"
)

// Classifier configuration
const (
	Temperature = 0.0

	DefaultCacheSize       = 1000
	DefaultCacheKeyLength  = 100
	DefaultRetryAttempts   = 3
	DefaultRetryBaseDelay  = time.Second
	DefaultRetryMultiplier = 2.0
)

// Outcome label values
const (
	OutcomeSuccess    = "success"
	OutcomeCached     = "cached"
	OutcomeParseError = "parse_error"
	OutcomeExhausted  = "exhausted"
	OutcomeFailed     = "failed"
	OutcomeEmptyInput = "empty_input"
)

// Error messages
const (
	ErrMsgLLMCallFailed   = "LLM call failed"
	ErrMsgRetriesExceeded = "retries exhausted, falling back to unknown"
	ErrMsgParseFailed     = "failed to parse reply, falling back to unknown"
)

// DefaultSystemPrompt instructs the model to answer with the four-field JSON object.
const DefaultSystemPrompt = `You are a classifier for an Italian public services Telegram bot. Given a user message, respond with JSON ONLY in this exact schema:
{"intent":"...", "region":null or "<Italian region>", "confidence":0..1, "needs_region":true|false}
Allowed intents: fascicolo_sanitario, bollo_auto, patente, cup, anpr, io_app, pagopa, scuola, tari, spid, cie, inps, agenzia_entrate, greeting, smalltalk, help, about, off_topic, unknown.
Rules:
- 'cosa sai fare', 'help', 'aiuto', 'come funzioni' => intent=help
- 'chi sei', 'chi ti ha creato', 'info bot' => intent=about
- Greetings like 'ciao', 'hey', 'buongiorno' => intent=greeting
- Small talk like 'come va' => intent=smalltalk
- Health records, medical records, FSE => intent=fascicolo_sanitario
- Car tax, bollo auto, vehicle tax => intent=bollo_auto
- Medical appointments, CUP, book visit => intent=cup
- Driving license, patente => intent=patente
- Certificates, anagrafe, ANPR => intent=anpr
- IO app, app IO => intent=io_app
- PagoPA, payments => intent=pagopa
- School, scuola, iscrizioni => intent=scuola
- Waste tax, TARI, tassa rifiuti => intent=tari
- SPID, identità digitale => intent=spid
- CIE, carta identità elettronica => intent=cie
- INPS, pensioni, social security => intent=inps
- Agenzia Entrate, tasse, fiscale => intent=agenzia_entrate
- Region: valid Italian region name or null.
- needs_region=true only for fascicolo_sanitario, bollo_auto, cup if region is missing.
- off_topic for anything not related to Italian PA.
- Respond with JSON only. No extra text.
Examples:
U: Cosa sai fare?
A: {"intent":"help", "region":null, "confidence":0.95, "needs_region":false}
U: Come richiedere SPID?
A: {"intent":"spid", "region":null, "confidence":0.9, "needs_region":false}
U: Prenotare visita medica in Lombardia
A: {"intent":"cup", "region":"Lombardia", "confidence":0.9, "needs_region":false}
U: Fascicolo sanitario
A: {"intent":"fascicolo_sanitario", "region":null, "confidence":0.9, "needs_region":true}
`
