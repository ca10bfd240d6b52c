package conversation

import (
	"time"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/classifier"
	"pastalink-bot/internal/model"
	"pastalink-bot/internal/validator"
)

// State of a session.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingRegion State = "awaiting_region"
)

// ResponseKind tags the Response union.
type ResponseKind string

const (
	KindLinks           ResponseKind = "links"
	KindConversational  ResponseKind = "conversational"
	KindAskRegion       ResponseKind = "ask_region"
	KindValidationError ResponseKind = "validation_error"
	KindError           ResponseKind = "error"
)

// Error kinds carried by KindError responses.
const (
	ErrorKindGeneric model.ErrorKind = "generic"
	ErrorKindNoLinks model.ErrorKind = "no_links"
)

// Response is the outcome of one turn. Which fields are set depends on Kind:
//
//	Links:           Intent, Region, Entries
//	Conversational:  ConversationalIntent, Text
//	AskRegion:       Intent, Examples
//	ValidationError: ErrorKind, Message, Suggestions, Input
//	Error:           ErrorKind, Intent (when known)
type Response struct {
	Kind ResponseKind `json:"kind"`

	Intent  model.Intent         `json:"intent,omitempty"`
	Region  string               `json:"region,omitempty"`
	Entries []model.CatalogEntry `json:"entries,omitempty"`

	ConversationalIntent model.Intent `json:"conversational_intent,omitempty"`
	Text                 string       `json:"text,omitempty"`

	Examples []string `json:"examples,omitempty"`

	ErrorKind   model.ErrorKind `json:"error_kind,omitempty"`
	Message     string          `json:"message,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	Input       string          `json:"input,omitempty"`
}

// PendingRequest is the intent waiting for a region answer.
type PendingRequest struct {
	Intent       model.Intent
	OriginalText string
	Confidence   float64
	CreatedAt    time.Time
}

// Stats aggregates the pipeline components for admin views.
type Stats struct {
	Catalog         catalog.Stats         `json:"catalog"`
	Classifier      classifier.CacheStats `json:"classifier"`
	Validator       validator.Stats       `json:"validator"`
	ActiveSessions  int                   `json:"active_sessions"`
	PendingSessions int                   `json:"pending_sessions"`
}
