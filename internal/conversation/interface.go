package conversation

import "context"

// UseCase runs one conversational turn per call. Calls for the same session
// are serialized; different sessions run concurrently.
type UseCase interface {
	// HandleFreeText treats text as a new request, whatever the session state.
	HandleFreeText(ctx context.Context, sessionID, text, locale string) Response
	// HandleRegionReply treats text as the answer to a pending region question.
	HandleRegionReply(ctx context.Context, sessionID, text, locale string) Response
	// Handle dispatches on the current session state.
	Handle(ctx context.Context, sessionID, text, locale string) Response

	// Cancel drops any pending request for the session.
	Cancel(sessionID string)
	State(sessionID string) State

	ReloadCatalog(ctx context.Context) bool
	// Regions returns known regions matching query, all of them for "".
	Regions(query string) []string
	Stats() Stats
}
