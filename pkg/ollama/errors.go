package ollama

import "errors"

var (
	// ErrTransient marks failures worth retrying: transport errors, 5xx and 429.
	ErrTransient = errors.New("ollama: transient failure")

	// ErrEmptyReply means the server answered without message content.
	ErrEmptyReply = errors.New("ollama: empty reply")
)

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
