package classifier

import "errors"

var (
	ErrNoJSONObject = errors.New("no JSON object in reply")
	ErrInvalidReply = errors.New("invalid classifier reply")
)
