package catalog

import "errors"

var (
	ErrEmptyCatalog = errors.New("catalog has no valid entries")
)
