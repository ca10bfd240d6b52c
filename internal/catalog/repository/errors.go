package repository

import "errors"

var (
	ErrNotFound       = errors.New("dataset not found")
	ErrDecode         = errors.New("failed to decode dataset")
	ErrUnsupported    = errors.New("unsupported dataset format")
	ErrInvalidRecords = errors.New("dataset root must be a list of records")
)
