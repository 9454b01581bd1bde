package services

import "errors"

// Common service errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidState      = errors.New("invalid state transition")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidProfile    = errors.New("invalid profile document")
	ErrQueueUnavailable  = errors.New("export queue unavailable")
)
