package repository

import "errors"

// Sentinel kinds for content store errors.
var (
	ErrNotFound    = errors.New("content item not found")
	ErrInvalidItem = errors.New("invalid content item")
	ErrSeed        = errors.New("invalid seed file")
)
