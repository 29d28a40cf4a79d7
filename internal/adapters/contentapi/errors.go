package contentapi

import "errors"

// Sentinel kinds for content API errors.
var (
	ErrUpstream    = errors.New("content api returned an error status")
	ErrDecode      = errors.New("content api response could not be decoded")
	ErrInvalidBase = errors.New("invalid content api base url")
)
