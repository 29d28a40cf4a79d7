package model

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is returned by Query.Validate.
var ErrInvalidQuery = errors.New("invalid content query")

// SortKey selects the ordering of a content page.
type SortKey string

// Sort keys understood by content sources.
const (
	SortRecent     SortKey = "recent"
	SortEngagement SortKey = "engagement"
	SortPopular    SortKey = "popular"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortRecent, SortEngagement, SortPopular:
		return true
	}
	return false
}

// Query is a request for a page of content items. Empty Category and
// Status mean "no filter".
type Query struct {
	Category string
	SortBy   SortKey
	Status   string
	Limit    int
}

// Validate checks the sort key and limit.
func (q Query) Validate() error {
	if !q.SortBy.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidQuery, q.SortBy)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidQuery, q.Limit)
	}
	return nil
}

// Page is one page of content returned by a source. Total counts every
// matching item before the limit was applied.
type Page struct {
	Items []ContentItem `json:"blog_posts"`
	Total int           `json:"total"`
}
