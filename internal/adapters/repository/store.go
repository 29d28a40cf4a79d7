// Package repository holds the content stores the recommender reads from.
package repository

import (
	"context"

	"github.com/okian/lexrec/internal/domain/model"
)

// Store provides read/write access to content items.
type Store interface {
	// Fetch returns the page of items matching q. Page.Total counts every
	// match before q.Limit is applied; a zero limit returns all matches.
	Fetch(ctx context.Context, q model.Query) (model.Page, error)

	// Get returns a single item. Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.ContentItem, error)

	// Upsert inserts items or replaces existing ones with the same id.
	Upsert(ctx context.Context, items ...model.ContentItem) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Close releases the store's resources.
	Close() error
}

func validateItem(item model.ContentItem) error {
	if item.ID == "" {
		return ErrInvalidItem
	}
	return nil
}
