package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
	"github.com/okian/lexrec/pkg/metrics"
)

// MemoryStore is an in-memory Store.
//
// Ordering: the sort key DESC, then ID ASC, so every query is deterministic.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]model.ContentItem
	log   logger.Logger
}

// NewMemoryStore creates an empty MemoryStore, loading any WithSeed items.
func NewMemoryStore(ctx context.Context, opts ...Option) (*MemoryStore, error) {
	o := buildOptions(opts)
	s := &MemoryStore{
		items: make(map[string]model.ContentItem, len(o.seed)),
		log:   o.log,
	}
	if len(o.seed) > 0 {
		if err := s.Upsert(ctx, o.seed...); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		s.log.Info(ctx, "memory store seeded", logger.Int("items", len(o.seed)))
	}
	return s, nil
}

// Fetch implements Store.
func (s *MemoryStore) Fetch(_ context.Context, q model.Query) (model.Page, error) {
	if err := q.Validate(); err != nil {
		return model.Page{}, err
	}

	s.mu.RLock()
	matched := make([]model.ContentItem, 0, len(s.items))
	for _, it := range s.items {
		if q.Category != "" && it.Category != q.Category {
			continue
		}
		if q.Status != "" && it.Status != q.Status {
			continue
		}
		matched = append(matched, it)
	}
	s.mu.RUnlock()

	less := orderFor(q.SortBy)
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	total := len(matched)
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return model.Page{Items: matched, Total: total}, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (model.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return model.ContentItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return it, nil
}

// Upsert implements Store. Either every item is stored or none is.
func (s *MemoryStore) Upsert(_ context.Context, items ...model.ContentItem) error {
	for _, it := range items {
		if err := validateItem(it); err != nil {
			return err
		}
	}

	s.mu.Lock()
	for _, it := range items {
		s.items[it.ID] = it
	}
	n := len(s.items)
	s.mu.Unlock()

	metrics.UpdateContentItems(n)
	return nil
}

// Count implements Store.
func (s *MemoryStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

// orderFor returns a comparator where "less" means listed earlier.
func orderFor(key model.SortKey) func(a, b model.ContentItem) bool {
	switch key {
	case model.SortRecent:
		return func(a, b model.ContentItem) bool {
			if !a.PublishedAt.Equal(b.PublishedAt) {
				return a.PublishedAt.After(b.PublishedAt)
			}
			return a.ID < b.ID
		}
	case model.SortPopular:
		return func(a, b model.ContentItem) bool {
			if a.Views != b.Views {
				return a.Views > b.Views
			}
			if a.Likes != b.Likes {
				return a.Likes > b.Likes
			}
			return a.ID < b.ID
		}
	default:
		return func(a, b model.ContentItem) bool {
			ea, eb := a.EngagementScore(), b.EngagementScore()
			if ea != eb {
				return ea > eb
			}
			return a.ID < b.ID
		}
	}
}
