// Package recommend orders content for a user by walking a ladder of
// recommendation strategies, from TF-IDF similarity down to plain recency.
package recommend

import (
	"context"
	"time"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/scoring"
	"github.com/okian/lexrec/pkg/logger"
	"github.com/okian/lexrec/pkg/metrics"
)

// Type tags a Result with the strategy that produced it.
type Type string

// Result types.
const (
	TypeSimilarity   Type = "cosine_similarity"
	TypePracticeArea Type = "practice_area"
	TypePopular      Type = "popular"
	TypeRecent       Type = "recent"
	TypeFallback     Type = "fallback"
)

// User-facing messages for results that carry no items.
const (
	MessageLoginRequired = "Please log in to see personalized recommendations"
	MessageUnavailable   = "Unable to load recommendations at this time"
)

// practiceAreaSample is how many active items AvailablePracticeAreas inspects.
const practiceAreaSample = 100

// ContentFetcher returns a page of content matching a query.
type ContentFetcher interface {
	Fetch(ctx context.Context, q model.Query) (model.Page, error)
}

// Result is what Personalized returns. Items is never nil. Scores is only
// set for similarity results and is parallel to Items.
type Result struct {
	Items   []model.ContentItem `json:"blogs"`
	Type    Type                `json:"recommendation_type"`
	Message string              `json:"message,omitempty"`
	Scores  []scoring.Result    `json:"similarity_scores,omitempty"`
}

// Recommender produces recommendations from a ContentFetcher. It keeps no
// per-request state and is safe for concurrent use.
type Recommender struct {
	fetcher       ContentFetcher
	scorer        *scoring.Scorer
	log           logger.Logger
	minSimilarity float64
	poolMin       int
	poolFactor    int
	defaultLimit  int
	tiers         []tier
}

// New creates a Recommender reading content from fetcher.
func New(fetcher ContentFetcher, opts ...Option) *Recommender {
	r := &Recommender{
		fetcher:       fetcher,
		scorer:        scoring.NewScorer(),
		log:           logger.Nop(),
		minSimilarity: DefaultMinSimilarity,
		poolMin:       DefaultPoolMin,
		poolFactor:    DefaultPoolFactor,
		defaultLimit:  DefaultLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tiers = defaultTiers()
	return r
}

// Personalized recommends up to limit items for user. It never fails: when
// nothing can be produced the Result is empty, tagged TypeFallback and carries
// a message for the reader.
func (r *Recommender) Personalized(ctx context.Context, user *model.UserProfile, limit int, useSimilarity bool) Result {
	if user == nil {
		metrics.RecordRecommendation(string(TypeFallback))
		return Result{Items: []model.ContentItem{}, Type: TypeFallback, Message: MessageLoginRequired}
	}
	if limit <= 0 {
		limit = r.defaultLimit
	}

	start := time.Now()
	defer func() {
		metrics.RecordRecommendLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	req := request{user: *user, limit: limit, useSimilarity: useSimilarity}
	for _, t := range r.tiers {
		if err := ctx.Err(); err != nil {
			r.log.Warn(ctx, "recommendation abandoned",
				logger.String("tier", string(t.name)),
				logger.Error(err))
			break
		}
		if !t.eligible(req) {
			metrics.RecordTierOutcome(string(t.name), "skipped")
			continue
		}

		res, err := t.run(r, ctx, req)
		switch {
		case err == nil:
			metrics.RecordTierOutcome(string(t.name), "hit")
			metrics.RecordRecommendation(string(res.Type))
			r.log.Debug(ctx, "recommendation served",
				logger.String("user_id", user.ID),
				logger.String("type", string(res.Type)),
				logger.Int("count", len(res.Items)))
			return res
		case isEmpty(err):
			metrics.RecordTierOutcome(string(t.name), "empty")
		default:
			metrics.RecordTierOutcome(string(t.name), "error")
			r.log.Warn(ctx, "recommendation tier failed",
				logger.String("tier", string(t.name)),
				logger.String("user_id", user.ID),
				logger.Error(err))
		}
	}

	metrics.RecordRecommendation(string(TypeFallback))
	return Result{Items: []model.ContentItem{}, Type: TypeFallback, Message: MessageUnavailable}
}

// Trending returns the most engaged active items. If the engagement sort is
// rejected it retries once with the popular sort; if that fails too the
// result is empty.
func (r *Recommender) Trending(ctx context.Context, limit int) []model.ContentItem {
	if limit <= 0 {
		limit = r.defaultLimit
	}

	page, err := r.fetcher.Fetch(ctx, model.Query{SortBy: model.SortEngagement, Status: model.StatusActive, Limit: limit})
	if err == nil {
		return nonNil(page.Items)
	}
	r.log.Warn(ctx, "trending engagement sort failed, retrying with popular sort", logger.Error(err))
	metrics.RecordTrendingFallback()

	page, err = r.fetcher.Fetch(ctx, model.Query{SortBy: model.SortPopular, Status: model.StatusActive, Limit: limit})
	if err != nil {
		r.log.Error(ctx, "trending content unavailable", logger.Error(err))
		metrics.RecordTrendingExhausted()
		return []model.ContentItem{}
	}
	return nonNil(page.Items)
}

// AvailablePracticeAreas lists, sorted, the categories found among recent
// active content. It returns an empty slice when content cannot be fetched.
func (r *Recommender) AvailablePracticeAreas(ctx context.Context) []string {
	page, err := r.fetcher.Fetch(ctx, model.Query{SortBy: model.SortRecent, Status: model.StatusActive, Limit: practiceAreaSample})
	if err != nil {
		r.log.Warn(ctx, "practice area sample failed", logger.Error(err))
		return []string{}
	}
	return distinctCategories(page.Items)
}

// HasPracticeAreaContent reports whether any active item is filed under area.
func (r *Recommender) HasPracticeAreaContent(ctx context.Context, area string) bool {
	if area == "" {
		return false
	}
	page, err := r.fetcher.Fetch(ctx, model.Query{Category: area, SortBy: model.SortRecent, Status: model.StatusActive, Limit: 1})
	if err != nil {
		r.log.Warn(ctx, "practice area probe failed",
			logger.String("practice_area", area),
			logger.Error(err))
		return false
	}
	return len(page.Items) > 0
}

func nonNil(items []model.ContentItem) []model.ContentItem {
	if items == nil {
		return []model.ContentItem{}
	}
	return items
}
