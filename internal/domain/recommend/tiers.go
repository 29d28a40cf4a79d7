package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/scoring"
	"github.com/okian/lexrec/internal/domain/tfidf"
	"github.com/okian/lexrec/pkg/logger"
	"github.com/okian/lexrec/pkg/metrics"
)

// request is the per-call input shared by every tier.
type request struct {
	user          model.UserProfile
	limit         int
	useSimilarity bool
}

// tier is one rung of the recommendation ladder. run returns ErrNoCandidates
// when it has nothing to offer; any other error is a fetch or scoring failure.
type tier struct {
	name     Type
	eligible func(req request) bool
	run      func(r *Recommender, ctx context.Context, req request) (Result, error) //nolint:revive // method expression shape
}

// defaultTiers is the ladder in evaluation order.
func defaultTiers() []tier {
	return []tier{
		{name: TypeSimilarity, eligible: similarityEligible, run: (*Recommender).similarityTier},
		{name: TypePracticeArea, eligible: practiceAreaEligible, run: (*Recommender).practiceAreaTier},
		{name: TypePopular, eligible: always, run: (*Recommender).popularTier},
		{name: TypeRecent, eligible: always, run: (*Recommender).recentTier},
	}
}

func similarityEligible(req request) bool {
	return req.useSimilarity && req.user.PracticeArea != "" && req.user.Bio != ""
}

func practiceAreaEligible(req request) bool {
	return req.user.PracticeArea != ""
}

func always(request) bool { return true }

func isEmpty(err error) bool {
	return errors.Is(err, ErrNoCandidates)
}

func (r *Recommender) poolSize(limit int) int {
	if n := limit * r.poolFactor; n > r.poolMin {
		return n
	}
	return r.poolMin
}

// similarityTier scores an engagement-sorted candidate pool against the
// user with a vocabulary built from that pool alone.
func (r *Recommender) similarityTier(ctx context.Context, req request) (Result, error) {
	page, err := r.fetcher.Fetch(ctx, model.Query{
		SortBy: model.SortEngagement,
		Status: model.StatusActive,
		Limit:  r.poolSize(req.limit),
	})
	if err != nil {
		return Result{}, fmt.Errorf("fetch candidate pool: %w", err)
	}
	if len(page.Items) == 0 {
		return Result{}, ErrNoCandidates
	}
	metrics.RecordCandidatesScored(len(page.Items))

	docs := make([]string, len(page.Items))
	for i, item := range page.Items {
		docs[i] = scoring.ContentDocument(item)
	}
	v := tfidf.NewVectorizer()
	v.BuildVocabulary(docs)
	metrics.RecordVocabularySize(v.Size())

	type scored struct {
		item   model.ContentItem
		result scoring.Result
	}
	kept := make([]scored, 0, len(page.Items))
	for _, item := range page.Items {
		res, err := r.scorer.ScoreUserAgainstContent(req.user, item, v)
		if err != nil {
			return Result{}, err
		}
		metrics.RecordSimilarityScore(res.Score)
		if res.Score < r.minSimilarity {
			continue
		}
		kept = append(kept, scored{item: item, result: res})
	}
	if len(kept) == 0 {
		r.log.Debug(ctx, "no candidate cleared similarity threshold",
			logger.Int("pool", len(page.Items)),
			logger.Float64("threshold", r.minSimilarity))
		return Result{}, ErrNoCandidates
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].result.Score > kept[j].result.Score
	})
	if len(kept) > req.limit {
		kept = kept[:req.limit]
	}

	items := make([]model.ContentItem, len(kept))
	scores := make([]scoring.Result, len(kept))
	total := 0.0
	for i, k := range kept {
		items[i] = k.item
		scores[i] = k.result
		total += k.result.Score
	}
	avg := total / float64(len(kept))

	return Result{
		Items:   items,
		Type:    TypeSimilarity,
		Message: fmt.Sprintf("Personalized recommendations based on your profile and interests (%d%% match)", int(math.Round(avg*100))),
		Scores:  scores,
	}, nil
}

func (r *Recommender) practiceAreaTier(ctx context.Context, req request) (Result, error) {
	return r.simpleTier(ctx, model.Query{
		Category: req.user.PracticeArea,
		SortBy:   model.SortEngagement,
		Status:   model.StatusActive,
		Limit:    req.limit,
	}, TypePracticeArea, "Recommended based on your practice area: "+req.user.PracticeArea)
}

func (r *Recommender) popularTier(ctx context.Context, req request) (Result, error) {
	return r.simpleTier(ctx, model.Query{
		SortBy: model.SortEngagement,
		Status: model.StatusActive,
		Limit:  req.limit,
	}, TypePopular, "Popular content based on community engagement")
}

func (r *Recommender) recentTier(ctx context.Context, req request) (Result, error) {
	return r.simpleTier(ctx, model.Query{
		SortBy: model.SortRecent,
		Status: model.StatusActive,
		Limit:  req.limit,
	}, TypeRecent, "Recent blog posts")
}

func (r *Recommender) simpleTier(ctx context.Context, q model.Query, typ Type, msg string) (Result, error) {
	page, err := r.fetcher.Fetch(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %s: %w", typ, err)
	}
	if len(page.Items) == 0 {
		return Result{}, ErrNoCandidates
	}
	items := page.Items
	if len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return Result{Items: items, Type: typ, Message: msg}, nil
}

func distinctCategories(items []model.ContentItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}
