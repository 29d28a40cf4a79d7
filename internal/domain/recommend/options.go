package recommend

import (
	"github.com/okian/lexrec/internal/domain/scoring"
	"github.com/okian/lexrec/pkg/logger"
)

// Defaults used when the corresponding option is not supplied.
const (
	DefaultMinSimilarity = 0.15
	DefaultPoolMin       = 50
	DefaultPoolFactor    = 3
	DefaultLimit         = 6
)

// Option applies a configuration option to the Recommender.
type Option func(*Recommender)

// WithLogger sets the logger for tier diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(r *Recommender) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMinSimilarity sets the score below which similarity candidates are dropped.
func WithMinSimilarity(threshold float64) Option {
	return func(r *Recommender) {
		if threshold >= 0 && threshold <= 1 {
			r.minSimilarity = threshold
		}
	}
}

// WithCandidatePool sizes the similarity pool as max(minimum, limit*factor).
func WithCandidatePool(minimum, factor int) Option {
	return func(r *Recommender) {
		if minimum > 0 {
			r.poolMin = minimum
		}
		if factor > 0 {
			r.poolFactor = factor
		}
	}
}

// WithDefaultLimit sets the limit used when a caller passes limit <= 0.
func WithDefaultLimit(limit int) Option {
	return func(r *Recommender) {
		if limit > 0 {
			r.defaultLimit = limit
		}
	}
}

// WithScorer replaces the content scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(r *Recommender) {
		if s != nil {
			r.scorer = s
		}
	}
}
