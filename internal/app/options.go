package service

import (
	"time"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/recommend"
	"github.com/okian/lexrec/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithContentSource selects the content source: memory, sqlite or http.
func WithContentSource(kind string) Option {
	return func(s *Service) {
		if kind != "" {
			s.source = kind
		}
	}
}

// WithSeedFile loads a YAML content seed into the memory or sqlite store.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// WithSeedItems loads items into the memory or sqlite store on start.
func WithSeedItems(items []model.ContentItem) Option {
	return func(s *Service) {
		s.seedItems = append(s.seedItems, items...)
	}
}

// WithSQLitePath sets the database file of the sqlite source.
func WithSQLitePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithContentAPIURL sets the base URL of the http source.
func WithContentAPIURL(u string) Option {
	return func(s *Service) {
		s.contentAPIURL = u
	}
}

// WithFetcher bypasses source construction and reads content from f.
func WithFetcher(f recommend.ContentFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithFetchTimeout bounds every content fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithBreaker configures the content source circuit breaker.
func WithBreaker(failureThreshold int, openTimeout time.Duration) Option {
	return func(s *Service) {
		if failureThreshold > 0 {
			s.breakerThreshold = failureThreshold
		}
		if openTimeout > 0 {
			s.breakerOpenTimeout = openTimeout
		}
	}
}

// WithLimits sets the default and maximum result counts.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// WithMinSimilarity sets the similarity threshold.
func WithMinSimilarity(threshold float64) Option {
	return func(s *Service) {
		s.minSimilarity = threshold
	}
}

// WithCandidatePool sizes the similarity candidate pool.
func WithCandidatePool(minimum, factor int) Option {
	return func(s *Service) {
		if minimum > 0 {
			s.poolMin = minimum
		}
		if factor > 0 {
			s.poolFactor = factor
		}
	}
}
