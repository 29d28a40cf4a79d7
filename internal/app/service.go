// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/lexrec/internal/adapters/contentapi"
	"github.com/okian/lexrec/internal/adapters/repository"
	"github.com/okian/lexrec/internal/adapters/resilience"
	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/practice"
	"github.com/okian/lexrec/internal/domain/recommend"
	"github.com/okian/lexrec/pkg/logger"
)

// Content source kinds accepted by WithContentSource.
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// PracticeAreas lists the standard practice areas and the categories that
// currently have content.
type PracticeAreas struct {
	Standard    []practice.Area `json:"practice_areas"`
	WithContent []string        `json:"with_content"`
}

// Resolution is the outcome of mapping free text onto a practice area.
type Resolution struct {
	Input      string        `json:"input"`
	Matched    bool          `json:"matched"`
	Area       practice.Area `json:"area"`
	HasContent bool          `json:"has_content"`
}

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	fetcher     recommend.ContentFetcher
	breaker     *resilience.BreakerFetcher
	recommender *recommend.Recommender

	// Configuration
	source             string
	seedFile           string
	seedItems          []model.ContentItem
	sqlitePath         string
	contentAPIURL      string
	fetchTimeout       time.Duration
	breakerThreshold   int
	breakerOpenTimeout time.Duration
	defaultLimit       int
	maxLimit           int
	minSimilarity      float64
	poolMin            int
	poolFactor         int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		source:             SourceMemory,
		sqlitePath:         "lexrec.db",
		fetchTimeout:       resilience.DefaultCallTimeout,
		breakerThreshold:   resilience.DefaultFailureThreshold,
		breakerOpenTimeout: resilience.DefaultOpenTimeout,
		defaultLimit:       recommend.DefaultLimit,
		maxLimit:           50,
		minSimilarity:      recommend.DefaultMinSimilarity,
		poolMin:            recommend.DefaultPoolMin,
		poolFactor:         recommend.DefaultPoolFactor,
		logger:             nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the content source and the recommender.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...", logger.String("source", s.source))

	source, err := s.openSource(ctx)
	if err != nil {
		return err
	}

	s.breaker = resilience.NewBreakerFetcher(source,
		resilience.WithName("content"),
		resilience.WithSource(s.source),
		resilience.WithFailureThreshold(uint32(s.breakerThreshold)), //nolint:gosec // validated positive
		resilience.WithOpenTimeout(s.breakerOpenTimeout),
		resilience.WithCallTimeout(s.fetchTimeout),
		resilience.WithLogger(s.logger.Named("breaker")),
	)

	s.recommender = recommend.New(s.breaker,
		recommend.WithLogger(s.logger.Named("recommend")),
		recommend.WithMinSimilarity(s.minSimilarity),
		recommend.WithCandidatePool(s.poolMin, s.poolFactor),
		recommend.WithDefaultLimit(s.defaultLimit),
	)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.String("source", s.source),
		logger.Int("defaultLimit", s.defaultLimit),
		logger.Int("maxLimit", s.maxLimit),
		logger.Float64("minSimilarity", s.minSimilarity),
	)
	return nil
}

// openSource returns the injected fetcher or builds the configured one.
func (s *Service) openSource(ctx context.Context) (recommend.ContentFetcher, error) {
	if s.fetcher != nil {
		return s.fetcher, nil
	}

	seed := s.seedItems
	if s.seedFile != "" {
		items, err := repository.LoadSeedFile(s.seedFile)
		if err != nil {
			return nil, err
		}
		seed = append(append([]model.ContentItem{}, seed...), items...)
	}
	storeOpts := []repository.Option{
		repository.WithLogger(s.logger.Named("store")),
		repository.WithSeed(seed),
	}

	switch s.source {
	case SourceMemory:
		st, err := repository.NewMemoryStore(ctx, storeOpts...)
		if err != nil {
			return nil, err
		}
		s.store = st
		return st, nil
	case SourceSQLite:
		st, err := repository.OpenSQLite(ctx, s.sqlitePath, storeOpts...)
		if err != nil {
			return nil, err
		}
		s.store = st
		return st, nil
	case SourceHTTP:
		return contentapi.New(s.contentAPIURL,
			contentapi.WithTimeout(s.fetchTimeout),
			contentapi.WithLogger(s.logger.Named("contentapi")),
		)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, s.source)
	}
}

// Stop releases the content store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing content store failed", logger.Error(err))
		}
		s.store = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

func (s *Service) current() (*recommend.Recommender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.recommender, nil
}

// clampLimit maps non-positive limits to the default and caps the rest.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// Recommend returns personalized recommendations for user. A nil user is
// allowed and yields the login fallback.
func (s *Service) Recommend(ctx context.Context, user *model.UserProfile, limit int, useSimilarity bool) (recommend.Result, error) {
	r, err := s.current()
	if err != nil {
		return recommend.Result{}, err
	}
	if user != nil {
		if err := user.Validate(); err != nil {
			return recommend.Result{}, err
		}
	}
	return r.Personalized(ctx, user, s.clampLimit(limit), useSimilarity), nil
}

// Trending returns the most engaged content.
func (s *Service) Trending(ctx context.Context, limit int) ([]model.ContentItem, error) {
	r, err := s.current()
	if err != nil {
		return nil, err
	}
	return r.Trending(ctx, s.clampLimit(limit)), nil
}

// PracticeAreas returns the standard table and the categories that have content.
func (s *Service) PracticeAreas(ctx context.Context) (PracticeAreas, error) {
	r, err := s.current()
	if err != nil {
		return PracticeAreas{}, err
	}
	return PracticeAreas{
		Standard:    practice.All(),
		WithContent: r.AvailablePracticeAreas(ctx),
	}, nil
}

// ResolvePracticeArea maps free text (e.g. a legacy profile value) onto a
// standard practice area and reports whether that area has content.
func (s *Service) ResolvePracticeArea(ctx context.Context, input string) (Resolution, error) {
	r, err := s.current()
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{Input: input}
	area, ok := practice.BestMatch(input)
	if !ok {
		area, _ = practice.ByValue(practice.Migrate(input))
	}
	res.Matched = ok
	res.Area = area
	res.HasContent = r.HasPracticeAreaContent(ctx, area.Value)
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"source":        s.source,
		"defaultLimit":  s.defaultLimit,
		"maxLimit":      s.maxLimit,
		"minSimilarity": s.minSimilarity,
	}

	if s.started {
		stats["breakerState"] = s.breaker.State()
		if s.store != nil {
			if n, err := s.store.Count(context.Background()); err == nil {
				stats["contentItems"] = n
			}
		}
	}

	return stats
}
