// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	service "github.com/okian/lexrec/internal/app"
	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/recommend"
	"github.com/okian/lexrec/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Recommend(ctx context.Context, user *model.UserProfile, limit int, useSimilarity bool) (recommend.Result, error)
	Trending(ctx context.Context, limit int) ([]model.ContentItem, error)
	PracticeAreas(ctx context.Context) (service.PracticeAreas, error)
	ResolvePracticeArea(ctx context.Context, input string) (service.Resolution, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendationsHandler
	trendingHandler  *TrendingHandler
	practiceHandler  *PracticeAreasHandler
	limiter          *RateLimiter
	log              logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit enables per-client token bucket rate limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = NewRateLimiter(rps, burst)
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendationsHandler(deps),
		trendingHandler:  NewTrendingHandler(deps),
		practiceHandler:  NewPracticeAreasHandler(deps),
		log:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux. ctx bounds the rate limiter's
// background cleanup.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	if s.limiter != nil {
		go s.limiter.cleanupLoop(ctx, limiterCleanupInterval)
	}

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", s.wrap(s.recommendHandler.HandlePostRecommendations, "recommendations"))
	mux.HandleFunc("/trending", s.wrap(s.trendingHandler.HandleGetTrending, "trending"))
	mux.HandleFunc("/practice-areas", s.wrap(s.practiceHandler.HandleGetPracticeAreas, "practice_areas"))
	mux.HandleFunc("/practice-areas/resolve", s.wrap(s.practiceHandler.HandleResolve, "practice_areas_resolve"))
}

// wrap applies the business middleware chain: request id, metrics, rate limit.
func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	h = RateLimitMiddleware(h, s.limiter, endpoint)
	h = MetricsMiddleware(h, endpoint)
	return RequestIDMiddleware(h, s.log)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// parseLimit reads ?limit=N. A missing limit is 0, which means the default.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrBadRequest
	}
	return n, nil
}
