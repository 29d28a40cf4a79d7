// Package resilience guards content sources with a circuit breaker and a
// per-call timeout so a slow or failing source degrades to fast failures.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
	"github.com/okian/lexrec/pkg/metrics"
)

// Fetcher is the content source being guarded.
type Fetcher interface {
	Fetch(ctx context.Context, q model.Query) (model.Page, error)
}

// BreakerFetcher decorates a Fetcher with a circuit breaker.
type BreakerFetcher struct {
	next    Fetcher
	cfg     config
	breaker *gobreaker.CircuitBreaker[model.Page]
}

// NewBreakerFetcher wraps next.
func NewBreakerFetcher(next Fetcher, opts ...Option) *BreakerFetcher {
	cfg := config{
		name:             "content",
		source:           "content",
		failureThreshold: DefaultFailureThreshold,
		openTimeout:      DefaultOpenTimeout,
		callTimeout:      DefaultCallTimeout,
		halfOpenRequests: DefaultHalfOpenRequests,
		log:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &BreakerFetcher{next: next, cfg: cfg}
	f.breaker = gobreaker.NewCircuitBreaker[model.Page](gobreaker.Settings{
		Name:        cfg.name,
		MaxRequests: cfg.halfOpenRequests,
		Timeout:     cfg.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.failureThreshold
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			f.cfg.log.Warn(context.Background(), "circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
			publishState(name, to)
		},
	})
	publishState(cfg.name, gobreaker.StateClosed)
	return f
}

// isSuccessful keeps caller mistakes and caller cancellations from counting
// against the source.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, model.ErrInvalidQuery) ||
		errors.Is(err, context.Canceled)
}

func publishState(name string, s gobreaker.State) {
	if v, err := metrics.BreakerStateValue(s.String()); err == nil {
		metrics.UpdateBreakerState(name, v)
	}
}

// Fetch implements recommend.ContentFetcher.
func (f *BreakerFetcher) Fetch(ctx context.Context, q model.Query) (model.Page, error) {
	start := time.Now()
	page, err := f.breaker.Execute(func() (model.Page, error) {
		cctx, cancel := context.WithTimeout(ctx, f.cfg.callTimeout)
		defer cancel()
		return f.next.Fetch(cctx, q)
	})
	metrics.RecordFetchLatency(f.cfg.source, float64(time.Since(start).Microseconds())/1000)

	if err == nil {
		return page, nil
	}
	metrics.RecordFetchError(f.cfg.source, string(q.SortBy))
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return model.Page{}, fmt.Errorf("%w: %s", ErrBreakerOpen, f.cfg.name)
	}
	return model.Page{}, err
}

// State reports the breaker state as "closed", "half-open" or "open".
func (f *BreakerFetcher) State() string {
	return f.breaker.State().String()
}
