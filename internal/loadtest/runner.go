package loadtest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/lexrec/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	reportPermission    = 0600
)

// ErrUnhealthy is returned when the service health check fails.
var ErrUnhealthy = errors.New("service unhealthy")

// Run executes a complete load test and returns its statistics. Contract
// violations are reported as an error wrapping ErrViolation.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting lexrec load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, err
	}

	reqs, err := generateRequests(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("request generation failed: %w", err)
	}

	submitRequests(ctx, config, reqs, stats)

	n, err := fetchTrending(ctx, config)
	if err != nil {
		log.Warn(ctx, "trending check failed", logger.Error(err))
	}
	stats.TrendingItems = n

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if config.OutputFile != "" {
		if err := saveReport(config.OutputFile, stats); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}

	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d responses", ErrViolation, stats.Violations)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	resp, err := newHTTPClient(config.Timeout).Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = readResponseBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// saveReport writes stats as JSON.
func saveReport(filename string, stats *Stats) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(filename, data, reportPermission)
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsSuccessful) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsSuccessful", stats.RequestsSuccessful),
		logger.Int("requestsRateLimited", stats.RequestsRateLimit),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("violations", stats.Violations),
		logger.Any("byType", stats.ByType),
		logger.Int("trendingItems", stats.TrendingItems),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
