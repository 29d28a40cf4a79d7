package loadtest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/lexrec/pkg/logger"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// submitRequests posts every request through a worker pool and verifies
// each successful response.
func submitRequests(ctx context.Context, config *Config, reqs []Request, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting recommendation requests",
		logger.Int("count", len(reqs)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommendations"

	var (
		submitted   int64
		successful  int64
		rateLimited int64
		failed      int64
		violations  int64
		mu          sync.Mutex
		byType      = map[string]int{}
	)

	reqChan := make(chan Request, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range reqChan {
				if ctx.Err() != nil {
					return
				}
				outcome, resp, err := submitSingleRequest(ctx, client, url, req)
				atomic.AddInt64(&submitted, 1)
				switch outcome {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
					mu.Lock()
					byType[string(resp.Type)]++
					mu.Unlock()
					if verr := verifyResponse(req, resp); verr != nil {
						atomic.AddInt64(&violations, 1)
						if config.Verbose {
							log.Warn(ctx, "response violates contract", logger.Error(verr))
						}
					}
				case outcomeRateLimited:
					atomic.AddInt64(&rateLimited, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Warn(ctx, "request failed", logger.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(reqChan)
		for _, req := range reqs {
			select {
			case <-ctx.Done():
				return
			case reqChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsSuccessful = int(atomic.LoadInt64(&successful))
	stats.RequestsRateLimit = int(atomic.LoadInt64(&rateLimited))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))
	stats.Violations = int(atomic.LoadInt64(&violations))
	stats.ByType = byType
}

// submitSingleRequest posts one request and decodes the result.
func submitSingleRequest(ctx context.Context, client *HTTPClient, url string, req Request) (string, Response, error) {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return outcomeFailed, Response{}, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed, Response{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var out Response
		if err := json.Unmarshal(body, &out); err != nil {
			return outcomeFailed, Response{}, fmt.Errorf("decode response: %w", err)
		}
		return outcomeSuccess, out, nil
	case http.StatusTooManyRequests:
		return outcomeRateLimited, Response{}, nil
	default:
		return outcomeFailed, Response{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
}

// fetchTrending reads GET /trending and returns the item count.
func fetchTrending(ctx context.Context, config *Config) (int, error) {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, fmt.Sprintf("%s/trending?limit=%d", config.BaseURL, config.Limit))
	if err != nil {
		return 0, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("trending returned status %d", resp.StatusCode)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("decode trending: %w", err)
	}
	return out.Count, nil
}
