// Package loadtest drives a running lexrec service with generated profiles
// and checks every response against the recommendation contract.
package loadtest

import (
	"time"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/recommend"
	"github.com/okian/lexrec/internal/domain/scoring"
)

// Config holds configuration for a load test run.
type Config struct {
	BaseURL        string        // Base URL of the service
	NumRequests    int           // Number of recommendation requests
	Limit          int           // Limit sent with every request
	AnonymousShare float64       // Fraction of requests sent without a user
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // Optional JSON report path
	Verbose        bool          // Log every violation
}

// Request is the POST /recommendations body.
type Request struct {
	User          *model.UserProfile `json:"user"`
	Limit         int                `json:"limit,omitempty"`
	UseSimilarity bool               `json:"use_similarity"`
}

// Response mirrors the recommendation result on the wire.
type Response struct {
	Blogs   []model.ContentItem `json:"blogs"`
	Type    recommend.Type      `json:"recommendation_type"`
	Message string              `json:"message"`
	Scores  []scoring.Result    `json:"similarity_scores"`
}

// Stats holds run statistics.
type Stats struct {
	RequestsGenerated  int            `json:"requests_generated"`
	RequestsSubmitted  int            `json:"requests_submitted"`
	RequestsSuccessful int            `json:"requests_successful"`
	RequestsRateLimit  int            `json:"requests_rate_limited"`
	RequestsFailed     int            `json:"requests_failed"`
	Violations         int            `json:"violations"`
	ByType             map[string]int `json:"by_type"`
	TrendingItems      int            `json:"trending_items"`
	StartTime          time.Time      `json:"start_time"`
	EndTime            time.Time      `json:"end_time"`
	Duration           time.Duration  `json:"duration_ns"`
}
