package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/practice"
	"github.com/okian/lexrec/pkg/logger"
)

const randomFloatDivisor = 1000000

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	return float64(getRandomInt(randomFloatDivisor)) / float64(randomFloatDivisor)
}

// generateRequests creates the configured number of recommendation requests.
func generateRequests(ctx context.Context, config *Config, stats *Stats) ([]Request, error) {
	logger.Get().Info(ctx, "generating profiles", logger.Int("numRequests", config.NumRequests))

	areas := practice.All()
	reqs := make([]Request, config.NumRequests)
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		reqs[i] = generateSingleRequest(areas, config)
	}

	stats.RequestsGenerated = len(reqs)
	return reqs, nil
}

// generateSingleRequest builds one request. Bios are drawn from the practice
// area's keywords so the similarity tier has something to match.
func generateSingleRequest(areas []practice.Area, config *Config) Request {
	req := Request{Limit: config.Limit, UseSimilarity: getRandomInt(4) != 0}
	if getRandomFloat() < config.AnonymousShare {
		return req
	}

	area := areas[getRandomInt(len(areas))]
	words := make([]string, 0, bioKeywordCount)
	for i := 0; i < bioKeywordCount && len(area.Keywords) > 0; i++ {
		words = append(words, area.Keywords[getRandomInt(len(area.Keywords))])
	}

	req.User = &model.UserProfile{
		ID:                uuid.New().String(),
		PracticeArea:      area.Value,
		Bio:               "I work on " + strings.Join(words, ", ") + " matters",
		YearsOfExperience: getRandomInt(maxYearsOfExperience),
	}
	return req
}
