package scoring

import (
	"fmt"
	"math"

	"github.com/okian/lexrec/internal/domain/tfidf"
)

// CosineSimilarity returns the cosine of the angle between a and b, clamped
// to [0,1]. A zero-magnitude vector has no direction and scores 0.
func CosineSimilarity(a, b tfidf.FeatureVector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return clamp01(dot / (math.Sqrt(magA) * math.Sqrt(magB))), nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
