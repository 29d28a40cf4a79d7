// Package scoring ranks content against a user profile by combining TF-IDF
// text similarity with practice-area and experience signals.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/practice"
	"github.com/okian/lexrec/internal/domain/text"
	"github.com/okian/lexrec/internal/domain/tfidf"
)

// Score weights and reason thresholds.
const (
	TextWeight         = 0.6
	PracticeAreaWeight = 0.3
	ExperienceWeight   = 0.1

	// experienceCapYears is where the experience bonus saturates.
	experienceCapYears = 20.0
	// bioKeywords is how many bio keywords feed the user text.
	bioKeywords = 10

	// SimilarReasonThreshold is the text similarity above which the
	// "similar content" reason is given.
	SimilarReasonThreshold = 0.3
	// EngagedReasonThreshold is the engagement score above which the
	// "highly engaged" reason is given.
	EngagedReasonThreshold = 10.0
)

// Reason strings attached to a Result.
const (
	ReasonPracticeAreaPrefix = "Matches your practice area: "
	ReasonSimilarContent     = "Similar content to your interests"
	ReasonHighlyEngaged      = "Highly engaged content"
)

// Result is the score of one content item for one user.
type Result struct {
	ContentID string   `json:"content_id"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons"`
}

// KeywordSource maps a practice area to its similarity keywords.
type KeywordSource func(practiceArea string) []string

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithKeywordSource replaces the practice-area keyword lookup.
func WithKeywordSource(src KeywordSource) Option {
	return func(s *Scorer) {
		if src != nil {
			s.keywords = src
		}
	}
}

// Scorer computes Results. It holds no per-request state and is safe for
// concurrent use; the Vectorizer is passed in by the caller.
type Scorer struct {
	keywords KeywordSource
}

// NewScorer creates a Scorer backed by the standard practice-area table.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{keywords: practice.Keywords}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentDocument is the text of item used both to build the vocabulary and
// to vectorize the item.
func ContentDocument(item model.ContentItem) string {
	return strings.Join([]string{item.Title, item.Summary, item.Category, item.Tags}, " ")
}

// UserDocument is the text representing a user's interests: practice-area
// keywords, specialization tokens and the top bio keywords.
func (s *Scorer) UserDocument(user model.UserProfile) string {
	parts := make([]string, 0, 3*bioKeywords)
	parts = append(parts, s.keywords(user.PracticeArea)...)
	if user.Specialization != "" {
		parts = append(parts, text.Tokenize(user.Specialization)...)
	}
	if user.Bio != "" {
		parts = append(parts, text.ExtractKeywords(user.Bio, bioKeywords)...)
	}
	return strings.Join(parts, " ")
}

// ScoreUserAgainstContent scores item for user. v must already be built
// from the corpus item belongs to.
func (s *Scorer) ScoreUserAgainstContent(user model.UserProfile, item model.ContentItem, v *tfidf.Vectorizer) (Result, error) {
	textSimilarity, err := CosineSimilarity(
		v.Vectorize(s.UserDocument(user)),
		v.Vectorize(ContentDocument(item)),
	)
	if err != nil {
		return Result{}, fmt.Errorf("score content %s: %w", item.ID, err)
	}

	// Exact comparison; "corporate law" does not match "Corporate Law".
	practiceAreaMatch := 0.0
	if user.PracticeArea == item.Category {
		practiceAreaMatch = 1.0
	}

	experienceBonus := math.Min(float64(user.YearsOfExperience)/experienceCapYears, 1) * ExperienceWeight

	score := textSimilarity*TextWeight + practiceAreaMatch*PracticeAreaWeight + experienceBonus

	reasons := make([]string, 0, 3)
	if practiceAreaMatch > 0 {
		reasons = append(reasons, ReasonPracticeAreaPrefix+user.PracticeArea)
	}
	if textSimilarity > SimilarReasonThreshold {
		reasons = append(reasons, ReasonSimilarContent)
	}
	if item.EngagementScore() > EngagedReasonThreshold {
		reasons = append(reasons, ReasonHighlyEngaged)
	}

	return Result{
		ContentID: item.ID,
		Score:     clamp01(score),
		Reasons:   reasons,
	}, nil
}
