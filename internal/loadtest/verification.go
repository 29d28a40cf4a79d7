package loadtest

import (
	"errors"
	"fmt"

	"github.com/okian/lexrec/internal/domain/recommend"
)

// ErrViolation marks a response that breaks the recommendation contract.
var ErrViolation = errors.New("contract violation")

// verifyResponse checks one response against the request that produced it.
func verifyResponse(req Request, resp Response) error {
	if req.User == nil {
		if resp.Type != recommend.TypeFallback || resp.Message != recommend.MessageLoginRequired || len(resp.Blogs) != 0 {
			return fmt.Errorf("%w: anonymous request got %q %q", ErrViolation, resp.Type, resp.Message)
		}
		return nil
	}

	if req.Limit > 0 && len(resp.Blogs) > req.Limit {
		return fmt.Errorf("%w: %d items for limit %d", ErrViolation, len(resp.Blogs), req.Limit)
	}

	switch resp.Type {
	case recommend.TypeSimilarity:
		if !req.UseSimilarity {
			return fmt.Errorf("%w: similarity tier ran with similarity disabled", ErrViolation)
		}
		return verifyScores(resp)
	case recommend.TypePracticeArea:
		for _, item := range resp.Blogs {
			if item.Category != req.User.PracticeArea {
				return fmt.Errorf("%w: item %s has category %q, want %q", ErrViolation, item.ID, item.Category, req.User.PracticeArea)
			}
		}
	case recommend.TypePopular, recommend.TypeRecent:
	case recommend.TypeFallback:
		if len(resp.Blogs) != 0 {
			return fmt.Errorf("%w: fallback with %d items", ErrViolation, len(resp.Blogs))
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrViolation, resp.Type)
	}

	if len(resp.Scores) != 0 {
		return fmt.Errorf("%w: scores attached to %q result", ErrViolation, resp.Type)
	}
	return nil
}

// verifyScores checks the similarity invariants: one score per item, every
// score in [0,1], and scores non-increasing.
func verifyScores(resp Response) error {
	if len(resp.Scores) != len(resp.Blogs) {
		return fmt.Errorf("%w: %d scores for %d items", ErrViolation, len(resp.Scores), len(resp.Blogs))
	}
	for i, s := range resp.Scores {
		if s.Score < 0 || s.Score > 1 {
			return fmt.Errorf("%w: score %f out of range", ErrViolation, s.Score)
		}
		if s.ContentID != resp.Blogs[i].ID {
			return fmt.Errorf("%w: score %d is for %s, item is %s", ErrViolation, i, s.ContentID, resp.Blogs[i].ID)
		}
		if i > 0 && s.Score > resp.Scores[i-1].Score {
			return fmt.Errorf("%w: scores not sorted at %d", ErrViolation, i)
		}
	}
	return nil
}
