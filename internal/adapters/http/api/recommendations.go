package api

import (
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/recommend"
)

const maxRecommendationBody = 64 << 10

// RecommendationsDependencies defines the interface for recommendation operations.
type RecommendationsDependencies interface {
	Recommend(ctx context.Context, user *model.UserProfile, limit int, useSimilarity bool) (recommend.Result, error)
}

// recommendationRequest mirrors the OpenAPI schema for POST /recommendations.
// A null or absent user yields the login fallback.
type recommendationRequest struct {
	User          *model.UserProfile `json:"user"`
	Limit         int                `json:"limit"`
	UseSimilarity *bool              `json:"use_similarity"`
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps RecommendationsDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationsDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendationsHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRecommendationBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	useSimilarity := true
	if req.UseSimilarity != nil {
		useSimilarity = *req.UseSimilarity
	}

	res, err := h.deps.Recommend(r.Context(), req.User, req.Limit, useSimilarity)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
