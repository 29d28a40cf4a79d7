package api

import (
	"context"
	"net/http"

	"github.com/okian/lexrec/internal/domain/model"
)

// TrendingDependencies defines the interface for trending operations.
type TrendingDependencies interface {
	Trending(ctx context.Context, limit int) ([]model.ContentItem, error)
}

// TrendingHandler handles trending requests.
type TrendingHandler struct {
	deps TrendingDependencies
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(deps TrendingDependencies) *TrendingHandler {
	return &TrendingHandler{deps: deps}
}

type trendingResponse struct {
	BlogPosts []model.ContentItem `json:"blog_posts"`
	Count     int                 `json:"count"`
}

// HandleGetTrending handles GET /trending?limit=N requests.
func (h *TrendingHandler) HandleGetTrending(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trending"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, err))
		return
	}
	items, err := h.deps.Trending(r.Context(), n)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, trendingResponse{BlogPosts: items, Count: len(items)})
}
