package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/lexrec/internal/app"
)

// PracticeAreasDependencies defines the interface for practice area lookups.
type PracticeAreasDependencies interface {
	PracticeAreas(ctx context.Context) (service.PracticeAreas, error)
	ResolvePracticeArea(ctx context.Context, input string) (service.Resolution, error)
}

// PracticeAreasHandler handles practice area requests.
type PracticeAreasHandler struct {
	deps PracticeAreasDependencies
}

// NewPracticeAreasHandler creates a new practice areas handler.
func NewPracticeAreasHandler(deps PracticeAreasDependencies) *PracticeAreasHandler {
	return &PracticeAreasHandler{deps: deps}
}

// HandleGetPracticeAreas handles GET /practice-areas requests.
func (h *PracticeAreasHandler) HandleGetPracticeAreas(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_practice_areas"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	areas, err := h.deps.PracticeAreas(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// HandleResolve handles GET /practice-areas/resolve?text=... requests.
func (h *PracticeAreasHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve_practice_area"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	res, err := h.deps.ResolvePracticeArea(r.Context(), text)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
