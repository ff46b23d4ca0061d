package http

import (
	"net/http"

	"github.com/archetype-studio/archetype/internal/catalog"
)

// CatalogHandler serves the static questionnaire catalog consumed by the
// public wizard pages.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/catalog", h.handleGet)
}

func (h *CatalogHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions":          catalog.Questions,
		"inspirations":       catalog.Inspirations,
		"suggested_features": catalog.SuggestedFeatures,
		"skeletons":          catalog.Skeletons,
	})
}
