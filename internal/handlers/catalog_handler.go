package handlers

import (
	"net/http"

	"mindcoach/internal/catalog"
)

// CatalogHandler serves the read-only content catalog
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// List returns one section of the catalog: personas, archetypes, quiz, exercises or goals
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")

	var payload any
	switch kind {
	case "personas":
		payload = h.catalog.Personas
	case "archetypes":
		payload = h.catalog.Archetypes
	case "quiz":
		payload = h.catalog.QuizItems
	case "exercises":
		payload = h.catalog.Exercises
	case "goals":
		payload = h.catalog.Goals
	default:
		respondWithError(w, http.StatusNotFound, "unknown catalog section "+kind, "", nil)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	respondWithJSON(w, http.StatusOK, payload)
}
