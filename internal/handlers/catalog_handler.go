package handlers

import (
	"net/http"

	"atelier/internal/catalog"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type CatalogHandler struct {
	catalog *catalog.Service
	locale  string
	logger  zerolog.Logger
}

func NewCatalogHandler(svc *catalog.Service, locale string, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		locale:  locale,
		logger:  logger,
	}
}

// GetCollection resolves a slug to a collection and its products. A
// miss on both is still a 200: "collection not found" is a displayable
// state the page renders, not a failure.
func (h *CatalogHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	resolved, err := h.catalog.Resolve(r.Context(), slug)
	if err != nil {
		h.logger.Error().Err(err).Str("slug", slug).Msg("Catalog resolution failed")
		respondUpstreamError(w, err, h.locale)
		return
	}

	respondWithJSON(w, http.StatusOK, resolved)
}
