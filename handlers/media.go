package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelgrid/models"
	"reelgrid/services/metadata"
)

// catalogService is the slice of the metadata service the media endpoints
// use.
type catalogService interface {
	Discover(ctx context.Context, mediaType, category string, genreID int64, page int) (*models.MediaPage, error)
	SeasonEpisodes(ctx context.Context, seriesID int64, season int) ([]models.Episode, error)
}

var _ catalogService = (*metadata.Service)(nil)

type MediaHandler struct {
	Catalog catalogService
}

func NewMediaHandler(catalog catalogService) *MediaHandler {
	return &MediaHandler{Catalog: catalog}
}

// Discover serves GET /api/media. The type parameter is required; category,
// genre and page narrow the listing.
func (h *MediaHandler) Discover(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mediaType := query.Get("type")
	if mediaType == "" {
		writeError(w, http.StatusBadRequest, "Missing type parameter")
		return
	}
	switch mediaType {
	case "movie", "tv", "series":
	default:
		writeError(w, http.StatusBadRequest, "Invalid type parameter")
		return
	}

	page := 1
	if raw := query.Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	var genreID int64
	if raw := query.Get("genre"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			genreID = parsed
		}
	}

	result, err := h.Catalog.Discover(r.Context(), mediaType, query.Get("category"), genreID, page)
	if err != nil {
		log.Printf("[media] discover failed: %v", err)
		writeJSON(w, http.StatusOK, models.MediaPage{Results: []models.Title{}, TotalPages: 1})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SeasonEpisodes serves GET /api/series/{id}/season/{season}.
func (h *MediaHandler) SeasonEpisodes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"episodes": []models.Episode{}})
		return
	}
	season, err := strconv.Atoi(vars["season"])
	if err != nil || season <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"episodes": []models.Episode{}})
		return
	}

	episodes, err := h.Catalog.SeasonEpisodes(r.Context(), id, season)
	if err != nil {
		log.Printf("[media] season episodes failed: %v", err)
		episodes = []models.Episode{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"episodes": episodes})
}
