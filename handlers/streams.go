package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelgrid/models"
	"reelgrid/services/streams"
)

type streamResolver interface {
	MovieStreams(ctx context.Context, id int64) ([]models.Stream, bool)
	EpisodeStreams(ctx context.Context, id int64, season, episode int) ([]models.Stream, bool)
}

var _ streamResolver = (*streams.Resolver)(nil)

type StreamsHandler struct {
	Resolver streamResolver
}

func NewStreamsHandler(resolver streamResolver) *StreamsHandler {
	return &StreamsHandler{Resolver: resolver}
}

// MovieStreams serves GET /api/streams/movie/{id}. A title the catalog does
// not know, or one without an IMDb id, is a 404; a stream-source failure
// still answers 200 with an empty list.
func (h *StreamsHandler) MovieStreams(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	candidates, found := h.Resolver.MovieStreams(r.Context(), id)
	if !found {
		writeError(w, http.StatusNotFound, "Movie not found or missing IMDb ID")
		return
	}
	if candidates == nil {
		candidates = []models.Stream{}
	}
	writeJSON(w, http.StatusOK, models.StreamsResponse{Streams: candidates})
}

// EpisodeStreams serves GET /api/streams/series/{id}/{season}/{episode}.
func (h *StreamsHandler) EpisodeStreams(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid series ID")
		return
	}
	season, err := strconv.Atoi(vars["season"])
	if err != nil || season <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid season number")
		return
	}
	episode, err := strconv.Atoi(vars["episode"])
	if err != nil || episode <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid episode number")
		return
	}

	candidates, found := h.Resolver.EpisodeStreams(r.Context(), id, season, episode)
	if !found {
		writeError(w, http.StatusNotFound, "Series not found or missing IMDb ID")
		return
	}
	if candidates == nil {
		candidates = []models.Stream{}
	}
	writeJSON(w, http.StatusOK, models.StreamsResponse{Streams: candidates})
}
