package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sourcegraph/conc"

	"reelgrid/internal/auth"
	"reelgrid/models"
	"reelgrid/services/metadata"
)

// Genre ids for the fixed home page shelves.
const (
	actionGenreID = 28
	comedyGenreID = 35
)

// pageCatalog is the slice of the metadata service the page bundles use.
type pageCatalog interface {
	Discover(ctx context.Context, mediaType, category string, genreID int64, page int) (*models.MediaPage, error)
	SearchMulti(ctx context.Context, query string, page int) (*models.MediaPage, error)
	MovieDetails(ctx context.Context, id int64) (*models.Title, error)
	SeriesDetails(ctx context.Context, id int64) (*models.Title, error)
	SeasonEpisodes(ctx context.Context, seriesID int64, season int) ([]models.Episode, error)
	TrendingMovies(ctx context.Context) []models.Title
	Featured(ctx context.Context) *models.Title
	Classics(ctx context.Context) []models.Title
	TopRated(ctx context.Context) []models.Title
	NowPlaying(ctx context.Context) []models.Title
	ByGenre(ctx context.Context, genreID int64) []models.Title
	Credits(ctx context.Context, mediaType string, id int64) []models.CastMember
	Recommendations(ctx context.Context, mediaType string, id int64) []models.Title
	Videos(ctx context.Context, mediaType string, id int64) []models.Video
}

var _ pageCatalog = (*metadata.Service)(nil)

// viewerService resolves the signed-in user for page bundles.
type viewerService interface {
	Me(ctx context.Context, token string) (*models.User, error)
}

// PagesHandler serves the combined JSON bundles behind each rendered page.
// Every sub-fetch is optional: a failed shelf or viewer lookup leaves its
// field empty rather than failing the page.
type PagesHandler struct {
	Catalog  pageCatalog
	Resolver streamResolver
	Accounts viewerService
}

func NewPagesHandler(catalog pageCatalog, resolver streamResolver, accounts viewerService) *PagesHandler {
	return &PagesHandler{Catalog: catalog, Resolver: resolver, Accounts: accounts}
}

// HomePage is the bundle behind GET /pages/home.
type HomePage struct {
	User        *models.User   `json:"user"`
	Featured    *models.Title  `json:"featured"`
	Trending    []models.Title `json:"trending"`
	Classics    []models.Title `json:"classics"`
	TopRated    []models.Title `json:"top_rated"`
	NewReleases []models.Title `json:"new_releases"`
	Action      []models.Title `json:"action"`
	Comedy      []models.Title `json:"comedy"`
}

// ListingPage is the bundle behind the movie and series browse pages.
type ListingPage struct {
	User      *models.User      `json:"user"`
	MediaType string            `json:"media_type"`
	Page      *models.MediaPage `json:"page"`
}

// MoviePage is the bundle behind GET /pages/movies/{id}.
type MoviePage struct {
	User            *models.User        `json:"user"`
	Movie           *models.Title       `json:"movie"`
	Cast            []models.CastMember `json:"cast"`
	Recommendations []models.Title      `json:"recommendations"`
	Trailer         *models.Video       `json:"trailer,omitempty"`
	Streams         []models.Stream     `json:"streams"`
}

// SeriesPage is the bundle behind GET /pages/series/{id}.
type SeriesPage struct {
	User            *models.User        `json:"user"`
	Series          *models.Title       `json:"series"`
	Cast            []models.CastMember `json:"cast"`
	Recommendations []models.Title      `json:"recommendations"`
	Trailer         *models.Video       `json:"trailer,omitempty"`
}

// EpisodePage is the bundle behind the episode playback page.
type EpisodePage struct {
	User     *models.User     `json:"user"`
	Series   *models.Title    `json:"series"`
	Episodes []models.Episode `json:"episodes"`
	Season   int              `json:"season"`
	Episode  int              `json:"episode"`
	Streams  []models.Stream  `json:"streams"`
}

// SearchPage is the bundle behind GET /pages/search.
type SearchPage struct {
	User    *models.User      `json:"user"`
	Query   string            `json:"query"`
	Results *models.MediaPage `json:"results"`
}

// Home serves GET /pages/home. The seven shelves are independent, so they
// are fetched concurrently.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := HomePage{}

	var wg conc.WaitGroup
	wg.Go(func() { page.User = h.viewer(ctx, r) })
	wg.Go(func() { page.Featured = h.Catalog.Featured(ctx) })
	wg.Go(func() { page.Trending = h.Catalog.TrendingMovies(ctx) })
	wg.Go(func() { page.Classics = h.Catalog.Classics(ctx) })
	wg.Go(func() { page.TopRated = h.Catalog.TopRated(ctx) })
	wg.Go(func() { page.NewReleases = h.Catalog.NowPlaying(ctx) })
	wg.Go(func() { page.Action = h.Catalog.ByGenre(ctx, actionGenreID) })
	wg.Go(func() { page.Comedy = h.Catalog.ByGenre(ctx, comedyGenreID) })
	wg.Wait()

	writeJSON(w, http.StatusOK, page)
}

// Movies serves GET /pages/movies.
func (h *PagesHandler) Movies(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, models.MediaTypeMovie)
}

// Series serves GET /pages/series.
func (h *PagesHandler) Series(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, models.MediaTypeSeries)
}

func (h *PagesHandler) listing(w http.ResponseWriter, r *http.Request, mediaType string) {
	ctx := r.Context()
	query := r.URL.Query()

	var genreID int64
	if raw := query.Get("genre"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			genreID = parsed
		}
	}

	page := ListingPage{MediaType: mediaType}
	var wg conc.WaitGroup
	wg.Go(func() { page.User = h.viewer(ctx, r) })
	wg.Go(func() {
		result, err := h.Catalog.Discover(ctx, mediaType, query.Get("category"), genreID, parsePage(r))
		if err != nil {
			log.Printf("[pages] %s listing unavailable: %v", mediaType, err)
			result = &models.MediaPage{Results: []models.Title{}, TotalPages: 1}
		}
		page.Page = result
	})
	wg.Wait()

	writeJSON(w, http.StatusOK, page)
}

// MovieDetails serves GET /pages/movies/{id}.
func (h *PagesHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid movie ID")
		return
	}
	ctx := r.Context()

	movie, err := h.Catalog.MovieDetails(ctx, id)
	if err != nil {
		log.Printf("[pages] movie %d lookup failed: %v", id, err)
	}
	if movie == nil {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}

	page := MoviePage{User: nil, Movie: movie, Streams: []models.Stream{}}
	var videos []models.Video

	var wg conc.WaitGroup
	wg.Go(func() { page.User = h.viewer(ctx, r) })
	wg.Go(func() { page.Cast = h.Catalog.Credits(ctx, models.MediaTypeMovie, id) })
	wg.Go(func() { page.Recommendations = h.Catalog.Recommendations(ctx, models.MediaTypeMovie, id) })
	wg.Go(func() { videos = h.Catalog.Videos(ctx, models.MediaTypeMovie, id) })
	wg.Go(func() {
		if streams, found := h.Resolver.MovieStreams(ctx, id); found && streams != nil {
			page.Streams = streams
		}
	})
	wg.Wait()

	page.Trailer = pickTrailer(videos)
	writeJSON(w, http.StatusOK, page)
}

// SeriesDetails serves GET /pages/series/{id}.
func (h *PagesHandler) SeriesDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid series ID")
		return
	}
	ctx := r.Context()

	series, err := h.Catalog.SeriesDetails(ctx, id)
	if err != nil {
		log.Printf("[pages] series %d lookup failed: %v", id, err)
	}
	if series == nil {
		writeError(w, http.StatusNotFound, "Series not found")
		return
	}

	page := SeriesPage{Series: series}
	var videos []models.Video

	var wg conc.WaitGroup
	wg.Go(func() { page.User = h.viewer(ctx, r) })
	wg.Go(func() { page.Cast = h.Catalog.Credits(ctx, models.MediaTypeSeries, id) })
	wg.Go(func() { page.Recommendations = h.Catalog.Recommendations(ctx, models.MediaTypeSeries, id) })
	wg.Go(func() { videos = h.Catalog.Videos(ctx, models.MediaTypeSeries, id) })
	wg.Wait()

	page.Trailer = pickTrailer(videos)
	writeJSON(w, http.StatusOK, page)
}

// Episode serves GET /pages/series/{id}/season/{season}/episode/{episode}.
func (h *PagesHandler) Episode(w http.ResponseWriter, r *http.Request) {
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
	ctx := r.Context()

	series, err := h.Catalog.SeriesDetails(ctx, id)
	if err != nil {
		log.Printf("[pages] series %d lookup failed: %v", id, err)
	}
	if series == nil {
		writeError(w, http.StatusNotFound, "Series not found")
		return
	}

	page := EpisodePage{
		Series:   series,
		Season:   season,
		Episode:  episode,
		Episodes: []models.Episode{},
		Streams:  []models.Stream{},
	}

	var wg conc.WaitGroup
	wg.Go(func() { page.User = h.viewer(ctx, r) })
	wg.Go(func() {
		episodes, err := h.Catalog.SeasonEpisodes(ctx, id, season)
		if err != nil {
			log.Printf("[pages] season %d of series %d unavailable: %v", season, id, err)
			return
		}
		page.Episodes = episodes
	})
	wg.Go(func() {
		if streams, found := h.Resolver.EpisodeStreams(ctx, id, season, episode); found && streams != nil {
			page.Streams = streams
		}
	})
	wg.Wait()

	writeJSON(w, http.StatusOK, page)
}

// Search serves GET /pages/search. An empty query is a valid page with no
// results, not an error.
func (h *PagesHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	page := SearchPage{
		Query:   query,
		Results: &models.MediaPage{Results: []models.Title{}, TotalPages: 1},
	}

	var wg conc.WaitGroup
	wg.Go(func() { page.User = h.viewer(ctx, r) })
	if query != "" {
		wg.Go(func() {
			results, err := h.Catalog.SearchMulti(ctx, query, parsePage(r))
			if err != nil {
				log.Printf("[pages] search %q unavailable: %v", query, err)
				return
			}
			page.Results = results
		})
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, page)
}

// viewer resolves the signed-in user from the session token, if any. Lookup
// failure renders the page signed out rather than failing it.
func (h *PagesHandler) viewer(ctx context.Context, r *http.Request) *models.User {
	token := auth.GetToken(r)
	if token == "" {
		return nil
	}
	user, err := h.Accounts.Me(ctx, token)
	if err != nil {
		log.Printf("[pages] viewer lookup failed: %v", err)
		return nil
	}
	return user
}

// pickTrailer selects the video to feature: the first YouTube trailer, then
// any YouTube video, then nothing.
func pickTrailer(videos []models.Video) *models.Video {
	var fallback *models.Video
	for i := range videos {
		if videos[i].Site != "YouTube" {
			continue
		}
		if videos[i].Type == "Trailer" {
			return &videos[i]
		}
		if fallback == nil {
			fallback = &videos[i]
		}
	}
	return fallback
}
