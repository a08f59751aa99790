package metadata

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"reelgrid/models"
)

// maxPageDepth is the deepest page the catalog API will serve. Requests
// beyond it return empty result sets, so total_pages is clamped before it
// reaches a client.
const maxPageDepth = 500

// Shelf sizes for the home page sections.
const (
	trendingShelfSize  = 10
	featuredPoolSize   = 5
	browseShelfSize    = 8
	castListSize       = 10
	recommendationSize = 6
)

// classicsGenreID is the science-fiction genre used for the classics shelf.
const classicsGenreID = 878

type Service struct {
	tmdb *tmdbClient
}

func NewService(baseURL, apiKey, language string, client *http.Client) *Service {
	return &Service{
		tmdb: newTMDBClient(baseURL, apiKey, language, client),
	}
}

// Discover lists titles for a browse page. Category picks the upstream
// listing (top, new, trending, retro); anything else falls through to the
// generic discover endpoint sorted by popularity. A genre filter always
// routes through discover because the curated listings cannot be narrowed.
func (s *Service) Discover(ctx context.Context, mediaType, category string, genreID int64, page int) (*models.MediaPage, error) {
	kind := normalizeMediaType(mediaType)
	if page < 1 {
		page = 1
	}

	endpoint, params := discoverEndpoint(kind, category, genreID)
	params.Set("page", strconv.Itoa(page))

	var payload tmdbPage
	ok, err := s.tmdb.get(ctx, endpoint, params, &payload)
	if err != nil {
		return nil, fmt.Errorf("discover %s/%s: %w", kind, category, err)
	}
	if !ok {
		return &models.MediaPage{Results: []models.Title{}, TotalPages: 1}, nil
	}

	return s.buildPage(payload, kind), nil
}

func discoverEndpoint(kind, category string, genreID int64) (string, url.Values) {
	params := url.Values{}
	path := tmdbKindPath(kind)

	if genreID > 0 {
		params.Set("with_genres", strconv.FormatInt(genreID, 10))
		params.Set("sort_by", "popularity.desc")
		return fmt.Sprintf("/discover/%s", path), params
	}

	switch category {
	case "top":
		return fmt.Sprintf("/%s/top_rated", path), params
	case "new":
		if kind == models.MediaTypeSeries {
			return "/tv/on_the_air", params
		}
		return "/movie/now_playing", params
	case "trending":
		return fmt.Sprintf("/trending/%s/week", path), params
	case "retro":
		if kind == models.MediaTypeMovie {
			params.Set("primary_release_date.lte", "2000-01-01")
			params.Set("sort_by", "vote_average.desc")
			params.Set("vote_count.gte", "500")
			return "/discover/movie", params
		}
	}

	params.Set("sort_by", "popularity.desc")
	return fmt.Sprintf("/discover/%s", path), params
}

// SearchMulti queries the mixed search endpoint and keeps movie and series
// results only; people and other entity types are dropped.
func (s *Service) SearchMulti(ctx context.Context, query string, page int) (*models.MediaPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var payload tmdbPage
	ok, err := s.tmdb.get(ctx, "/search/multi", params, &payload)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if !ok {
		return &models.MediaPage{Results: []models.Title{}, TotalPages: 1}, nil
	}

	results := make([]models.Title, 0, len(payload.Results))
	for _, raw := range payload.Results {
		switch raw.MediaType {
		case "movie":
			results = append(results, mapTitle(raw, models.MediaTypeMovie))
		case "tv":
			results = append(results, mapTitle(raw, models.MediaTypeSeries))
		}
	}

	return &models.MediaPage{
		Results:    results,
		TotalPages: clampPages(payload.TotalPages),
	}, nil
}

// MovieDetails fetches a single movie. A missing title is reported as a nil
// result, not an error.
func (s *Service) MovieDetails(ctx context.Context, id int64) (*models.Title, error) {
	var payload tmdbTitle
	ok, err := s.tmdb.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("movie details %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	title := mapTitle(payload, models.MediaTypeMovie)
	return &title, nil
}

// SeriesDetails fetches a single series. External IDs ride along in the same
// request so the IMDb id is available without a second round trip.
func (s *Service) SeriesDetails(ctx context.Context, id int64) (*models.Title, error) {
	params := url.Values{}
	params.Set("append_to_response", "external_ids")

	var payload tmdbTitle
	ok, err := s.tmdb.get(ctx, fmt.Sprintf("/tv/%d", id), params, &payload)
	if err != nil {
		return nil, fmt.Errorf("series details %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	title := mapTitle(payload, models.MediaTypeSeries)
	return &title, nil
}

// SeasonEpisodes lists the episodes of one season of a series.
func (s *Service) SeasonEpisodes(ctx context.Context, seriesID int64, season int) ([]models.Episode, error) {
	var payload tmdbSeasonDetails
	ok, err := s.tmdb.get(ctx, fmt.Sprintf("/tv/%d/season/%d", seriesID, season), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("season %d of series %d: %w", season, seriesID, err)
	}
	if !ok {
		return []models.Episode{}, nil
	}

	episodes := make([]models.Episode, 0, len(payload.Episodes))
	for _, raw := range payload.Episodes {
		episodes = append(episodes, mapEpisode(raw))
	}
	return episodes, nil
}

// TrendingMovies returns the hero shelf for the home page.
func (s *Service) TrendingMovies(ctx context.Context) []models.Title {
	return s.shelf(ctx, "/trending/movie/day", nil, models.MediaTypeMovie, trendingShelfSize)
}

// Featured picks one movie at random from the head of the popular listing so
// the hero banner rotates between visits.
func (s *Service) Featured(ctx context.Context) *models.Title {
	pool := s.shelf(ctx, "/movie/popular", nil, models.MediaTypeMovie, featuredPoolSize)
	if len(pool) == 0 {
		return nil
	}
	pick := pool[rand.Intn(len(pool))]
	return &pick
}

// Classics lists well-voted science fiction released before the millennium.
func (s *Service) Classics(ctx context.Context) []models.Title {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(classicsGenreID))
	params.Set("primary_release_date.lte", "2000-01-01")
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", "500")
	return s.shelf(ctx, "/discover/movie", params, models.MediaTypeMovie, browseShelfSize)
}

func (s *Service) TopRated(ctx context.Context) []models.Title {
	return s.shelf(ctx, "/movie/top_rated", nil, models.MediaTypeMovie, browseShelfSize)
}

func (s *Service) NowPlaying(ctx context.Context) []models.Title {
	return s.shelf(ctx, "/movie/now_playing", nil, models.MediaTypeMovie, browseShelfSize)
}

func (s *Service) ByGenre(ctx context.Context, genreID int64) []models.Title {
	params := url.Values{}
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("sort_by", "popularity.desc")
	return s.shelf(ctx, "/discover/movie", params, models.MediaTypeMovie, browseShelfSize)
}

// Credits returns the top-billed cast for a title.
func (s *Service) Credits(ctx context.Context, mediaType string, id int64) []models.CastMember {
	kind := normalizeMediaType(mediaType)
	endpoint := fmt.Sprintf("/%s/%d/credits", tmdbKindPath(kind), id)

	var payload tmdbCredits
	ok, err := s.tmdb.get(ctx, endpoint, nil, &payload)
	if err != nil {
		log.Printf("[metadata] credits for %s %d unavailable: %v", kind, id, err)
		return nil
	}
	if !ok {
		return nil
	}

	cast := payload.Cast
	if len(cast) > castListSize {
		cast = cast[:castListSize]
	}
	members := make([]models.CastMember, 0, len(cast))
	for _, raw := range cast {
		members = append(members, models.CastMember{
			Name:        raw.Name,
			Character:   raw.Character,
			ProfilePath: buildImageURL(raw.ProfilePath, tmdbProfileSize),
		})
	}
	return members
}

// Recommendations returns a short list of related titles.
func (s *Service) Recommendations(ctx context.Context, mediaType string, id int64) []models.Title {
	kind := normalizeMediaType(mediaType)
	endpoint := fmt.Sprintf("/%s/%d/recommendations", tmdbKindPath(kind), id)
	return s.shelf(ctx, endpoint, nil, kind, recommendationSize)
}

// Videos returns the trailers and clips published for a title.
func (s *Service) Videos(ctx context.Context, mediaType string, id int64) []models.Video {
	kind := normalizeMediaType(mediaType)
	endpoint := fmt.Sprintf("/%s/%d/videos", tmdbKindPath(kind), id)

	var payload tmdbVideos
	ok, err := s.tmdb.get(ctx, endpoint, nil, &payload)
	if err != nil {
		log.Printf("[metadata] videos for %s %d unavailable: %v", kind, id, err)
		return nil
	}
	if !ok {
		return nil
	}
	return payload.Results
}

// shelf fetches one listing page and maps up to limit titles. Shelves are
// decorative, so upstream failure degrades to an empty shelf instead of
// surfacing an error.
func (s *Service) shelf(ctx context.Context, endpoint string, params url.Values, kind string, limit int) []models.Title {
	var payload tmdbPage
	ok, err := s.tmdb.get(ctx, endpoint, params, &payload)
	if err != nil {
		log.Printf("[metadata] shelf %s unavailable: %v", endpoint, err)
		return nil
	}
	if !ok {
		return nil
	}

	raw := payload.Results
	if len(raw) > limit {
		raw = raw[:limit]
	}
	titles := make([]models.Title, 0, len(raw))
	for _, item := range raw {
		titles = append(titles, mapTitle(item, kind))
	}
	return titles
}

func (s *Service) buildPage(payload tmdbPage, kind string) *models.MediaPage {
	results := make([]models.Title, 0, len(payload.Results))
	for _, raw := range payload.Results {
		results = append(results, mapTitle(raw, kind))
	}
	return &models.MediaPage{
		Results:    results,
		TotalPages: clampPages(payload.TotalPages),
	}
}

func clampPages(totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if totalPages > maxPageDepth {
		return maxPageDepth
	}
	return totalPages
}
