package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelgrid/models"
)

const (
	tmdbDefaultBaseURL = "https://api.themoviedb.org/3"
	tmdbImageBaseURL   = "https://image.tmdb.org/t/p"

	tmdbPosterSize   = "w500"
	tmdbBackdropSize = "original"
	tmdbStillSize    = "w500"
	tmdbProfileSize  = "w200"
)

// tmdbClient is a thin client for the TMDB-style catalog API. The API key
// travels as a query parameter on every request.
type tmdbClient struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

func newTMDBClient(baseURL, apiKey, language string, client *http.Client) *tmdbClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = tmdbDefaultBaseURL
	}
	return &tmdbClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		language:   normalizeLanguage(language),
		httpClient: client,
	}
}

// get fetches endpoint and decodes the JSON body into out. A non-success
// upstream status is an absence, not an error: get logs it and reports
// ok=false with a nil error. Transport and decode failures return an error;
// callers treat those as absence too after logging.
func (c *tmdbClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) (bool, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("catalog request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		log.Printf("[metadata] catalog %s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode catalog response %s: %w", endpoint, err)
	}
	return true, nil
}

// tmdbExternalIDs is the nested external-identifiers block returned with
// append_to_response=external_ids.
type tmdbExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

type tmdbSeason struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"air_date"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
}

type tmdbTitle struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Name           string           `json:"name"`
	Overview       string           `json:"overview"`
	PosterPath     string           `json:"poster_path"`
	BackdropPath   string           `json:"backdrop_path"`
	ReleaseDate    string           `json:"release_date"`
	FirstAirDate   string           `json:"first_air_date"`
	VoteAverage    float64          `json:"vote_average"`
	MediaType      string           `json:"media_type"`
	IMDBID         string           `json:"imdb_id"`
	ExternalIDs    *tmdbExternalIDs `json:"external_ids"`
	Genres         []models.Genre   `json:"genres"`
	Seasons        []tmdbSeason     `json:"seasons"`
	Status         string           `json:"status"`
	Tagline        string           `json:"tagline"`
	Runtime        int              `json:"runtime"`
	EpisodeRunTime []int            `json:"episode_run_time"`
	Budget         int64            `json:"budget"`
	Revenue        int64            `json:"revenue"`
	ProductionCos  []models.Company `json:"production_companies"`
	Networks       []models.Company `json:"networks"`
}

type tmdbPage struct {
	Page         int         `json:"page"`
	Results      []tmdbTitle `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbEpisode struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	StillPath     string  `json:"still_path"`
	AirDate       string  `json:"air_date"`
	VoteAverage   float64 `json:"vote_average"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
}

type tmdbSeasonDetails struct {
	Episodes []tmdbEpisode `json:"episodes"`
}

type tmdbCastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type tmdbCredits struct {
	Cast []tmdbCastMember `json:"cast"`
}

type tmdbVideos struct {
	Results []models.Video `json:"results"`
}

// buildImageURL turns a raw catalog image path into a full CDN URL.
// Missing paths normalize to an empty string, never an omitted field.
func buildImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", tmdbImageBaseURL, size, path)
}

// canonicalIMDBID applies the preference rule for the cross-service join
// key: top-level imdb_id first, then the nested external_ids block, else
// absent. Absence must stay absent so callers can skip stream resolution.
func canonicalIMDBID(t tmdbTitle) string {
	if t.IMDBID != "" {
		return t.IMDBID
	}
	if t.ExternalIDs != nil {
		return t.ExternalIDs.IMDBID
	}
	return ""
}

// mapTitle converts an upstream title payload into the normalized shape.
// kind overrides the upstream media_type when the caller already knows it
// (detail and kind-scoped discovery endpoints omit media_type).
func mapTitle(t tmdbTitle, kind string) models.Title {
	name := t.Title
	if name == "" {
		name = t.Name
	}
	release := t.ReleaseDate
	if release == "" {
		release = t.FirstAirDate
	}

	mediaType := kind
	if mediaType == "" {
		mediaType = normalizeMediaType(t.MediaType)
	}

	runtime := t.Runtime
	if runtime == 0 && len(t.EpisodeRunTime) > 0 {
		runtime = t.EpisodeRunTime[0]
	}

	genres := t.Genres
	if genres == nil {
		genres = []models.Genre{}
	}

	title := models.Title{
		ID:                  t.ID,
		Title:               name,
		Overview:            t.Overview,
		PosterPath:          buildImageURL(t.PosterPath, tmdbPosterSize),
		BackdropPath:        buildImageURL(t.BackdropPath, tmdbBackdropSize),
		ReleaseDate:         release,
		VoteAverage:         t.VoteAverage,
		Genres:              genres,
		MediaType:           mediaType,
		IMDBID:              canonicalIMDBID(t),
		Status:              t.Status,
		Tagline:             t.Tagline,
		Runtime:             runtime,
		Budget:              t.Budget,
		Revenue:             t.Revenue,
		ProductionCompanies: t.ProductionCos,
		Networks:            t.Networks,
	}

	if len(t.Seasons) > 0 {
		seasons := make([]models.Season, 0, len(t.Seasons))
		for _, s := range t.Seasons {
			// Season 0 is the "Specials" bucket; drop it everywhere.
			if s.SeasonNumber <= 0 {
				continue
			}
			seasons = append(seasons, models.Season{
				ID:           s.ID,
				Name:         s.Name,
				Overview:     s.Overview,
				PosterPath:   buildImageURL(s.PosterPath, tmdbPosterSize),
				AirDate:      s.AirDate,
				SeasonNumber: s.SeasonNumber,
				EpisodeCount: s.EpisodeCount,
			})
		}
		title.Seasons = seasons
	}

	return title
}

func mapEpisode(e tmdbEpisode) models.Episode {
	return models.Episode{
		ID:            e.ID,
		Name:          e.Name,
		Overview:      e.Overview,
		StillPath:     buildImageURL(e.StillPath, tmdbStillSize),
		AirDate:       e.AirDate,
		VoteAverage:   e.VoteAverage,
		EpisodeNumber: e.EpisodeNumber,
		SeasonNumber:  e.SeasonNumber,
	}
}

// normalizeMediaType maps upstream media kinds to the internal set.
func normalizeMediaType(mediaType string) string {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "tv", "series", "show":
		return models.MediaTypeSeries
	case "movie", "film":
		return models.MediaTypeMovie
	default:
		return models.MediaTypeMovie
	}
}

// tmdbKindPath returns the catalog URL segment for an internal media kind.
func tmdbKindPath(mediaType string) string {
	if mediaType == models.MediaTypeSeries {
		return "tv"
	}
	return "movie"
}

func normalizeLanguage(language string) string {
	language = strings.TrimSpace(strings.ReplaceAll(language, "_", "-"))
	if language == "" {
		return "en-US"
	}
	parts := strings.SplitN(language, "-", 2)
	code := strings.ToLower(parts[0])
	if len(parts) == 2 {
		return code + "-" + strings.ToUpper(parts[1])
	}
	return code + "-US"
}
