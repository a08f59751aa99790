package models

// Genre is a catalog genre reference.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Company represents a production company or broadcast network.
type Company struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// Season is one season of a series. Season 0 ("Specials") is filtered out
// before a Title ever leaves the metadata gateway.
type Season struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"air_date"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
}

// Episode is one episode of a series season.
type Episode struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	StillPath     string  `json:"still_path"`
	AirDate       string  `json:"air_date"`
	VoteAverage   float64 `json:"vote_average"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
}

// Title is the normalized shape for both movies and series.
//
// IMDBID is the canonical external identifier used as the join key for
// stream resolution. It is deliberately omitted when unknown so that
// callers can distinguish "unknown" from "known empty"; every image path
// is normalized to an empty string instead.
type Title struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []Genre `json:"genres"`
	MediaType    string  `json:"media_type,omitempty"` // "movie" | "series"
	IMDBID       string  `json:"imdb_id,omitempty"`

	Seasons []Season `json:"seasons,omitempty"`

	// Extended details, present on detail lookups only.
	Status              string    `json:"status,omitempty"`
	Tagline             string    `json:"tagline,omitempty"`
	Runtime             int       `json:"runtime,omitempty"`
	Budget              int64     `json:"budget,omitempty"`
	Revenue             int64     `json:"revenue,omitempty"`
	ProductionCompanies []Company `json:"production_companies,omitempty"`
	Networks            []Company `json:"networks,omitempty"`
}

// MediaPage is one page of discovery or search results.
type MediaPage struct {
	Results    []Title `json:"results"`
	TotalPages int     `json:"total_pages"`
}

// CastMember is a single credited cast entry.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Video is a raw catalog video entry (trailers, teasers, clips).
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)
