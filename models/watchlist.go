package models

// WatchlistItem is a watchlist entry owned by the account backend. ID is
// the backend-assigned identifier; TMDBID plus MediaType reference the
// catalog title.
type WatchlistItem struct {
	ID           string  `json:"id"`
	TMDBID       int64   `json:"tmdb_id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	AddedAt      string  `json:"added_at,omitempty"`
}

// WatchlistAdd is the payload for adding a title to the watchlist.
type WatchlistAdd struct {
	MediaID   int64  `json:"media_id"`
	MediaType string `json:"media_type"`
}

// WatchlistPage is one page of a user's watchlist.
type WatchlistPage struct {
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Watchlist    []WatchlistItem `json:"watchlist"`
}
