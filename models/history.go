package models

// HistoryItem is a watch-history entry owned by the account backend.
// Progress and Duration are seconds; Season/Episode are set for series
// playback only.
type HistoryItem struct {
	MediaID       int64   `json:"media_id"`
	MediaType     string  `json:"media_type"`
	Progress      float64 `json:"progress"`
	Duration      float64 `json:"duration"`
	Season        int     `json:"season,omitempty"`
	Episode       int     `json:"episode,omitempty"`
	LastWatchedAt string  `json:"last_watched_at,omitempty"`
}

// HistoryUpdate is the upsert payload relayed to the account backend.
type HistoryUpdate struct {
	MediaID   int64   `json:"media_id"`
	MediaType string  `json:"media_type"`
	Progress  float64 `json:"progress"`
	Duration  float64 `json:"duration"`
	Season    int     `json:"season,omitempty"`
	Episode   int     `json:"episode,omitempty"`
}

// HistoryPage is one page of a user's watch history.
type HistoryPage struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	History      []HistoryItem `json:"history"`
}
