package models

// Stream is a single playable source option, passed through verbatim from
// the streaming-source service. No ranking or validation is applied.
type Stream struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Size    string `json:"size,omitempty"`
}

// StreamsResponse wraps stream candidates for API responses. An empty
// Streams slice is a valid outcome, not an error.
type StreamsResponse struct {
	Streams []Stream `json:"streams"`
}
