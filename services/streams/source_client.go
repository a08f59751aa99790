package streams

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
	"reelgrid/utils"
)

// sourceClient queries the stream aggregation service. The service keys
// everything on IMDb ids; titles without one cannot be resolved.
type sourceClient struct {
	baseURL    string
	httpClient *http.Client
}

func newSourceClient(baseURL string, client *http.Client) *sourceClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &sourceClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

func (c *sourceClient) movieStreams(ctx context.Context, imdbID string) ([]models.Stream, error) {
	endpoint := fmt.Sprintf("%s/movies/%s", c.baseURL, url.PathEscape(imdbID))
	return c.fetch(ctx, endpoint)
}

func (c *sourceClient) episodeStreams(ctx context.Context, imdbID string, season, episode int) ([]models.Stream, error) {
	endpoint := fmt.Sprintf("%s/series/%s/%d/%d", c.baseURL, url.PathEscape(imdbID), season, episode)
	return c.fetch(ctx, endpoint)
}

func (c *sourceClient) fetch(ctx context.Context, endpoint string) ([]models.Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("stream source returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stream response: %w", err)
	}

	candidates, err := decodeStreams(raw)
	if err != nil {
		return nil, err
	}

	streams := make([]models.Stream, 0, len(candidates))
	for _, candidate := range candidates {
		streamURL := strings.TrimSpace(candidate.URL)
		if streamURL == "" {
			continue
		}
		normalized, err := utils.NormalizeStreamURL(streamURL)
		if err != nil {
			log.Printf("[streams] skipping stream candidate: %v", err)
			continue
		}
		candidate.URL = normalized
		streams = append(streams, candidate)
	}
	return streams, nil
}

// decodeStreams accepts both response shapes the source has been seen to
// emit: an object wrapping a streams array, and a bare array.
func decodeStreams(raw []byte) ([]models.Stream, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var bare []models.Stream
		if err := json.Unmarshal(raw, &bare); err != nil {
			return nil, fmt.Errorf("decode stream response: %w", err)
		}
		return bare, nil
	}
	var wrapped models.StreamsResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode stream response: %w", err)
	}
	return wrapped.Streams, nil
}
