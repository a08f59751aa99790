package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"reelgrid/models"
)

// maxErrorBodySize limits how much of an upstream error body is read when
// building a RequestError.
const maxErrorBodySize = 4096

// RequestError carries the upstream status code alongside the message so
// handlers can mirror the account service's verdict instead of collapsing
// everything into a 502.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("account service returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the external account service. It holds no user state; the
// caller supplies the bearer token on every authenticated call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: client}
}

// Register creates an account and returns the signed-in session.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the session upstream. Callers clear the local cookie
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Me returns the profile behind a session token.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Watchlist returns one page of the user's saved titles.
func (c *Client) Watchlist(ctx context.Context, token string, page int) (*models.WatchlistPage, error) {
	if page < 1 {
		page = 1
	}
	var list models.WatchlistPage
	endpoint := "/watchlist?page=" + strconv.Itoa(page)
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddToWatchlist saves a title for the user.
func (c *Client) AddToWatchlist(ctx context.Context, token string, item models.WatchlistAdd) error {
	return c.do(ctx, http.MethodPost, "/watchlist", token, item, nil)
}

// RemoveFromWatchlist deletes a saved title by its backend-assigned id.
func (c *Client) RemoveFromWatchlist(ctx context.Context, token, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/watchlist/"+url.PathEscape(itemID), token, nil, nil)
}

// History returns one page of the user's watch history.
func (c *Client) History(ctx context.Context, token string, page int) (*models.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	var history models.HistoryPage
	endpoint := "/history?page=" + strconv.Itoa(page)
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// HistoryItem returns the stored progress for a single title, or a
// RequestError with status 404 when the user has no record for it.
func (c *Client) HistoryItem(ctx context.Context, token, mediaType string, mediaID int64) (*models.HistoryItem, error) {
	var item models.HistoryItem
	endpoint := fmt.Sprintf("/history/%s/%d", url.PathEscape(mediaType), mediaID)
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateHistory records playback progress for a title.
func (c *Client) UpdateHistory(ctx context.Context, token string, update models.HistoryUpdate) error {
	return c.do(ctx, http.MethodPost, "/history", token, update, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("account service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts the message from an upstream error body. The
// account service wraps errors as {"error": "..."}; anything else is passed
// through as raw text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}
	var wrapped struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Error != "" {
		return wrapped.Error
	}
	return string(raw)
}
