package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelgrid/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client())
}

func TestLoginStoresNothingLocally(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		json.NewEncoder(w).Encode(models.AuthResponse{
			Message: "ok",
			User:    models.User{ID: 7, Username: "alice"},
			Session: &models.UserSession{AccessToken: "token-123"},
		})
	})

	resp, err := client.Login(context.Background(), models.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "token-123", resp.Session.AccessToken)
	assert.Equal(t, int64(7), resp.User.ID)
}

func TestRequestErrorCarriesUpstreamVerdict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	_, err := client.Login(context.Background(), models.Credentials{Username: "alice", Password: "wrong"})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Equal(t, "invalid credentials", reqErr.Message)
}

func TestRequestErrorFallsBackToRawBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	err := client.UpdateHistory(context.Background(), "tok", models.HistoryUpdate{MediaID: 1, MediaType: "movie"})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "upstream exploded\n", reqErr.Message)
}

func TestBearerTokenAttachedToAuthenticatedCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-42", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.User{ID: 42, Username: "bob"})
	})

	user, err := client.Me(context.Background(), "tok-42")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestWatchlistPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/watchlist", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(models.WatchlistPage{
			Page:       3,
			TotalPages: 5,
			Watchlist:  []models.WatchlistItem{{ID: "w1", TMDBID: 550, MediaType: "movie"}},
		})
	})

	list, err := client.Watchlist(context.Background(), "tok", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Page)
	require.Len(t, list.Watchlist, 1)
	assert.Equal(t, "w1", list.Watchlist[0].ID)
}

func TestWatchlistPageDefaultsToOne(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(models.WatchlistPage{Page: 1, TotalPages: 1})
	})

	_, err := client.Watchlist(context.Background(), "tok", 0)
	require.NoError(t, err)
}

func TestRemoveFromWatchlistEscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/watchlist/item%2Fwith-slash", r.URL.RawPath)
		w.WriteHeader(http.StatusOK)
	})

	err := client.RemoveFromWatchlist(context.Background(), "tok", "item/with-slash")
	require.NoError(t, err)
}

func TestHistoryItemPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history/movie/550", r.URL.Path)
		json.NewEncoder(w).Encode(models.HistoryItem{MediaID: 550, MediaType: "movie", Progress: 1200, Duration: 8400})
	})

	item, err := client.HistoryItem(context.Background(), "tok", "movie", 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), item.MediaID)
	assert.InDelta(t, 1200, item.Progress, 0.01)
}

func TestLogoutIsFireAndForget(t *testing.T) {
	var called bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Logout(context.Background(), "tok"))
	assert.True(t, called)
}
