package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"reelgrid/internal/auth"
	"reelgrid/models"
	"reelgrid/services/account"
)

type watchlistService interface {
	Watchlist(ctx context.Context, token string, page int) (*models.WatchlistPage, error)
	AddToWatchlist(ctx context.Context, token string, item models.WatchlistAdd) error
	RemoveFromWatchlist(ctx context.Context, token, itemID string) error
}

var _ watchlistService = (*account.Client)(nil)

// WatchlistHandler proxies watchlist reads and writes to the account
// service. All routes are session-gated by middleware.
type WatchlistHandler struct {
	Accounts watchlistService
}

func NewWatchlistHandler(accounts watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Accounts: accounts}
}

// List serves GET /api/watchlist.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Accounts.Watchlist(r.Context(), auth.GetToken(r), parsePage(r))
	if err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Add serves POST /api/watchlist.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item models.WatchlistAdd
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.MediaID <= 0 || item.MediaType == "" {
		writeError(w, http.StatusBadRequest, "media_id and media_type are required")
		return
	}

	if err := h.Accounts.AddToWatchlist(r.Context(), auth.GetToken(r), item); err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "added to watchlist"})
}

// Remove serves DELETE /api/watchlist/{itemID}. The id is the backend's
// own identifier for the saved entry, as returned by List.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemID"]
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	if err := h.Accounts.RemoveFromWatchlist(r.Context(), auth.GetToken(r), itemID); err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "removed from watchlist"})
}
