package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelgrid/internal/auth"
	"reelgrid/models"
	"reelgrid/services/account"
)

type historyService interface {
	History(ctx context.Context, token string, page int) (*models.HistoryPage, error)
	HistoryItem(ctx context.Context, token, mediaType string, mediaID int64) (*models.HistoryItem, error)
	UpdateHistory(ctx context.Context, token string, update models.HistoryUpdate) error
}

var _ historyService = (*account.Client)(nil)

// HistoryHandler proxies watch-history reads and progress updates to the
// account service. All routes are session-gated by middleware.
type HistoryHandler struct {
	Accounts historyService
}

func NewHistoryHandler(accounts historyService) *HistoryHandler {
	return &HistoryHandler{Accounts: accounts}
}

// List serves GET /api/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	history, err := h.Accounts.History(r.Context(), auth.GetToken(r), page)
	if err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Item serves GET /api/history/{mediaID}. The media type defaults to movie
// unless the type query parameter says otherwise.
func (h *HistoryHandler) Item(w http.ResponseWriter, r *http.Request) {
	mediaID, err := strconv.ParseInt(mux.Vars(r)["mediaID"], 10, 64)
	if err != nil || mediaID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}

	item, err := h.Accounts.HistoryItem(r.Context(), auth.GetToken(r), mediaType, mediaID)
	if err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update serves POST /api/history.
func (h *HistoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.HistoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.MediaID <= 0 || update.MediaType == "" {
		writeError(w, http.StatusBadRequest, "media_id and media_type are required")
		return
	}

	if err := h.Accounts.UpdateHistory(r.Context(), auth.GetToken(r), update); err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "history updated"})
}

func parsePage(r *http.Request) int {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return page
}
