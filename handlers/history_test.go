package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelgrid/internal/auth"
	"reelgrid/models"
	"reelgrid/services/account"
)

type stubHistory struct {
	page    *models.HistoryPage
	item    *models.HistoryItem
	updated *models.HistoryUpdate
	token   string
	err     error
}

func (s *stubHistory) History(ctx context.Context, token string, page int) (*models.HistoryPage, error) {
	s.token = token
	return s.page, s.err
}

func (s *stubHistory) HistoryItem(ctx context.Context, token, mediaType string, mediaID int64) (*models.HistoryItem, error) {
	s.token = token
	return s.item, s.err
}

func (s *stubHistory) UpdateHistory(ctx context.Context, token string, update models.HistoryUpdate) error {
	s.token = token
	s.updated = &update
	return s.err
}

func TestHistoryUpdateForwardsBodyAndToken(t *testing.T) {
	accounts := &stubHistory{}
	handler := NewHistoryHandler(accounts)

	update := models.HistoryUpdate{MediaID: 550, MediaType: "movie", Progress: 1200, Duration: 8400}
	body, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewReader(body))
	req = req.WithContext(auth.WithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if accounts.token != "tok-1" {
		t.Fatalf("expected token forwarded, got %q", accounts.token)
	}
	if accounts.updated == nil || accounts.updated.MediaID != 550 {
		t.Fatalf("update not forwarded: %+v", accounts.updated)
	}
}

func TestHistoryUpdateRequiresMediaFields(t *testing.T) {
	handler := NewHistoryHandler(&stubHistory{})

	body, _ := json.Marshal(models.HistoryUpdate{Progress: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewReader(body))
	req = req.WithContext(auth.WithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHistoryUpdateMirrorsUpstreamError(t *testing.T) {
	accounts := &stubHistory{err: &account.RequestError{StatusCode: http.StatusConflict, Message: "stale progress"}}
	handler := NewHistoryHandler(accounts)

	body, _ := json.Marshal(models.HistoryUpdate{MediaID: 1, MediaType: "movie"})
	req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewReader(body))
	req = req.WithContext(auth.WithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected upstream 409 mirrored, got %d", rec.Code)
	}
}

func TestHistoryUpdateTransportFailureIs502(t *testing.T) {
	accounts := &stubHistory{err: context.DeadlineExceeded}
	handler := NewHistoryHandler(accounts)

	body, _ := json.Marshal(models.HistoryUpdate{MediaID: 1, MediaType: "movie"})
	req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewReader(body))
	req = req.WithContext(auth.WithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestHistoryListReturnsPage(t *testing.T) {
	accounts := &stubHistory{page: &models.HistoryPage{
		Page:       1,
		TotalPages: 2,
		History:    []models.HistoryItem{{MediaID: 550, MediaType: "movie", Progress: 100, Duration: 200}},
	}}
	handler := NewHistoryHandler(accounts)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req = req.WithContext(auth.WithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page models.HistoryPage
	json.NewDecoder(rec.Body).Decode(&page)
	if len(page.History) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
