package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reelgrid/internal/auth"
	"reelgrid/internal/session"
	"reelgrid/models"
	"reelgrid/services/account"
)

// accountAuthService is the slice of the account client the auth endpoints
// use.
type accountAuthService interface {
	Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*models.User, error)
}

var _ accountAuthService = (*account.Client)(nil)

// AuthHandler bridges the browser session cookie and the account service's
// bearer tokens.
type AuthHandler struct {
	Accounts accountAuthService
	Sessions *session.Manager
}

func NewAuthHandler(accounts accountAuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Sessions: sessions}
}

// Register creates an account upstream and signs the browser in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Accounts.Register(r.Context(), creds)
	if err != nil {
		respondAccountError(w, err)
		return
	}

	h.storeSession(w, r, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// Login exchanges credentials for a session and sets the cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Accounts.Login(r.Context(), creds)
	if err != nil {
		respondAccountError(w, err)
		return
	}

	h.storeSession(w, r, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Logout tells the account service to drop the token, clears the cookie and
// sends the browser back to the login page. The upstream call is best
// effort; the cookie is cleared no matter what.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.GetToken(r); token != "" {
		if err := h.Accounts.Logout(r.Context(), token); err != nil {
			log.Printf("[auth] upstream logout failed: %v", err)
		}
	}
	if err := h.Sessions.Clear(w, r); err != nil {
		log.Printf("[auth] failed to clear session cookie: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Me proxies the current-user fetch for the signed-in session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Accounts.Me(r.Context(), auth.GetToken(r))
	if err != nil {
		respondAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) storeSession(w http.ResponseWriter, r *http.Request, resp *models.AuthResponse) {
	if resp == nil || resp.Session == nil || resp.Session.AccessToken == "" {
		return
	}
	if err := h.Sessions.SetToken(w, r, resp.Session.AccessToken); err != nil {
		log.Printf("[auth] failed to set session cookie: %v", err)
	}
}

// respondAccountError mirrors the account service's verdict when it gave
// one, and answers 502 for transport-level failures.
func respondAccountError(w http.ResponseWriter, err error) {
	var reqErr *account.RequestError
	if errors.As(err, &reqErr) {
		writeError(w, reqErr.StatusCode, reqErr.Message)
		return
	}
	log.Printf("[auth] account service unreachable: %v", err)
	writeError(w, http.StatusBadGateway, "account service unavailable")
}
