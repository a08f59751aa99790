package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "reelgrid_session"
	tokenKey   = "token"

	// Sessions last a week; the account service enforces its own token
	// expiry on top of this.
	maxAgeSeconds = 86400 * 7
)

// Manager wraps the signed cookie store. The cookie carries only the
// account-service bearer token; everything about the user lives upstream.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Token returns the bearer token stored in the request's session cookie, or
// "" when there is none or the cookie fails signature validation.
func (m *Manager) Token(r *http.Request) string {
	session, err := m.store.Get(r, cookieName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[tokenKey].(string)
	return token
}

// SetToken writes the bearer token into the session cookie.
func (m *Manager) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := m.store.Get(r, cookieName)
	session.Values[tokenKey] = token
	return session.Save(r, w)
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, cookieName)
	session.Options.MaxAge = -1
	delete(session.Values, tokenKey)
	return session.Save(r, w)
}
