package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "goblog-session"
	userKey     = "user_id"
)

// Manager binds a browser to at most one user id via an authenticated
// cookie, and carries one-shot flash notices across redirects. The cookie
// is signed with the store's secret, so the binding cannot be forged
// client-side.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager builds a cookie-backed manager. maxAge is the session
// lifetime in seconds.
func NewManager(secret []byte, maxAge int) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// sets Options.MaxAge and the codec expiry together
	store.MaxAge(maxAge)
	return &Manager{store: store}
}

// UserID resolves the request's identity. ok is false for anonymous
// visitors and for cookies that fail verification.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	sess, _ := m.store.Get(r, sessionName)
	id, ok := sess.Values[userKey].(int64)
	return id, ok && id > 0
}

// Login binds userID to the current browser session.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID int64) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Values[userKey] = userID
	return sess.Save(r, w)
}

// Logout discards the identity binding. The session itself survives so a
// flash notice queued alongside the logout still reaches the next page.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, sessionName)
	delete(sess.Values, userKey)
	return sess.Save(r, w)
}

// Flash queues a one-shot notice for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := m.store.Get(r, sessionName)
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
}

// Flashes drains and returns any queued notices.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := m.store.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	_ = sess.Save(r, w)
	return msgs
}
