package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohelr/goblog/internal/session"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func withCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestAnonymousByDefault(t *testing.T) {
	m := session.NewManager(testSecret, 3600)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := m.UserID(req)
	assert.False(t, ok)
}

func TestLoginSurvivesRequests(t *testing.T) {
	m := session.NewManager(testSecret, 3600)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.Login(rec, req, 42))
	require.NotEmpty(t, rec.Result().Cookies())

	id, ok := m.UserID(withCookies(t, rec))
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestLogoutDropsBinding(t *testing.T) {
	m := session.NewManager(testSecret, 3600)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.Login(rec, req, 42))

	req2 := withCookies(t, rec)
	rec2 := httptest.NewRecorder()
	require.NoError(t, m.Logout(rec2, req2))

	_, ok := m.UserID(withCookies(t, rec2))
	assert.False(t, ok)
}

func TestForgedCookieRejected(t *testing.T) {
	m := session.NewManager(testSecret, 3600)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.Login(rec, req, 42))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// flip a byte in the middle of the cookie value
	forged := *cookies[0]
	mid := len(forged.Value) / 2
	if forged.Value[mid] != 'x' {
		forged.Value = forged.Value[:mid] + "x" + forged.Value[mid+1:]
	} else {
		forged.Value = forged.Value[:mid] + "y" + forged.Value[mid+1:]
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(&forged)
	_, ok := m.UserID(req2)
	assert.False(t, ok)
}

func TestFlashesDrainOnce(t *testing.T) {
	m := session.NewManager(testSecret, 3600)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	m.Flash(rec, req, "Post created.")

	req2 := withCookies(t, rec)
	rec2 := httptest.NewRecorder()
	assert.Equal(t, []string{"Post created."}, m.Flashes(rec2, req2))

	// reading consumed it
	req3 := withCookies(t, rec2)
	rec3 := httptest.NewRecorder()
	assert.Empty(t, m.Flashes(rec3, req3))
}
