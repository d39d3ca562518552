package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carprice/internal/entity"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCookieManager(t *testing.T) *Manager {
	t.Helper()
	auth, enc := Keys("", "")
	return NewManager(NewCookieStore(auth, enc, Options(0, false)), "app-session")
}

// roundTrip saves st and returns a new request carrying the resulting cookies.
func roundTrip(t *testing.T, m *Manager, r *http.Request, st *State) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, r, st))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestManager_NewSessionIsLoggedOut(t *testing.T) {
	m := newCookieManager(t)

	st, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, entity.Session{}, st.Session)
}

func TestManager_LoginSurvivesRoundTrip(t *testing.T) {
	m := newCookieManager(t)
	r := httptest.NewRequest(http.MethodPost, "/login", nil)

	st, err := m.Get(r)
	require.NoError(t, err)
	st.Session.SignIn("admin")

	next := roundTrip(t, m, r, st)
	st2, err := m.Get(next)
	require.NoError(t, err)
	assert.Equal(t, entity.Session{LoggedIn: true, CurrentUser: "admin"}, st2.Session)

	st2.Session.SignOut()
	after := roundTrip(t, m, next, st2)
	st3, err := m.Get(after)
	require.NoError(t, err)
	assert.Equal(t, entity.Session{}, st3.Session)
}

func TestManager_Flashes(t *testing.T) {
	m := newCookieManager(t)
	r := httptest.NewRequest(http.MethodPost, "/register", nil)

	st, _ := m.Get(r)
	st.AddFlash(FlashError, "Username already exists.")
	st.AddFlash(FlashSuccess, "Welcome")

	next := roundTrip(t, m, r, st)
	st2, err := m.Get(next)
	require.NoError(t, err)
	assert.Equal(t, []Flash{
		{Kind: FlashSuccess, Text: "Welcome"},
		{Kind: FlashError, Text: "Username already exists."},
	}, st2.Flashes())

	// drained
	assert.Empty(t, st2.Flashes())
}

func TestManager_TamperedCookie(t *testing.T) {
	m := newCookieManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "app-session", Value: "forged"})

	st, err := m.Get(r)
	require.Error(t, err)
	require.NotNil(t, st)
	assert.False(t, st.Session.LoggedIn)
}

func TestManager_ForeignKeysRejected(t *testing.T) {
	a := newCookieManager(t)
	b := newCookieManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	st, _ := a.Get(r)
	st.Session.SignIn("admin")
	next := roundTrip(t, a, r, st)

	st2, err := b.Get(next)
	require.Error(t, err)
	assert.False(t, st2.Session.LoggedIn)
}

func TestOptions(t *testing.T) {
	o := Options(3600, true)
	assert.Equal(t, &sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true, Secure: true, SameSite: http.SameSiteLaxMode}, o)
}

func TestKeys_UsesConfigured(t *testing.T) {
	auth, enc := Keys("0123456789abcdef0123456789abcdef", "fedcba9876543210fedcba9876543210")
	assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), auth)
	assert.Equal(t, []byte("fedcba9876543210fedcba9876543210"), enc)

	auth, enc = Keys("", "")
	assert.Len(t, auth, 64)
	assert.Len(t, enc, 32)
}
