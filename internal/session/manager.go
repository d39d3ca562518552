// Package session maps the per-browser authentication state onto
// gorilla/sessions. The backing store is a signed cookie or Redis.
package session

import (
	"net/http"

	"carprice/internal/entity"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	keyLoggedIn    = "logged_in"
	keyCurrentUser = "current_user"
)

// Flash kinds, in display order.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
)

var flashKinds = []string{FlashSuccess, FlashWarning, FlashError}

type Flash struct {
	Kind string
	Text string
}

type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

// Options shared by every backend.
func Options(maxAge int, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Keys returns the configured keys, generating random ones when they are
// empty. Generated keys invalidate every session on restart.
func Keys(authKey, encKey string) (auth, enc []byte) {
	auth = []byte(authKey)
	if len(auth) == 0 {
		auth = securecookie.GenerateRandomKey(64)
	}
	enc = []byte(encKey)
	if len(enc) == 0 {
		enc = securecookie.GenerateRandomKey(32)
	}
	return auth, enc
}

func NewCookieStore(authKey, encKey []byte, opts *sessions.Options) *sessions.CookieStore {
	store := sessions.NewCookieStore(authKey, encKey)
	o := *opts
	store.Options = &o
	return store
}

// State is the session of one request.
type State struct {
	raw     *sessions.Session
	Session entity.Session
}

// Get loads the request's session. A cookie that cannot be decoded (for
// example after a key change) yields a fresh logged out state together with
// the decode error, so callers can log it and carry on.
func (m *Manager) Get(r *http.Request) (*State, error) {
	raw, err := m.store.Get(r, m.name)
	if raw == nil {
		raw = sessions.NewSession(m.store, m.name)
		raw.IsNew = true
	}

	st := &State{raw: raw}
	if loggedIn, ok := raw.Values[keyLoggedIn].(bool); ok && loggedIn {
		if user, ok := raw.Values[keyCurrentUser].(string); ok && user != "" {
			st.Session.SignIn(user)
		}
	}
	return st, err
}

// Save writes st.Session back into the store and sets the cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, st *State) error {
	if st.Session.LoggedIn {
		st.raw.Values[keyLoggedIn] = true
		st.raw.Values[keyCurrentUser] = st.Session.CurrentUser
	} else {
		delete(st.raw.Values, keyLoggedIn)
		delete(st.raw.Values, keyCurrentUser)
	}
	return st.raw.Save(r, w)
}

func (st *State) AddFlash(kind, text string) {
	st.raw.AddFlash(text, kind)
}

// Flashes drains all pending messages.
func (st *State) Flashes() []Flash {
	var out []Flash
	for _, kind := range flashKinds {
		for _, v := range st.raw.Flashes(kind) {
			if text, ok := v.(string); ok {
				out = append(out, Flash{Kind: kind, Text: text})
			}
		}
	}
	return out
}
