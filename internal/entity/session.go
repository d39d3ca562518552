package entity

// Session is the per-browser authentication state. The zero value is the
// logged out state.
type Session struct {
	LoggedIn    bool
	CurrentUser string
}

func (s *Session) SignIn(username string) {
	s.LoggedIn = true
	s.CurrentUser = username
}

// SignOut resets the session. Calling it on a logged out session is a no-op.
func (s *Session) SignOut() {
	s.LoggedIn = false
	s.CurrentUser = ""
}
