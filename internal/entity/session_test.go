package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Transitions(t *testing.T) {
	var s Session
	assert.Equal(t, Session{}, s)

	s.SignIn("admin")
	assert.Equal(t, Session{LoggedIn: true, CurrentUser: "admin"}, s)

	s.SignOut()
	assert.Equal(t, Session{}, s)
	s.SignOut()
	assert.Equal(t, Session{}, s)
}

func TestDefaultCredentials_IsFreshCopy(t *testing.T) {
	a := DefaultCredentials()
	a["mallory"] = "x"

	b := DefaultCredentials()
	assert.Equal(t, Credentials{"admin": "1234", "user": "password"}, b)
	assert.True(t, b.Has("admin"))
	assert.False(t, b.Has("mallory"))

	c := b.Clone()
	c["admin"] = "changed"
	assert.Equal(t, "1234", b["admin"])
}
