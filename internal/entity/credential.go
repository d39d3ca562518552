package entity

// Credentials maps username to stored password (plaintext or bcrypt hash).
type Credentials map[string]string

// DefaultCredentials returns a fresh copy of the accounts used when no
// credential data exists yet.
func DefaultCredentials() Credentials {
	return Credentials{
		"admin": "1234",
		"user":  "password",
	}
}

func (c Credentials) Clone() Credentials {
	out := make(Credentials, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c Credentials) Has(username string) bool {
	_, ok := c[username]
	return ok
}
