package repository

import (
	"context"

	"carprice/internal/entity"
)

// CredentialStore persists the username -> password mapping.
type CredentialStore interface {
	// Load returns the current mapping, or the default accounts when
	// nothing has been stored yet.
	Load(ctx context.Context) (entity.Credentials, error)
	// Save persists the whole mapping.
	Save(ctx context.Context, creds entity.Credentials) error
}
