package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"carprice/internal/entity"
)

// PostgresCredentialStore keeps credentials in the credentials table.
type PostgresCredentialStore struct {
	db *sql.DB
}

func NewPostgresCredentialStore(db *sql.DB) *PostgresCredentialStore {
	return &PostgresCredentialStore{db: db}
}

func (s *PostgresCredentialStore) Load(ctx context.Context) (entity.Credentials, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username, password FROM credentials`)
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	creds := entity.Credentials{}
	for rows.Next() {
		var username, password string
		if err := rows.Scan(&username, &password); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds[username] = password
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	if len(creds) == 0 {
		return entity.DefaultCredentials(), nil
	}
	return creds, nil
}

// Save upserts every entry in one transaction. Rows missing from creds are
// left alone; accounts are never deleted.
func (s *PostgresCredentialStore) Save(ctx context.Context, creds entity.Credentials) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO credentials (username, password, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	usernames := make([]string, 0, len(creds))
	for u := range creds {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)

	for _, u := range usernames {
		if _, err := stmt.ExecContext(ctx, u, creds[u]); err != nil {
			return fmt.Errorf("upsert %s: %w", u, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
