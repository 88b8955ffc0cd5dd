package storage

import (
	"context"
	"fmt"
)

// GetOrCreateUser finds or creates a user by identity login. Updates
// last_seen, display name and avatar on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName, avatarURL string) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, display_name, avatar_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
			SET last_seen = NOW(),
			    display_name = COALESCE(NULLIF($2, ''), users.display_name),
			    avatar_url = COALESCE(NULLIF($3, ''), users.avatar_url)
		RETURNING id
	`, login, displayName, avatarURL).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upserting user: %w", err)
	}
	return id, nil
}
