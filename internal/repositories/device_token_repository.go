package repositories

import (
	"context"
	"database/sql"
	"time"
)

type DeviceTokenRepository struct {
	DB *sql.DB
}

// Register stores a push token for a user, replacing a stale owner if the
// token moved between accounts.
func (r *DeviceTokenRepository) Register(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO device_tokens (user_id, token, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id`,
		userID, token, time.Now().UTC())
	return err
}

func (r *DeviceTokenRepository) TokensForUser(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT token FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *DeviceTokenRepository) Remove(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM device_tokens WHERE token = $1`, token)
	return err
}
