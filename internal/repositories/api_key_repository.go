package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brandoraBack/internal/models"
)

type APIKeyRepository struct {
	DB *sql.DB
}

func (r *APIKeyRepository) Create(ctx context.Context, key models.APIKey) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO api_keys (id, label, hash, created_at)
        VALUES ($1, $2, $3, $4)`,
		key.ID, key.Label, key.Hash, key.CreatedAt)
	return err
}

// GetActive returns a non-revoked key by id.
func (r *APIKeyRepository) GetActive(ctx context.Context, id string) (models.APIKey, error) {
	var key models.APIKey
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, label, hash, created_at
        FROM api_keys WHERE id = $1 AND revoked_at IS NULL`, id).
		Scan(&key.ID, &key.Label, &key.Hash, &key.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.APIKey{}, models.ErrInvalidAPIKey
	}
	if err != nil {
		return models.APIKey{}, err
	}
	return key, nil
}

func (r *APIKeyRepository) List(ctx context.Context) ([]models.APIKey, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, label, hash, created_at, revoked_at
        FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []models.APIKey
	for rows.Next() {
		var key models.APIKey
		var revoked sql.NullTime
		if err := rows.Scan(&key.ID, &key.Label, &key.Hash, &key.CreatedAt, &revoked); err != nil {
			return nil, err
		}
		if revoked.Valid {
			key.RevokedAt = &revoked.Time
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *APIKeyRepository) Revoke(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE api_keys SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`,
		id, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrInvalidAPIKey
	}
	return nil
}
