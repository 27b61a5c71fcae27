package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"brandoraBack/internal/models"
)

type ManifestRepository struct {
	DB *sql.DB
}

func (r *ManifestRepository) Create(ctx context.Context, m models.Manifest) (models.Manifest, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO manifests (id, name, target_url, selector, schedule_cron, enabled, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Name, m.TargetURL, m.Selector, m.ScheduleCRON, m.Enabled, m.CreatedAt)
	if err != nil {
		return models.Manifest{}, err
	}
	return m, nil
}

func (r *ManifestRepository) GetByID(ctx context.Context, id string) (models.Manifest, error) {
	var m models.Manifest
	var updated sql.NullTime
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, name, target_url, selector, schedule_cron, enabled, created_at, updated_at
        FROM manifests WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.TargetURL, &m.Selector, &m.ScheduleCRON, &m.Enabled, &m.CreatedAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Manifest{}, models.ErrManifestNotFound
	}
	if err != nil {
		return models.Manifest{}, err
	}
	if updated.Valid {
		m.UpdatedAt = &updated.Time
	}
	return m, nil
}

func (r *ManifestRepository) List(ctx context.Context) ([]models.Manifest, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, name, target_url, selector, schedule_cron, enabled, created_at, updated_at
        FROM manifests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var manifests []models.Manifest
	for rows.Next() {
		var m models.Manifest
		var updated sql.NullTime
		if err := rows.Scan(&m.ID, &m.Name, &m.TargetURL, &m.Selector, &m.ScheduleCRON, &m.Enabled, &m.CreatedAt, &updated); err != nil {
			return nil, err
		}
		if updated.Valid {
			m.UpdatedAt = &updated.Time
		}
		manifests = append(manifests, m)
	}
	return manifests, rows.Err()
}

func (r *ManifestRepository) Update(ctx context.Context, m models.Manifest) (models.Manifest, error) {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `
        UPDATE manifests
        SET name = $2, target_url = $3, selector = $4, schedule_cron = $5, enabled = $6, updated_at = $7
        WHERE id = $1`,
		m.ID, m.Name, m.TargetURL, m.Selector, m.ScheduleCRON, m.Enabled, now)
	if err != nil {
		return models.Manifest{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Manifest{}, err
	}
	if affected == 0 {
		return models.Manifest{}, models.ErrManifestNotFound
	}
	m.UpdatedAt = &now
	return m, nil
}

func (r *ManifestRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM manifests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrManifestNotFound
	}
	return nil
}
