package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"festregistration/internal/domain"
)

type contentRepository struct {
	DB *sql.DB
}

// NewContentRepository returns a ContentStore backed by the site_content
// table, one jsonb row per section.
func NewContentRepository(db *sql.DB) domain.ContentStore {
	return &contentRepository{
		DB: db,
	}
}

func (r *contentRepository) Get(ctx context.Context, section string) (json.RawMessage, error) {
	query := `
		SELECT body FROM site_content
		WHERE section = $1
	`
	var body []byte
	err := r.DB.QueryRowContext(ctx, query, section).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return body, nil
}

func (r *contentRepository) Put(ctx context.Context, section string, body json.RawMessage) error {
	query := `
		INSERT INTO site_content (section, body, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (section) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, section, []byte(body), time.Now())
	return err
}
