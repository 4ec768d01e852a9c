package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const contentColumns = `id, type, slug, title, content, metadata, created_at, modified_at`

// contentRepository implements ContentRepository using PostgreSQL.
type contentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewContentRepository creates a new PostgreSQL-backed content repository.
func NewContentRepository(pool *pgxpool.Pool, logger zerolog.Logger) ContentRepository {
	return &contentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "content").Logger(),
	}
}

// List retrieves objects of one type ordered by title, with pagination.
func (r *contentRepository) List(ctx context.Context, objType string, limit, offset int) ([]model.ContentObject, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_objects
		WHERE type = $1
		ORDER BY title, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, objType, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("type", objType).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query content objects")
		return nil, fmt.Errorf("failed to query content objects: %w", err)
	}

	objects, err := collectContent(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("type", objType).Msg("failed to read content rows")
		return nil, err
	}
	return objects, nil
}

// GetBySlug retrieves a single object. Returns nil, nil when absent.
func (r *contentRepository) GetBySlug(ctx context.Context, objType, slug string) (*model.ContentObject, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_objects
		WHERE type = $1 AND slug = $2
	`

	obj, err := scanContent(r.pool.QueryRow(ctx, query, objType, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("type", objType).Str("slug", slug).Msg("content object not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("type", objType).Str("slug", slug).Msg("failed to query content object")
		return nil, fmt.Errorf("failed to query content object: %w", err)
	}

	return obj, nil
}

// GetByIDs retrieves the objects of one type whose IDs are listed.
func (r *contentRepository) GetByIDs(ctx context.Context, objType string, ids []string) ([]model.ContentObject, error) {
	if len(ids) == 0 {
		return []model.ContentObject{}, nil
	}

	query := `
		SELECT ` + contentColumns + `
		FROM content_objects
		WHERE type = $1 AND id = ANY($2)
		ORDER BY title, id
	`

	rows, err := r.pool.Query(ctx, query, objType, ids)
	if err != nil {
		r.logger.Error().Err(err).Str("type", objType).Int("count", len(ids)).Msg("failed to query content objects by IDs")
		return nil, fmt.Errorf("failed to query content objects by IDs: %w", err)
	}

	objects, err := collectContent(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("type", objType).Msg("failed to read content rows")
		return nil, err
	}
	return objects, nil
}

// Upsert inserts or replaces objects by ID in a single batch.
func (r *contentRepository) Upsert(ctx context.Context, objects []model.ContentObject) (int, error) {
	if len(objects) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO content_objects (` + contentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			slug = EXCLUDED.slug,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			modified_at = EXCLUDED.modified_at
	`

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, obj := range objects {
		createdAt, modifiedAt := obj.CreatedAt, obj.ModifiedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if modifiedAt.IsZero() {
			modifiedAt = createdAt
		}
		metadata := []byte(obj.Metadata)
		if len(metadata) == 0 {
			metadata = []byte("{}")
		}
		batch.Queue(query, obj.ID, obj.Type, obj.Slug, obj.Title, obj.Content, metadata, createdAt, modifiedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range objects {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("id", objects[i].ID).
				Str("type", objects[i].Type).
				Str("slug", objects[i].Slug).
				Msg("failed to upsert content object")
			return i, fmt.Errorf("failed to upsert content object %s: %w", objects[i].ID, err)
		}
	}

	r.logger.Debug().Int("count", len(objects)).Msg("content objects upserted")

	return len(objects), nil
}

func scanContent(row pgx.Row) (*model.ContentObject, error) {
	var obj model.ContentObject
	var metadata []byte
	err := row.Scan(
		&obj.ID,
		&obj.Type,
		&obj.Slug,
		&obj.Title,
		&obj.Content,
		&metadata,
		&obj.CreatedAt,
		&obj.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	obj.Metadata = metadata
	return &obj, nil
}

func collectContent(rows pgx.Rows) ([]model.ContentObject, error) {
	defer rows.Close()

	objects := []model.ContentObject{}
	for rows.Next() {
		obj, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content object: %w", err)
		}
		objects = append(objects, *obj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content objects: %w", err)
	}
	return objects, nil
}
