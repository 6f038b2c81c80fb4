package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"codelearn/internal/models"
)

// evaluationColumns is the standard column list for evaluation cache queries.
const evaluationColumns = `id, cache_key, video_id, payload, usage_count, created_at, updated_at, last_accessed_at`

// scanEvaluation scans a row into a CachedEvaluation struct.
func scanEvaluation(row pgx.Row) (*models.CachedEvaluation, error) {
	var ce models.CachedEvaluation
	err := row.Scan(
		&ce.ID,
		&ce.CacheKey,
		&ce.VideoID,
		&ce.Payload,
		&ce.UsageCount,
		&ce.CreatedAt,
		&ce.UpdatedAt,
		&ce.LastAccessedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEvaluationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ce, nil
}

// FindEvaluation retrieves a cached evaluation by its normalized key.
// A hit counts as a use: usage_count is incremented and last_accessed_at
// refreshed in the same statement.
func (d *DB) FindEvaluation(ctx context.Context, key string) (*models.CachedEvaluation, error) {
	query := `
		UPDATE video_evaluations
		SET usage_count = usage_count + 1, last_accessed_at = NOW()
		WHERE cache_key = $1
		RETURNING ` + evaluationColumns
	return scanEvaluation(d.Pool.QueryRow(ctx, query, key))
}

// PeekEvaluation retrieves a cached evaluation without counting a use.
func (d *DB) PeekEvaluation(ctx context.Context, key string) (*models.CachedEvaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM video_evaluations WHERE cache_key = $1`
	return scanEvaluation(d.Pool.QueryRow(ctx, query, key))
}

// UpsertEvaluation stores an evaluation payload under the normalized key.
// An existing row gets its payload replaced and updated_at refreshed without
// touching usage_count (a write is not a read). A fresh row starts with
// usage_count = 1. Two concurrent inserts for the same key race on the unique
// index; the loser re-fetches and returns the winning row instead of failing.
func (d *DB) UpsertEvaluation(ctx context.Context, key, videoID string, payload []byte) (*models.CachedEvaluation, error) {
	existing, err := d.PeekEvaluation(ctx, key)
	if err != nil && !errors.Is(err, ErrEvaluationNotFound) {
		return nil, err
	}

	if existing != nil {
		query := `
			UPDATE video_evaluations
			SET payload = $1, updated_at = NOW()
			WHERE cache_key = $2
			RETURNING ` + evaluationColumns
		return scanEvaluation(d.Pool.QueryRow(ctx, query, payload, key))
	}

	query := `
		INSERT INTO video_evaluations (cache_key, video_id, payload)
		VALUES ($1, $2, $3)
		RETURNING ` + evaluationColumns
	ce, err := scanEvaluation(d.Pool.QueryRow(ctx, query, key, videoID, payload))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Another writer inserted the same key first; their row wins.
			return d.PeekEvaluation(ctx, key)
		}
		return nil, err
	}
	return ce, nil
}

// CountEvaluations returns the number of durable cache rows, for metrics export.
func (d *DB) CountEvaluations(ctx context.Context) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM video_evaluations`).Scan(&count)
	return count, err
}
