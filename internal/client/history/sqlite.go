package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLiteJobRepository struct {
	db DBTX
}

func NewSQLiteJobRepository(db DBTX) *SQLiteJobRepository {
	return &SQLiteJobRepository{db: db}
}

func (r *SQLiteJobRepository) Add(ctx context.Context, job *Job) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, submitted_at, file_count, date, start_time, end_time, crop_height, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.SubmittedAt.UTC(), job.FileCount, job.Date, job.StartTime, job.EndTime, job.CropHeight, job.Outcome, job.Detail)
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", job.ID, err)
	}
	return nil
}

// List returns the most recent jobs first, at most limit of them.
func (r *SQLiteJobRepository) List(ctx context.Context, limit int) ([]*Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, submitted_at, file_count, date, start_time, end_time, crop_height, outcome, detail
		FROM jobs ORDER BY submitted_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		j := &Job{}
		if err := rows.Scan(&j.ID, &j.SubmittedAt, &j.FileCount, &j.Date, &j.StartTime, &j.EndTime, &j.CropHeight, &j.Outcome, &j.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}
	return jobs, nil
}

type SQLiteMetadataRepository struct {
	db DBTX
}

func NewSQLiteMetadataRepository(db DBTX) *SQLiteMetadataRepository {
	return &SQLiteMetadataRepository{db: db}
}

// Get returns nil for a missing key.
func (r *SQLiteMetadataRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteMetadataRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteMetadataRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
