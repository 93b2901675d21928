// Package history is the client's local sqlite store: a ledger of submitted
// stamp jobs and a small metadata table used to persist the session cookie
// across runs. It is a convenience record only; the server stays
// authoritative on credits and sessions.
package history

import (
	"context"
	"database/sql"
	"time"
)

// Job outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// MetadataKeySession is where the serialized session cookie lives.
const MetadataKeySession = "session"

// Job records one stamp submission and how it ended.
type Job struct {
	ID          string
	SubmittedAt time.Time
	FileCount   int
	Date        string
	StartTime   string
	EndTime     string
	CropHeight  string
	Outcome     string
	Detail      string
}

// JobRepository stores the local job ledger.
type JobRepository interface {
	Add(ctx context.Context, job *Job) error
	List(ctx context.Context, limit int) ([]*Job, error)
}

// MetadataRepository is a key/value store for small client state.
type MetadataRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// DBTX is the subset of database/sql the repositories use; both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
