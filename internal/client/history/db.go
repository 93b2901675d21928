package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/autodate/stampctl/internal/client/history/migrations"
)

// Store bundles the database handle with its repositories.
type Store struct {
	DB       *sql.DB
	Jobs     JobRepository
	Metadata MetadataRepository
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the sqlite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return &Store{
		DB:       db,
		Jobs:     NewSQLiteJobRepository(db),
		Metadata: NewSQLiteMetadataRepository(db),
	}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
