package api

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkazlou/gearhub/internal/client/migrations"
	"github.com/dkazlou/gearhub/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the on-device stores handed to the services layer.
type Repositories struct {
	Metadata metadata.Repository
	DB       *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local sqlite store at dsn and applies embedded
// migrations. The caller is expected to import a sqlite driver
// (modernc.org/sqlite).
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
