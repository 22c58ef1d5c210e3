package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/savezra/whatsapp-bot/internal/client/db"
	"github.com/savezra/whatsapp-bot/migrations"
)

type pgClient struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (db.Client, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if err := migrate(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &pgClient{
		db: sqlDB,
	}, nil
}

func migrate(ctx context.Context, sqlDB *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, ".")
}

func (c *pgClient) DB() *sql.DB {
	return c.db
}

func (c *pgClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
