package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blog-backend/internal/infrastructure/database/migrations"
)

// RunMigrations applies the embedded goose migrations.
// goose works on database/sql, so a short-lived stdlib connection is opened
// next to the pgx pool and closed when migrations finish.
func (db *PostgresDB) RunMigrations(ctx context.Context) error {
	conn, err := sql.Open("pgx", db.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Println("[DATABASE] Migrations applied")
	return nil
}
