package postgres

import (
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/AcroChem-api/pkg/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones embebidas pendientes (goose) sobre la base.
// Usa una conexión database/sql propia (driver pgx/stdlib), separada del pool.
func Migrate(cfg config.DBConfig) error {
	db, err := goose.OpenDBWithDriver("pgx", cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrationsFS)
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
