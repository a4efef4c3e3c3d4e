// Package database opens the catalog store and, for SQLite deployments,
// bootstraps the schema. The production catalog lives in a SQLite-family
// database, so the same schema works for local files and in-memory test
// databases; MySQL is supported for installations that already run one.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/bricksdeal/catalog-api/internal/config"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return openMySQL(cfg)
	case "sqlite":
		return openSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

func openMySQL(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	return ping(db)
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The modernc driver serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return ping(db)
}

func ping(db *sql.DB) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the catalog tables when they do not exist yet. It is
// only called for the SQLite driver; MySQL installations are expected to
// manage their schema externally.
func InitSchema(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS themes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id INTEGER REFERENCES themes(id)
	);

	CREATE TABLE IF NOT EXISTS sets (
		set_num TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		theme_id INTEGER NOT NULL REFERENCES themes(id),
		num_parts INTEGER,
		img_url TEXT,
		price REAL,
		price_updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS minifigs (
		fig_num TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		num_parts INTEGER,
		img_url TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sets_theme_id ON sets(theme_id);
	CREATE INDEX IF NOT EXISTS idx_sets_year ON sets(year);
	CREATE INDEX IF NOT EXISTS idx_themes_parent_id ON themes(parent_id);
	`
	_, err := db.Exec(schema)
	return err
}
