package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory SQLite database with the catalog schema.
// The schema mirrors database.InitSchema; it is inlined here to keep the
// repository package free of an import on database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		CREATE TABLE themes (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			parent_id INTEGER REFERENCES themes(id)
		);
		CREATE TABLE sets (
			set_num TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			year INTEGER NOT NULL,
			theme_id INTEGER NOT NULL REFERENCES themes(id),
			num_parts INTEGER,
			img_url TEXT,
			price REAL,
			price_updated_at TEXT
		);
		CREATE TABLE minifigs (
			fig_num TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			num_parts INTEGER,
			img_url TEXT
		);
	`)
	require.NoError(t, err)
	return db
}

// seedThemes inserts a root theme (158) with one child (601) plus an
// unrelated empty theme (717).
func seedThemes(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO themes (id, name, parent_id) VALUES
			(158, 'Star Wars', NULL),
			(601, 'Ultimate Collector Series', 158),
			(717, 'Ideas', NULL);
	`)
	require.NoError(t, err)
}

func seedSets(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO sets (set_num, name, year, theme_id, num_parts) VALUES
			('75192-1', 'Millennium Falcon', 2017, 601, 7541),
			('75144-1', 'Snowspeeder', 2017, 601, 1703),
			('75911-1', 'Zulu Fighter', 2017, 158, 120),
			('10179-1', 'Ultimate Falcon', 2007, 601, 5195);
	`)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

func ctx() context.Context { return context.Background() }
