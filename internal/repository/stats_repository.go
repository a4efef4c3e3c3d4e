package repository

import (
	"context"
	"database/sql"
)

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalSets     int            `json:"total_sets"`
	TotalMinifigs int            `json:"total_minifigs"`
	TotalThemes   int            `json:"total_themes"`
	PricedSets    int            `json:"priced_sets"`
	MinYear       int            `json:"min_year"`
	MaxYear       int            `json:"max_year"`
	SetsByTheme   []ThemeSetsRow `json:"sets_by_theme"`
}

// ThemeSetsRow is one row of the per-theme breakdown.
type ThemeSetsRow struct {
	ThemeID  int64  `json:"theme_id"`
	Name     string `json:"name"`
	SetCount int    `json:"set_count"`
}

// StatsRepo runs the aggregate queries behind the admin dashboard.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo with the provided DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Dashboard collects the catalog counters. An empty catalog is not an
// error; counters simply come back zero.
func (r *StatsRepo) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sets").Scan(&stats.TotalSets); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM minifigs").Scan(&stats.TotalMinifigs); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM themes").Scan(&stats.TotalThemes); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sets WHERE price IS NOT NULL").Scan(&stats.PricedSets); err != nil {
		return nil, err
	}

	// MIN/MAX over an empty table scan as NULL; an empty span stays zero.
	var minYear, maxYear sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MIN(year), MAX(year) FROM sets").
		Scan(&minYear, &maxYear); err != nil {
		return nil, err
	}
	stats.MinYear = int(minYear.Int64)
	stats.MaxYear = int(maxYear.Int64)

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, COUNT(s.set_num) AS set_count
		FROM themes t
		LEFT JOIN sets s ON s.theme_id = t.id
		GROUP BY t.id, t.name
		ORDER BY set_count DESC, t.name ASC
		LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var row ThemeSetsRow
		if err := rows.Scan(&row.ThemeID, &row.Name, &row.SetCount); err != nil {
			return nil, err
		}
		stats.SetsByTheme = append(stats.SetsByTheme, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
