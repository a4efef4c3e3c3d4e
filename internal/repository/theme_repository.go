package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Theme represents a theme row. Themes form a forest: ParentID is nil for
// root themes and otherwise references another theme.
type Theme struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// ThemeListQuery carries the optional filters for listing themes. The
// theme list is small and is not paginated.
type ThemeListQuery struct {
	ParentID *int64
	Search   string
}

// ThemeUpdate carries a partial update; nil fields are left untouched.
type ThemeUpdate struct {
	Name     *string `json:"name"`
	ParentID *int64  `json:"parent_id"`
}

// ThemeRepo encapsulates all database queries related to themes.
type ThemeRepo struct {
	db *sql.DB
}

// NewThemeRepo constructs a ThemeRepo with the provided DB handle.
func NewThemeRepo(db *sql.DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

// List returns all themes matching the query ordered by name.
func (r *ThemeRepo) List(ctx context.Context, q ThemeListQuery) ([]*Theme, error) {
	var conds []string
	var args []any
	if q.ParentID != nil {
		conds = append(conds, "parent_id = ?")
		args = append(args, *q.ParentID)
	}
	if q.Search != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
	}
	query := "SELECT id, name, parent_id FROM themes"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Theme
	for rows.Next() {
		t := new(Theme)
		if err := rows.Scan(&t.ID, &t.Name, &t.ParentID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a theme by its ID. Returns ErrNotFound when absent.
func (r *ThemeRepo) GetByID(ctx context.Context, id int64) (*Theme, error) {
	t := new(Theme)
	err := r.db.QueryRowContext(ctx, "SELECT id, name, parent_id FROM themes WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &t.ParentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create inserts a new theme. A duplicate ID yields ErrDuplicate and an
// unknown parent yields ErrBadReference.
func (r *ThemeRepo) Create(ctx context.Context, t *Theme) (Meta, error) {
	const q = "INSERT INTO themes (id, name, parent_id) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, t.ID, t.Name, t.ParentID)
	if err != nil {
		switch {
		case isDuplicate(err):
			return Meta{}, ErrDuplicate
		case isBadReference(err):
			return Meta{}, ErrBadReference
		}
		return Meta{}, err
	}
	return metaFrom(res), nil
}

// Update applies a partial update to the theme identified by id.
func (r *ThemeRepo) Update(ctx context.Context, id int64, u ThemeUpdate) (Meta, error) {
	var sets []string
	var args []any
	appendSet(&sets, &args, "name", u.Name)
	appendSet(&sets, &args, "parent_id", u.ParentID)
	if len(sets) == 0 {
		return Meta{}, ErrEmptyUpdate
	}

	query := "UPDATE themes SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		if isBadReference(err) {
			return Meta{}, ErrBadReference
		}
		return Meta{}, err
	}
	m := metaFrom(res)
	if m.Changes == 0 {
		return Meta{}, ErrNotFound
	}
	return m, nil
}

// Delete removes a theme. The dependency checks and the delete run in a
// single transaction so that a set or child theme created between check
// and delete cannot be orphaned. ErrConflict is returned when dependents
// exist, ErrNotFound when the theme is absent.
func (r *ThemeRepo) Delete(ctx context.Context, id int64) (Meta, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Meta{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var setCount int
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sets WHERE theme_id = ?", id).Scan(&setCount); err != nil {
		return Meta{}, err
	}
	if setCount > 0 {
		err = ErrConflict
		return Meta{}, err
	}
	var childCount int
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM themes WHERE parent_id = ?", id).Scan(&childCount); err != nil {
		return Meta{}, err
	}
	if childCount > 0 {
		err = ErrConflict
		return Meta{}, err
	}

	res, execErr := tx.ExecContext(ctx, "DELETE FROM themes WHERE id = ?", id)
	if execErr != nil {
		err = execErr
		return Meta{}, err
	}
	m := metaFrom(res)
	if m.Changes == 0 {
		err = ErrNotFound
		return Meta{}, err
	}
	if err = tx.Commit(); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// ListSets returns a page of sets belonging to the theme plus the total
// count. ErrNotFound is returned when the theme itself is absent so the
// handler can distinguish "unknown theme" from "theme with no sets".
func (r *ThemeRepo) ListSets(ctx context.Context, id int64, limit, offset int) ([]*Set, int, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sets WHERE theme_id = ?", id).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT set_num, name, year, theme_id, num_parts, img_url, price, price_updated_at
	           FROM sets WHERE theme_id = ? ORDER BY year DESC, name ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Set
	for rows.Next() {
		s := new(Set)
		if err := rows.Scan(&s.SetNum, &s.Name, &s.Year, &s.ThemeID,
			&s.NumParts, &s.ImgURL, &s.Price, &s.PriceUpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
