package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Minifig represents a minifigure row. FigNum is the natural key (e.g.
// "fig-000123"). NumParts and ImgURL are optional.
type Minifig struct {
	FigNum   string  `json:"fig_num"`
	Name     string  `json:"name"`
	NumParts *int    `json:"num_parts,omitempty"`
	ImgURL   *string `json:"img_url,omitempty"`
}

// MinifigListQuery carries the optional name search and pagination for
// listing minifigures.
type MinifigListQuery struct {
	Search string
	Limit  int
	Offset int
}

// MinifigUpdate carries a partial update; nil fields are left untouched.
type MinifigUpdate struct {
	Name     *string `json:"name"`
	NumParts *int    `json:"num_parts"`
	ImgURL   *string `json:"img_url"`
}

// MinifigRepo encapsulates all database queries related to minifigures.
type MinifigRepo struct {
	db *sql.DB
}

// NewMinifigRepo constructs a MinifigRepo with the provided DB handle.
func NewMinifigRepo(db *sql.DB) *MinifigRepo {
	return &MinifigRepo{db: db}
}

// List returns a page of minifigures ordered by name plus the total count
// of rows matching the search.
func (r *MinifigRepo) List(ctx context.Context, q MinifigListQuery) ([]*Minifig, int, error) {
	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE LOWER(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM minifigs"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT fig_num, name, num_parts, img_url FROM minifigs" + where +
		" ORDER BY name ASC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Minifig
	for rows.Next() {
		m := new(Minifig)
		if err := rows.Scan(&m.FigNum, &m.Name, &m.NumParts, &m.ImgURL); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByNum fetches a minifigure by its figure number. Returns ErrNotFound
// when absent.
func (r *MinifigRepo) GetByNum(ctx context.Context, figNum string) (*Minifig, error) {
	const q = "SELECT fig_num, name, num_parts, img_url FROM minifigs WHERE fig_num = ?"
	m := new(Minifig)
	err := r.db.QueryRowContext(ctx, q, figNum).Scan(&m.FigNum, &m.Name, &m.NumParts, &m.ImgURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Create inserts a new minifigure. A duplicate figure number yields
// ErrDuplicate.
func (r *MinifigRepo) Create(ctx context.Context, m *Minifig) (Meta, error) {
	const q = "INSERT INTO minifigs (fig_num, name, num_parts, img_url) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, m.FigNum, m.Name, m.NumParts, m.ImgURL)
	if err != nil {
		if isDuplicate(err) {
			return Meta{}, ErrDuplicate
		}
		return Meta{}, err
	}
	return metaFrom(res), nil
}

// Update applies a partial update to the minifigure identified by figNum.
func (r *MinifigRepo) Update(ctx context.Context, figNum string, u MinifigUpdate) (Meta, error) {
	var sets []string
	var args []any
	appendSet(&sets, &args, "name", u.Name)
	appendSet(&sets, &args, "num_parts", u.NumParts)
	appendSet(&sets, &args, "img_url", u.ImgURL)
	if len(sets) == 0 {
		return Meta{}, ErrEmptyUpdate
	}

	query := "UPDATE minifigs SET " + strings.Join(sets, ", ") + " WHERE fig_num = ?"
	res, err := r.db.ExecContext(ctx, query, append(args, figNum)...)
	if err != nil {
		return Meta{}, err
	}
	m := metaFrom(res)
	if m.Changes == 0 {
		return Meta{}, ErrNotFound
	}
	return m, nil
}

// Delete removes a minifigure unconditionally. ErrNotFound when absent.
func (r *MinifigRepo) Delete(ctx context.Context, figNum string) (Meta, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM minifigs WHERE fig_num = ?", figNum)
	if err != nil {
		return Meta{}, err
	}
	m := metaFrom(res)
	if m.Changes == 0 {
		return Meta{}, ErrNotFound
	}
	return m, nil
}
