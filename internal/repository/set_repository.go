package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Set represents a catalog set row. SetNum is the natural key (e.g.
// "75192-1"). NumParts, ImgURL, Price and PriceUpdatedAt are optional and
// stored as NULL when absent. ThemeName is populated from a join on reads
// and is never written.
type Set struct {
	SetNum         string   `json:"set_num"`
	Name           string   `json:"name"`
	Year           int      `json:"year"`
	ThemeID        int64    `json:"theme_id"`
	NumParts       *int     `json:"num_parts,omitempty"`
	ImgURL         *string  `json:"img_url,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	PriceUpdatedAt *string  `json:"price_updated_at,omitempty"`
	ThemeName      string   `json:"theme_name,omitempty"`
}

// SetListQuery carries the optional filters and pagination for listing
// sets. Nil pointer fields mean "no filter".
type SetListQuery struct {
	ThemeID *int64
	Year    *int
	Search  string
	Limit   int
	Offset  int
}

// SetUpdate carries a partial update. Nil fields are left untouched; the
// natural key is not settable.
type SetUpdate struct {
	Name           *string  `json:"name"`
	Year           *int     `json:"year"`
	ThemeID        *int64   `json:"theme_id"`
	NumParts       *int     `json:"num_parts"`
	ImgURL         *string  `json:"img_url"`
	Price          *float64 `json:"price"`
	PriceUpdatedAt *string  `json:"price_updated_at"`
}

// SetRepo encapsulates all database queries related to sets.
type SetRepo struct {
	db *sql.DB
}

// NewSetRepo constructs a SetRepo with the provided DB handle.
func NewSetRepo(db *sql.DB) *SetRepo {
	return &SetRepo{db: db}
}

// List returns a page of sets matching the query plus the total number of
// matching rows. The total comes from a COUNT(*) sharing the same
// predicate, so partially filled pages still report the full count.
// Results are ordered newest year first, then name.
func (r *SetRepo) List(ctx context.Context, q SetListQuery) ([]*Set, int, error) {
	where, args := buildSetFilter(q)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sets"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT set_num, name, year, theme_id, num_parts, img_url, price, price_updated_at
	          FROM sets` + where + ` ORDER BY year DESC, name ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
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

func buildSetFilter(q SetListQuery) (string, []any) {
	var conds []string
	var args []any
	if q.ThemeID != nil {
		conds = append(conds, "theme_id = ?")
		args = append(args, *q.ThemeID)
	}
	if q.Year != nil {
		conds = append(conds, "year = ?")
		args = append(args, *q.Year)
	}
	if q.Search != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// GetByNum fetches a set by its set number, joined against themes so the
// response carries the theme's display name. Returns ErrNotFound when the
// set number is unknown.
func (r *SetRepo) GetByNum(ctx context.Context, setNum string) (*Set, error) {
	const q = `SELECT s.set_num, s.name, s.year, s.theme_id, s.num_parts, s.img_url,
	                  s.price, s.price_updated_at, t.name
	           FROM sets s JOIN themes t ON t.id = s.theme_id
	           WHERE s.set_num = ?`
	s := new(Set)
	err := r.db.QueryRowContext(ctx, q, setNum).Scan(&s.SetNum, &s.Name, &s.Year, &s.ThemeID,
		&s.NumParts, &s.ImgURL, &s.Price, &s.PriceUpdatedAt, &s.ThemeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Create inserts a new set. A duplicate set number yields ErrDuplicate and
// an unknown theme reference yields ErrBadReference.
func (r *SetRepo) Create(ctx context.Context, s *Set) (Meta, error) {
	const q = `INSERT INTO sets (set_num, name, year, theme_id, num_parts, img_url, price, price_updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.SetNum, s.Name, s.Year, s.ThemeID,
		s.NumParts, s.ImgURL, s.Price, s.PriceUpdatedAt)
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

// Update applies a partial update to the set identified by setNum. Only
// fields present in u are written. ErrEmptyUpdate is returned before any
// statement is issued when u carries nothing; ErrNotFound when no row was
// affected.
func (r *SetRepo) Update(ctx context.Context, setNum string, u SetUpdate) (Meta, error) {
	var sets []string
	var args []any
	appendSet(&sets, &args, "name", u.Name)
	appendSet(&sets, &args, "year", u.Year)
	appendSet(&sets, &args, "theme_id", u.ThemeID)
	appendSet(&sets, &args, "num_parts", u.NumParts)
	appendSet(&sets, &args, "img_url", u.ImgURL)
	appendSet(&sets, &args, "price", u.Price)
	appendSet(&sets, &args, "price_updated_at", u.PriceUpdatedAt)
	if len(sets) == 0 {
		return Meta{}, ErrEmptyUpdate
	}

	query := "UPDATE sets SET " + strings.Join(sets, ", ") + " WHERE set_num = ?"
	res, err := r.db.ExecContext(ctx, query, append(args, setNum)...)
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

// Delete removes a set unconditionally. ErrNotFound when the set number
// does not exist.
func (r *SetRepo) Delete(ctx context.Context, setNum string) (Meta, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sets WHERE set_num = ?", setNum)
	if err != nil {
		return Meta{}, err
	}
	m := metaFrom(res)
	if m.Changes == 0 {
		return Meta{}, ErrNotFound
	}
	return m, nil
}

// appendSet adds "col = ?" and its argument when the pointer is non-nil.
// The type parameter keeps the nil check away from reflection.
func appendSet[T any](sets *[]string, args *[]any, col string, v *T) {
	if v != nil {
		*sets = append(*sets, col+" = ?")
		*args = append(*args, *v)
	}
}

func metaFrom(res sql.Result) Meta {
	var m Meta
	m.Changes, _ = res.RowsAffected()
	m.LastRowID, _ = res.LastInsertId()
	return m
}
