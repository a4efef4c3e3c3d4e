package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	seedSets(t, db)
	repo := NewSetRepo(db)

	tests := []struct {
		name      string
		query     SetListQuery
		wantNums  []string
		wantTotal int
	}{
		{
			name:      "no filter orders year desc then name asc",
			query:     SetListQuery{Limit: 50},
			wantNums:  []string{"75192-1", "75144-1", "75911-1", "10179-1"},
			wantTotal: 4,
		},
		{
			name:      "year filter with short page still reports full total",
			query:     SetListQuery{Year: ptr(2017), Limit: 2},
			wantNums:  []string{"75192-1", "75144-1"},
			wantTotal: 3,
		},
		{
			name:      "offset walks the filtered ordering",
			query:     SetListQuery{Year: ptr(2017), Limit: 2, Offset: 2},
			wantNums:  []string{"75911-1"},
			wantTotal: 3,
		},
		{
			name:      "theme filter",
			query:     SetListQuery{ThemeID: ptr(int64(158)), Limit: 50},
			wantNums:  []string{"75911-1"},
			wantTotal: 1,
		},
		{
			name:      "search is case-insensitive substring",
			query:     SetListQuery{Search: "fAlCon", Limit: 50},
			wantNums:  []string{"75192-1", "10179-1"},
			wantTotal: 2,
		},
		{
			name:      "combined filters",
			query:     SetListQuery{Year: ptr(2017), Search: "falcon", Limit: 50},
			wantNums:  []string{"75192-1"},
			wantTotal: 1,
		},
		{
			name:      "no match",
			query:     SetListQuery{Search: "does-not-exist", Limit: 50},
			wantNums:  nil,
			wantTotal: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, total, err := repo.List(ctx(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			var nums []string
			for _, s := range sets {
				nums = append(nums, s.SetNum)
			}
			assert.Equal(t, tt.wantNums, nums)
		})
	}
}

func TestSetRepoCreateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	repo := NewSetRepo(db)

	in := &Set{
		SetNum:         "21309-1",
		Name:           "Saturn V",
		Year:           2017,
		ThemeID:        717,
		NumParts:       ptr(1969),
		ImgURL:         ptr("https://img.example/21309-1.jpg"),
		Price:          ptr(119.99),
		PriceUpdatedAt: ptr("2026-08-01T00:00:00Z"),
	}
	meta, err := repo.Create(ctx(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Changes)

	got, err := repo.GetByNum(ctx(), "21309-1")
	require.NoError(t, err)
	assert.Equal(t, in.SetNum, got.SetNum)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Year, got.Year)
	assert.Equal(t, in.ThemeID, got.ThemeID)
	assert.Equal(t, *in.NumParts, *got.NumParts)
	assert.Equal(t, *in.ImgURL, *got.ImgURL)
	assert.Equal(t, *in.Price, *got.Price)
	assert.Equal(t, *in.PriceUpdatedAt, *got.PriceUpdatedAt)
	assert.Equal(t, "Ideas", got.ThemeName)
}

func TestSetRepoCreateErrors(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	seedSets(t, db)
	repo := NewSetRepo(db)

	_, err := repo.Create(ctx(), &Set{SetNum: "75192-1", Name: "Dup", Year: 2017, ThemeID: 601})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.Create(ctx(), &Set{SetNum: "99999-1", Name: "Orphan", Year: 2020, ThemeID: 424242})
	assert.ErrorIs(t, err, ErrBadReference)
}

func TestSetRepoPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	seedSets(t, db)
	repo := NewSetRepo(db)

	meta, err := repo.Update(ctx(), "75192-1", SetUpdate{
		Price:          ptr(849.99),
		PriceUpdatedAt: ptr("2026-08-29T12:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Changes)

	got, err := repo.GetByNum(ctx(), "75192-1")
	require.NoError(t, err)
	// Supplied fields changed.
	assert.Equal(t, 849.99, *got.Price)
	assert.Equal(t, "2026-08-29T12:00:00Z", *got.PriceUpdatedAt)
	// Everything else untouched.
	assert.Equal(t, "Millennium Falcon", got.Name)
	assert.Equal(t, 2017, got.Year)
	assert.Equal(t, int64(601), got.ThemeID)
	assert.Equal(t, 7541, *got.NumParts)
}

func TestSetRepoUpdateEmptyPayload(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	seedSets(t, db)
	repo := NewSetRepo(db)

	_, err := repo.Update(ctx(), "75192-1", SetUpdate{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	// The row must be untouched.
	got, err := repo.GetByNum(ctx(), "75192-1")
	require.NoError(t, err)
	assert.Equal(t, "Millennium Falcon", got.Name)
}

func TestSetRepoUpdateMissingRow(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	repo := NewSetRepo(db)

	_, err := repo.Update(ctx(), "00000-0", SetUpdate{Name: ptr("Ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetRepoDelete(t *testing.T) {
	db := newTestDB(t)
	seedThemes(t, db)
	seedSets(t, db)
	repo := NewSetRepo(db)

	meta, err := repo.Delete(ctx(), "75192-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Changes)

	_, err = repo.GetByNum(ctx(), "75192-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx(), "75192-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
