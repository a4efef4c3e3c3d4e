package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSetsPaginatedByYear(t *testing.T) {
	e, db, _ := newTestServer(t)
	seedCatalog(t, db)

	rec, env := doRequest(t, e, http.MethodGet, "/api/sets?year=2017&limit=2&offset=0", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var sets []struct {
		SetNum string `json:"set_num"`
		Name   string `json:"name"`
		Year   int    `json:"year"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sets))
	require.Len(t, sets, 2)
	// Name ascending within the matching year.
	assert.Equal(t, "Millennium Falcon", sets[0].Name)
	assert.Equal(t, "Snowspeeder", sets[1].Name)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Limit)
	assert.Equal(t, 0, env.Pagination.Offset)
	assert.Equal(t, 3, env.Pagination.Total) // full filtered count, not page length
}

func TestCreateGetSetRoundTrip(t *testing.T) {
	e, db, _ := newTestServer(t)
	seedCatalog(t, db)
	ck := loginCookie(t, e)

	body := `{"set_num":"21309-1","name":"Saturn V","year":2017,"theme_id":717,"num_parts":1969,"price":119.99}`
	rec, env := doRequest(t, e, http.MethodPost, "/api/sets", body, ck)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Changes)

	rec, env = doRequest(t, e, http.MethodGet, "/api/sets/21309-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		SetNum    string  `json:"set_num"`
		Name      string  `json:"name"`
		Year      int     `json:"year"`
		ThemeID   int64   `json:"theme_id"`
		NumParts  int     `json:"num_parts"`
		Price     float64 `json:"price"`
		ThemeName string  `json:"theme_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "21309-1", got.SetNum)
	assert.Equal(t, "Saturn V", got.Name)
	assert.Equal(t, 2017, got.Year)
	assert.Equal(t, int64(717), got.ThemeID)
	assert.Equal(t, 1969, got.NumParts)
	assert.Equal(t, 119.99, got.Price)
	assert.Equal(t, "Ideas", got.ThemeName)
}

func TestCreateSetValidationAndConflict(t *testing.T) {
	e, db, _ := newTestServer(t)
	seedCatalog(t, db)
	ck := loginCookie(t, e)

	rec, env := doRequest(t, e, http.MethodPost, "/api/sets", `{"set_num":"1-1"}`, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	// Existing natural key -> distinct conflict, not a generic failure.
	rec, env = doRequest(t, e, http.MethodPost, "/api/sets",
		`{"set_num":"75192-1","name":"Dup","year":2017,"theme_id":601}`, ck)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestUpdateSetEndpoints(t *testing.T) {
	e, db, _ := newTestServer(t)
	seedCatalog(t, db)
	ck := loginCookie(t, e)

	// Empty payload never reaches the store.
	rec, _ := doRequest(t, e, http.MethodPut, "/api/sets/75192-1", `{}`, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Partial update touches only supplied fields.
	rec, env := doRequest(t, e, http.MethodPut, "/api/sets/75192-1", `{"price":849.99}`, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Changes)

	_, env = doRequest(t, e, http.MethodGet, "/api/sets/75192-1", "", nil)
	var got struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Millennium Falcon", got.Name)
	assert.Equal(t, 849.99, got.Price)

	rec, _ = doRequest(t, e, http.MethodPut, "/api/sets/00000-0", `{"price":1.0}`, ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSet(t *testing.T) {
	e, db, _ := newTestServer(t)
	seedCatalog(t, db)
	ck := loginCookie(t, e)

	rec, _ := doRequest(t, e, http.MethodDelete, "/api/sets/75192-1", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, e, http.MethodGet, "/api/sets/75192-1", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutationsRequireSession(t *testing.T) {
	e, db, _ := newTestServer(t)
	seedCatalog(t, db)

	tests := []struct {
		method, target, body string
	}{
		{http.MethodPost, "/api/sets", `{"set_num":"1-1","name":"X","year":2020,"theme_id":717}`},
		{http.MethodPut, "/api/sets/75192-1", `{"price":1.0}`},
		{http.MethodDelete, "/api/sets/75192-1", ""},
		{http.MethodPost, "/api/minifigs", `{"fig_num":"fig-9","name":"X"}`},
		{http.MethodDelete, "/api/themes/717", ""},
	}
	for _, tt := range tests {
		rec, env := doRequest(t, e, tt.method, tt.target, tt.body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.target)
		assert.False(t, env.Success)
	}

	// Reads stay open.
	rec, _ := doRequest(t, e, http.MethodGet, "/api/sets", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
