package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/auth"
	"github.com/bricksdeal/catalog-api/internal/config"
	"github.com/bricksdeal/catalog-api/internal/database"
	"github.com/bricksdeal/catalog-api/internal/handler"
	"github.com/bricksdeal/catalog-api/internal/queue"
	"github.com/bricksdeal/catalog-api/internal/repository"
	"github.com/bricksdeal/catalog-api/internal/router"
)

const (
	testSecret   = "handler-test-secret"
	testUsername = "admin2000"
	testPassword = "brick-by-brick"
)

// fakePublisher records refresh events instead of talking to RabbitMQ.
type fakePublisher struct {
	events []queue.RefreshRequestedEvent
	err    error
}

func (f *fakePublisher) PublishRefreshRequested(_ context.Context, ev queue.RefreshRequestedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

// newTestServer builds the full route table over an in-memory SQLite
// store, with Redis absent so cache and rate limiting are pass-through.
func newTestServer(t *testing.T) (*echo.Echo, *sql.DB, *fakePublisher) {
	t.Helper()

	cfg := config.Config{
		Env:             "dev",
		DBDriver:        "sqlite",
		DBPath:          ":memory:",
		JWTSecret:       testSecret,
		AdminUsername:   testUsername,
		AdminPassword:   testPassword,
		SessionTTLHours: 24,
		AllowedOrigins:  []string{"http://localhost:4321"},
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db))

	log := zap.NewNop()
	pub := &fakePublisher{}

	sets := repository.NewSetRepo(db)
	minifigs := repository.NewMinifigRepo(db)
	themes := repository.NewThemeRepo(db)
	stats := repository.NewStatsRepo(db)

	e := echo.New()
	router.Register(e, cfg, log, nil, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, log),
		Sets:     handler.NewSetHandler(sets, log),
		Minifigs: handler.NewMinifigHandler(minifigs, log),
		Themes:   handler.NewThemeHandler(themes, log),
		Admin:    handler.NewAdminHandler(stats, sets, minifigs, pub, log),
	})
	return e, db, pub
}

func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO themes (id, name, parent_id) VALUES
			(158, 'Star Wars', NULL),
			(601, 'Ultimate Collector Series', 158),
			(717, 'Ideas', NULL);
		INSERT INTO sets (set_num, name, year, theme_id, num_parts) VALUES
			('75192-1', 'Millennium Falcon', 2017, 601, 7541),
			('75144-1', 'Snowspeeder', 2017, 601, 1703),
			('75911-1', 'Zulu Fighter', 2017, 158, 120),
			('10179-1', 'Ultimate Falcon', 2007, 601, 5195);
		INSERT INTO minifigs (fig_num, name, num_parts) VALUES
			('fig-000123', 'Luke Skywalker', 4);
	`)
	require.NoError(t, err)
}

// envelope mirrors the API response wrapper for assertions.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Pagination *struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Total  int `json:"total"`
	} `json:"pagination"`
	Meta *struct {
		Changes   int64 `json:"changes"`
		LastRowID int64 `json:"last_row_id"`
	} `json:"meta"`
}

// doRequest runs a request through the Echo instance and decodes the
// envelope.
func doRequest(t *testing.T, e *echo.Echo, method, target, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"body was: %s", rec.Body.String())
	return rec, env
}

// loginCookie performs a real login and returns the session cookie.
func loginCookie(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"`+testUsername+`","password":"`+testPassword+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.CookieName {
			require.NotEmpty(t, ck.Value)
			return ck
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

// tokenWithRole mints a syntactically valid session token carrying an
// arbitrary role, for exercising the role gate.
func tokenWithRole(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      "1",
		"username": testUsername,
		"role":     role,
		"iat":      time.Now().UTC().Unix(),
		"exp":      time.Now().UTC().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}
