// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds all runtime configuration values. It is built once at
// startup and passed explicitly to the router, handlers and repositories
// so that no package reads the environment during request handling.
type Config struct {
	Env  string // application environment ("dev", "prod")
	Port string // HTTP port to listen on

	DBDriver string // "mysql" or "sqlite"
	DBUser   string
	DBPass   string
	DBHost   string
	DBPort   string
	DBName   string
	DBPath   string // sqlite file path (":memory:" allowed)

	JWTSecret         string // secret used to sign session tokens
	AdminUsername     string // configured admin login
	AdminPassword     string // plaintext admin password (dev setups)
	AdminPasswordHash string // bcrypt hash, takes precedence over AdminPassword

	SessionTTLHours int      // session token lifetime
	AllowedOrigins  []string // CORS origin allow-list

	Cache     CacheConfig
	RateLimit RateLimitConfig

	// Identifiers consumed by the external ETL toolchain. The API only
	// validates their presence at startup; it never calls these services.
	CloudflareAccountID string
	CloudflareAccessKey string
	CloudflareSecretKey string
	CloudflareBucket    string
	OxylabsUsername     string
	OxylabsPassword     string
	DeepseekAPIKey      string
}

// Report is the result of validating a Config. Missing lists hard
// requirements that are absent; Warnings lists values that are present but
// equal to a known insecure default, plus absent optional values.
type Report struct {
	Missing  []string
	Warnings []string
}

// OK reports whether the configuration satisfies all hard requirements.
func (r Report) OK() bool { return len(r.Missing) == 0 }

// Load reads configuration from the environment. Nothing is validated
// here; call Validate afterwards so that all problems are reported in one
// pass instead of surfacing one at a time deep in request handling.
func Load() Config {
	return Config{
		Env:  getenv("APP_ENV", "dev"),
		Port: getenv("APP_PORT", "8787"),

		DBDriver: getenv("DB_DRIVER", "sqlite"),
		DBUser:   os.Getenv("DB_USER"),
		DBPass:   os.Getenv("DB_PASS"),
		DBHost:   getenv("DB_HOST", "localhost"),
		DBPort:   getenv("DB_PORT", "3306"),
		DBName:   getenv("DB_NAME", "bricks_deal"),
		DBPath:   getenv("DB_PATH", "./catalog.db"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SessionTTLHours: envInt("SESSION_TTL_HOURS", 24),
		AllowedOrigins:  splitList(getenv("ALLOWED_ORIGINS", "http://localhost:4321")),

		Cache:     LoadCacheConfig(),
		RateLimit: LoadRateLimitConfig(),

		CloudflareAccountID: os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		CloudflareAccessKey: os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		CloudflareSecretKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		CloudflareBucket:    os.Getenv("CLOUDFLARE_R2_BUCKET_NAME"),
		OxylabsUsername:     os.Getenv("OXYLABS_USERNAME"),
		OxylabsPassword:     os.Getenv("OXYLABS_PASSWORD"),
		DeepseekAPIKey:      os.Getenv("DEEPSEEK_API_KEY"),
	}
}

// insecureDefaults maps values that must never reach production to the
// warning emitted when they are found.
var insecureDefaults = map[string]bool{
	"change-me":  true,
	"changeme":   true,
	"secret":     true,
	"dev-secret": true,
	"password":   true,
	"admin":      true,
}

// Validate checks the configuration and returns an aggregated report.
// Hard requirements are the session secret, the admin credentials and a
// usable database target. Everything only the external toolchain needs is
// reported as a warning when absent.
func (c Config) Validate() Report {
	var rep Report

	requireStr(&rep, "JWT_SECRET", c.JWTSecret)
	requireStr(&rep, "ADMIN_USERNAME", c.AdminUsername)
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		rep.Missing = append(rep.Missing, "ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	switch c.DBDriver {
	case "sqlite":
		requireStr(&rep, "DB_PATH", c.DBPath)
	case "mysql":
		requireStr(&rep, "DB_USER", c.DBUser)
		requireStr(&rep, "DB_HOST", c.DBHost)
		requireStr(&rep, "DB_PORT", c.DBPort)
		requireStr(&rep, "DB_NAME", c.DBName)
	default:
		rep.Missing = append(rep.Missing, "DB_DRIVER (must be mysql or sqlite)")
	}

	if insecureDefaults[strings.ToLower(c.JWTSecret)] {
		rep.Warnings = append(rep.Warnings, "JWT_SECRET is a well-known placeholder value")
	}
	if insecureDefaults[strings.ToLower(c.AdminPassword)] {
		rep.Warnings = append(rep.Warnings, "ADMIN_PASSWORD is a well-known placeholder value")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword != "" && c.Env == "prod" {
		rep.Warnings = append(rep.Warnings, "ADMIN_PASSWORD is stored in plaintext; prefer ADMIN_PASSWORD_HASH in prod")
	}

	warnAbsent(&rep, "CLOUDFLARE_ACCOUNT_ID", c.CloudflareAccountID)
	warnAbsent(&rep, "CLOUDFLARE_ACCESS_KEY_ID", c.CloudflareAccessKey)
	warnAbsent(&rep, "CLOUDFLARE_SECRET_ACCESS_KEY", c.CloudflareSecretKey)
	warnAbsent(&rep, "CLOUDFLARE_R2_BUCKET_NAME", c.CloudflareBucket)
	warnAbsent(&rep, "OXYLABS_USERNAME", c.OxylabsUsername)
	warnAbsent(&rep, "OXYLABS_PASSWORD", c.OxylabsPassword)
	warnAbsent(&rep, "DEEPSEEK_API_KEY", c.DeepseekAPIKey)

	return rep
}

// IsProd reports whether the service runs in the production environment.
// It controls the Secure flag on the session cookie.
func (c Config) IsProd() bool { return c.Env == "prod" }

func requireStr(rep *Report, name, v string) {
	if v == "" {
		rep.Missing = append(rep.Missing, name)
	}
}

func warnAbsent(rep *Report, name, v string) {
	if v == "" {
		rep.Warnings = append(rep.Warnings, name+" is not set (required by the ETL toolchain only)")
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
