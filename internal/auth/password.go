package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/bricksdeal/catalog-api/internal/config"
)

// VerifyAdminCredentials checks a login attempt against the configured
// admin account. When a bcrypt hash is configured it takes precedence;
// otherwise the plaintext password is compared in constant time. The
// boolean result carries no detail about which part mismatched.
func VerifyAdminCredentials(cfg config.Config, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1

	var passOK bool
	if cfg.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	}

	return userOK && passOK
}
