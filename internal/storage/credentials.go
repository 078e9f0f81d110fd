package storage

import (
	"net/url"
	"os"
	"strings"

	"github.com/tempo-cli/tempo/internal/keyring"
)

// EnvConnectionString is the environment variable consulted for a full
// PostgreSQL connection string before falling back to the OS keyring.
const EnvConnectionString = "TEMPO_DB_CONNECTION"

// IsPostgresConnString reports whether the config value looks like a
// PostgreSQL connection string rather than a file path.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Inline passwords end up in shell history and process
// listings, so they are rejected at startup.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// ResolveConnectionString returns the connection string to use for the given
// config value: the environment variable wins, then the OS keyring, then the
// config value itself (for .pgpass-style setups without a password).
func ResolveConnectionString(config string) string {
	if env := os.Getenv(EnvConnectionString); env != "" {
		return env
	}
	if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
		return stored
	}
	return config
}
