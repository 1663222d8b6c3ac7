package provider

import (
	"errors"
	"net"
	"net/url"

	"github.com/go-playground/validator/v10"
)

const (
	keyUsername = "username"
	keyPassword = "password"
	keyHost     = "host"
	keyDatabase = "database"
	keyPort     = "port"
	keySSLMode  = "sslmode"

	// DefaultPort is the Postgres port used when the configuration omits one.
	DefaultPort = "5432"

	// DefaultSSLMode is used when the configuration omits an sslmode.
	// "disable" is the only mode all supported drivers agree on.
	DefaultSSLMode = "disable"
)

// Config is the raw configuration a provider registry hands to a provider:
// a flat mapping of authentication field names to string values.
type Config struct {
	Authentication map[string]string
}

// AuthConfig is the typed authentication configuration for a database
// provider, validated once at construction.
type AuthConfig struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Host     string `validate:"required"`
	Database string
	Port     string
	SSLMode  string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// BuildAuthConfig maps the raw authentication fields onto a typed config,
// fills defaults for port and sslmode, and validates the required fields.
func BuildAuthConfig(authentication map[string]string) (AuthConfig, error) {
	authConfig := AuthConfig{
		Username: authentication[keyUsername],
		Password: authentication[keyPassword],
		Host:     authentication[keyHost],
		Database: authentication[keyDatabase],
		Port:     authentication[keyPort],
		SSLMode:  authentication[keySSLMode],
	}

	if authConfig.Port == "" {
		authConfig.Port = DefaultPort
	}

	if authConfig.SSLMode == "" {
		authConfig.SSLMode = DefaultSSLMode
	}

	if validateErr := validate.Struct(authConfig); validateErr != nil {
		return AuthConfig{}, errors.Join(ErrInvalidAuthConfig, validateErr)
	}

	return authConfig, nil
}

// DSN renders the config as a connection URL understood by both pgx and lib/pq.
// The database segment is omitted when no database is configured, letting the
// server fall back to its default.
func (c AuthConfig) DSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
	}

	if c.Database != "" {
		dsn.Path = "/" + c.Database
	}

	query := url.Values{}
	query.Set(keySSLMode, c.SSLMode)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}
