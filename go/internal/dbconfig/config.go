package dbconfig

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds the pool database connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns   int
	MaxIdleTime    time.Duration
	ConnectTimeout time.Duration
}

// NewConfigFromEnv reads DB_* environment variables. Unset or unparsable
// values fall back to local development defaults.
func NewConfigFromEnv() Config {
	return Config{
		Host:           envString("DB_HOST", "localhost"),
		Port:           envInt("DB_PORT", 5432),
		User:           envString("DB_USER", "postgres"),
		Password:       envString("DB_PASSWORD", "postgres"),
		Database:       envString("DB_NAME", "pickpool"),
		SSLMode:        envString("DB_SSLMODE", "disable"),
		MaxOpenConns:   envInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleTime:    envDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
		ConnectTimeout: envDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

func (c Config) Validate() error {
	if c.Host == "" || c.Database == "" {
		return fmt.Errorf("database host and name are required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid database port %d", c.Port)
	}
	switch c.SSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid sslmode %q", c.SSLMode)
	}
	return nil
}

// DSN returns the Postgres connection URL. Credentials are escaped, so
// passwords may hold URL metacharacters.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Redacted is DSN with the password masked, for logs.
func (c Config) Redacted() string {
	u, err := url.Parse(c.DSN())
	if err != nil {
		return ""
	}
	return u.Redacted()
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}
