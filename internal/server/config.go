package server

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// Config controls the HTTP API. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Host       string
	Port       int    // 0 picks a free port
	PathPrefix string // Mount point of the JSON routes, e.g. /api/v1

	CORSEnabled bool
	CORSOrigins []string // Empty allows any origin

	// API key auth. Health, readiness, metrics and the OpenAPI document
	// stay public.
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	RateLimit   int           // Requests per minute per client IP, 0 disables
	RateBurst   int           // 0 means RateLimit
	CacheTTL    time.Duration // Book list and detail response cache
	Compression bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MetricsEnabled bool
}

// DefaultConfig returns the configuration used by shelfmap serve.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		AuthHeader:     "X-API-Key",
		RateLimit:      100,
		CacheTTL:       constants.DefaultCacheTTL,
		Compression:    true,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    2 * time.Minute,
		MetricsEnabled: true,
	}
}

// Addr is the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports the first setting the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return errors.NewValidationError("port", c.Port, "must be between 0 and 65535")
	case c.PathPrefix != "" && (!strings.HasPrefix(c.PathPrefix, "/") || strings.HasSuffix(c.PathPrefix, "/")):
		return errors.NewValidationError("prefix", c.PathPrefix, "must start with / and not end with /")
	case c.AuthEnabled && c.APIKey == "":
		return errors.NewValidationError("api_key", "", "required when auth is enabled")
	case c.AuthEnabled && c.AuthHeader == "":
		return errors.NewValidationError("auth_header", "", "required when auth is enabled")
	case c.RateLimit < 0 || c.RateBurst < 0:
		return errors.NewValidationError("rate_limit", c.RateLimit, "must not be negative")
	}
	return nil
}
