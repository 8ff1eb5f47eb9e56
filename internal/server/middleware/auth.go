package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfmap/internal/server/response"
)

// AuthConfig configures API key authentication.
type AuthConfig struct {
	Enabled     bool
	APIKey      string
	HeaderName  string
	PublicPaths []string
}

// Auth rejects requests without a valid API key. The key is read from
// HeaderName or from an Authorization bearer token.
func Auth(cfg AuthConfig, logger *zerolog.Logger) Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-API-Key"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || r.Method == http.MethodOptions || slices.Contains(cfg.PublicPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			key := apiKey(r, cfg.HeaderName)
			if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", key != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing API key",
					"Provide a valid key in the "+cfg.HeaderName+" header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func apiKey(r *http.Request, header string) string {
	if k := r.Header.Get(header); k != "" {
		return k
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return ""
}
