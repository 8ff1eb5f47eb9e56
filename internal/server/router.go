package server

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"github.com/agentstation/shelfmap/internal/server/handlers"
	"github.com/agentstation/shelfmap/internal/server/middleware"
	"github.com/agentstation/shelfmap/internal/server/response"
)

// setupRouter builds the mux and wraps it in the middleware chain.
func (s *Server) setupRouter() http.Handler {
	h := handlers.New(s.app, s.cache, s.wsHub, s.sseBroadcaster, s.upgrader, s.logger)

	api := http.NewServeMux()
	s.registerRoutes(api, h)

	var apiHandler http.Handler = api
	if s.config.Compression {
		apiHandler = gzhttp.GzipHandler(apiHandler)
	}

	// Streams bypass compression.
	root := http.NewServeMux()
	prefix := s.config.PathPrefix
	root.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	root.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)
	if s.config.MetricsEnabled {
		root.Handle("GET /metrics", s.app.Metrics().Handler())
	}
	root.Handle("/", apiHandler)

	return s.applyMiddleware(root)
}

// registerRoutes registers the JSON API routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	mux.HandleFunc("GET "+prefix+"/books", h.HandleListBooks)
	mux.HandleFunc("GET "+prefix+"/books/{isbn}", h.HandleGetBook)
	mux.HandleFunc("GET "+prefix+"/categories", h.HandleCategories)
	mux.HandleFunc("GET "+prefix+"/facets", h.HandleFacets)

	mux.HandleFunc("GET "+prefix+"/preferences", h.HandleGetPreferences)
	mux.HandleFunc("PUT "+prefix+"/preferences", h.HandlePutPreferences)
	mux.HandleFunc("POST "+prefix+"/preferences/theme/toggle", h.HandleToggleTheme)
	mux.HandleFunc("POST "+prefix+"/preferences/view/toggle", h.HandleToggleView)

	mux.HandleFunc("GET "+prefix+"/openapi.json", h.HandleOpenAPIJSON)
	mux.HandleFunc("GET "+prefix+"/openapi.yaml", h.HandleOpenAPIYAML)

	mux.HandleFunc("POST "+prefix+"/reload", h.HandleReload)
	mux.HandleFunc("GET "+prefix+"/stats", h.HandleStats)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.Method+" "+r.URL.Path)
	})
}

// applyMiddleware wraps handler in recovery, logging, metrics, CORS, auth
// and rate limiting, outermost first.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []middleware.Middleware{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}
	if cfg.MetricsEnabled {
		chain = append(chain, s.app.Metrics().Middleware)
	}
	if cfg.CORSEnabled {
		cors := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			cors.AllowedOrigins = cfg.CORSOrigins
		}
		chain = append(chain, middleware.CORS(cors))
	}
	if cfg.AuthEnabled {
		prefix := cfg.PathPrefix
		chain = append(chain, middleware.Auth(middleware.AuthConfig{
			Enabled:     true,
			APIKey:      cfg.APIKey,
			HeaderName:  cfg.AuthHeader,
			PublicPaths: []string{
				"/health", prefix + "/health", prefix + "/ready",
				prefix + "/openapi.json", prefix + "/openapi.yaml", "/metrics",
			},
		}, s.logger))
	}
	if s.rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(s.rateLimiter))
	}
	return middleware.Chain(chain...)(handler)
}
