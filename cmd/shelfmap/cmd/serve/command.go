// Package serve provides the serve command.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/cmd/alerts"
	"github.com/agentstation/shelfmap/internal/server"
	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// Options controls the HTTP server beyond the API configuration.
type Options struct {
	Config     server.Config
	AutoReload bool

	// Alerts receives start and stop notices. Nil discards them.
	Alerts *alerts.Writer
}

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()
	opts := &Options{Config: defaults}
	var cacheTTL int
	var noCompression bool

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "management",
		Short:   "Serve the catalog over HTTP",
		Long: `Serve starts the REST API for the catalog.

Features:
  - Book listing with search, language and year filters and pagination
  - Book detail, category and facet endpoints
  - Theme and view preferences
  - Reload endpoint and optional periodic reloads
  - Reload notifications over WebSocket (/api/v1/updates/ws) and
    Server-Sent Events (/api/v1/updates/stream)
  - Response caching, gzip compression and per-IP rate limiting
  - Optional API key authentication and CORS
  - Health, readiness and Prometheus metrics endpoints

The datasets are loaded once at startup. A failed first load is logged and
the server starts anyway; /api/v1/ready reports 503 until a load succeeds.`,
		Example: `  shelfmap serve
  shelfmap serve --port 3000 --auth
  shelfmap serve --cors-origins "https://shop.example.com"
  shelfmap serve --auto-reload --rate-limit 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Config.CacheTTL = time.Duration(cacheTTL) * time.Second
			opts.Config.Compression = !noCompression
			if len(opts.Config.CORSOrigins) > 0 {
				opts.Config.CORSEnabled = true
			}
			if err := applyEnv(&opts.Config); err != nil {
				return err
			}
			if opts.Config.AuthEnabled && opts.Config.APIKey == "" {
				return errors.NewConfigError("serve", "--auth requires SHELFMAP_API_KEY", nil)
			}

			if err := opts.Config.Validate(); err != nil {
				return err
			}
			addr := opts.Config.Addr()
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return errors.WrapIO("listen", addr, err)
			}
			opts.Alerts = alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor())
			return Serve(cmd.Context(), app, opts, ln)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.Config.Port, "port", "p", defaults.Port, "server port")
	f.StringVar(&opts.Config.Host, "host", defaults.Host, "bind address")
	f.StringVar(&opts.Config.PathPrefix, "prefix", defaults.PathPrefix, "API path prefix")

	f.BoolVar(&opts.Config.CORSEnabled, "cors", false, "enable CORS for all origins")
	f.StringSliceVar(&opts.Config.CORSOrigins, "cors-origins", nil, "allowed CORS origins (comma-separated)")

	f.BoolVar(&opts.Config.AuthEnabled, "auth", false, "require an API key (read from SHELFMAP_API_KEY)")
	f.StringVar(&opts.Config.AuthHeader, "auth-header", defaults.AuthHeader, "API key header name")

	f.IntVar(&opts.Config.RateLimit, "rate-limit", defaults.RateLimit, "requests per minute per IP (0 to disable)")
	f.IntVar(&opts.Config.RateBurst, "rate-burst", 0, "rate limit burst (defaults to --rate-limit)")
	f.IntVar(&cacheTTL, "cache-ttl", int(defaults.CacheTTL.Seconds()), "response cache TTL in seconds")
	f.BoolVar(&noCompression, "no-compression", false, "disable gzip responses")

	f.DurationVar(&opts.Config.ReadTimeout, "read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	f.DurationVar(&opts.Config.WriteTimeout, "write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	f.DurationVar(&opts.Config.IdleTimeout, "idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	f.BoolVar(&opts.Config.MetricsEnabled, "metrics", defaults.MetricsEnabled, "serve /metrics")
	f.BoolVar(&opts.AutoReload, "auto-reload", false, "reload the datasets periodically (see auto_reload_interval)")

	return cmd
}

// applyEnv reads settings that only come from the environment.
func applyEnv(cfg *server.Config) error {
	if key := os.Getenv("SHELFMAP_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if p := os.Getenv("HTTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return errors.NewValidationError("HTTP_PORT", p, "not a valid port")
		}
		cfg.Port = port
	}
	if h := os.Getenv("HTTP_HOST"); h != "" {
		cfg.Host = h
	}
	return nil
}

// Serve runs the API on ln until ctx is cancelled, then drains connections
// and stops background services.
func Serve(ctx context.Context, app application.Application, opts *Options, ln net.Listener) error {
	logger := app.Logger()
	notices := opts.Alerts
	if notices == nil {
		notices = alerts.NewWriter(io.Discard, true)
	}

	srv, err := server.New(app, opts.Config)
	if err != nil {
		_ = ln.Close()
		return errors.WrapResource("create", "server", "", err)
	}
	srv.Start()

	loadCtx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	if _, err := app.Catalog(loadCtx); err != nil {
		logger.Error().Err(err).Msg("Initial catalog load failed, serving until a reload succeeds")
		notices.Warning(err, "Catalog not loaded, POST %s/reload to retry", opts.Config.PathPrefix)
	}
	cancel()

	client, err := app.Shelfmap()
	if err != nil {
		_ = ln.Close()
		return err
	}
	if opts.AutoReload {
		if err := client.AutoReloadOn(); err != nil {
			_ = ln.Close()
			return err
		}
		defer func() { _ = client.AutoReloadOff() }()
	}

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  opts.Config.ReadTimeout,
		WriteTimeout: opts.Config.WriteTimeout,
		IdleTimeout:  opts.Config.IdleTimeout,
	}

	notices.Info("Serving on http://%s%s (Ctrl+C to stop)", ln.Addr(), opts.Config.PathPrefix)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", ln.Addr().String()).
			Str("prefix", opts.Config.PathPrefix).
			Bool("auth", opts.Config.AuthEnabled).
			Int("rate_limit", opts.Config.RateLimit).
			Bool("auto_reload", opts.AutoReload).
			Msg("Server starting")
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	// Streams end before the HTTP server drains.
	svcErr := srv.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	<-serverErr
	logger.Info().Msg("Server stopped gracefully")
	notices.Success("Server stopped")
	return svcErr
}
