// Package server provides the HTTP API for the shelfmap catalog.
package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/server/cache"
	"github.com/agentstation/shelfmap/internal/server/events"
	"github.com/agentstation/shelfmap/internal/server/events/adapters"
	"github.com/agentstation/shelfmap/internal/server/middleware"
	"github.com/agentstation/shelfmap/internal/server/sse"
	ws "github.com/agentstation/shelfmap/internal/server/websocket"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/catalogs"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       *websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	startTime      time.Time

	// quiet suppresses per-book events while the first catalog loads.
	quiet atomic.Bool
}

// New creates a server and subscribes it to the client's hooks.
func New(app application.Application, cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := app.Logger()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		app:            app,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg),
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
	}

	if err := s.connectHooks(); err != nil {
		cancel()
		return nil, err
	}
	logger.Debug().Msg("Server created")
	return s, nil
}

// connectHooks publishes catalog changes to the broker and drops cached
// responses whenever a new catalog is swapped in.
func (s *Server) connectHooks() error {
	client, err := s.app.Shelfmap()
	if err != nil {
		return err
	}

	s.quiet.Store(!client.Catalog().Loaded())

	client.OnCatalogLoaded(func(prev, next *catalogs.Catalog) {
		s.cache.Clear()
		s.quiet.Store(!prev.Loaded())
		s.broker.Publish(events.CatalogLoaded, events.LoadSummary{
			Books:      next.Len(),
			Categories: next.Categories().Len(),
			Previous:   prev.Len(),
			LoadedAt:   next.LoadedAt(),
		})
	})

	client.OnLoadFailed(func(err error) {
		s.broker.Publish(events.CatalogLoadFailed, events.LoadFailure{Error: err.Error()})
	})

	client.OnBookAdded(func(b books.Book) {
		if !s.quiet.Load() {
			s.broker.Publish(events.BookAdded, b.Card())
		}
	})

	client.OnBookUpdated(func(old, b books.Book) {
		if !s.quiet.Load() {
			s.broker.Publish(events.BookUpdated, map[string]any{"old": old.Card(), "new": b.Card()})
		}
	})

	client.OnBookRemoved(func(b books.Book) {
		if !s.quiet.Load() {
			s.broker.Publish(events.BookRemoved, map[string]string{"isbn": b.ISBN})
		}
	})

	s.logger.Debug().Msg("Catalog hooks connected to event broker")
	return nil
}

// Start runs the background services until Shutdown.
func (s *Server) Start() {
	run := func(fn func(context.Context)) {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			fn(s.ctx)
		}()
	}
	run(s.broker.Run)
	run(s.wsHub.Run)
	run(s.sseBroadcaster.Run)
	if s.rateLimiter != nil {
		run(s.rateLimiter.Run)
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services and waits for them, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services did not stop in time")
		return ctx.Err()
	}
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache { return s.cache }

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker { return s.broker }

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub { return s.wsHub }

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster { return s.sseBroadcaster }

func originChecker(cfg Config) func(*http.Request) bool {
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]struct{}, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		_, wildcard := allowed["*"]
		return ok || wildcard
	}
}
