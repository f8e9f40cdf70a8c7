// Package http exposes the tracker as a JSON API.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"finboard/internal/log"
	"finboard/internal/middleware/ratelimit"
	"finboard/internal/middleware/security"
	"finboard/internal/tracker"
)

type Server struct {
	http.Server
	owner  *tracker.Owner
	logger *log.Logger
	clock  func() time.Time

	limiter *ratelimit.Limiter
}

type Option func(*Server)

// WithClock sets the clock used for "today" in goal calculations.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) { s.clock = clock }
}

// WithRateLimit caps write requests per client and minute. Zero disables
// the limit.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: perMinute})
		}
	}
}

// NewServer builds the server. The owner must be running for requests to be
// served.
func NewServer(addr string, owner *tracker.Owner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Server{
		owner:  owner,
		logger: logger.WithComponent(log.ComponentHTTP),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Addr = addr
	s.Handler = s.Routes()
	s.ReadHeaderTimeout = 5 * time.Second
	s.ReadTimeout = 15 * time.Second
	s.WriteTimeout = 15 * time.Second
	s.IdleTimeout = 60 * time.Second
	return s
}

// Routes returns the router with all middleware applied.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(log.Middleware(s.logger))
	r.Use(log.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers(security.DefaultHeadersConfig()))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tracker", func(r chi.Router) {
			r.Get("/", s.handleView)
			r.Get("/transactions", s.handleListTransactions)
			r.Put("/category", s.handleSetCategory)
			r.Put("/granularity", s.handleSetGranularity)
			r.Put("/date", s.handleSetDate)
			r.Post("/step", s.handleStep)
			r.Post("/reset", s.handleReset)

			r.Group(func(r chi.Router) {
				if s.limiter != nil {
					r.Use(s.limiter.Middleware(clientKey, func(w http.ResponseWriter, r *http.Request) {
						writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
					}))
				}
				r.Post("/transactions", s.handleAddTransaction)
				r.Delete("/transactions/{id}", s.handleRemoveTransaction)
			})
		})
		r.Get("/balance", s.handleBalance)
		r.Route("/goals", func(r chi.Router) {
			r.Post("/forecast", s.handleForecast)
			r.Get("/average-net", s.handleAverageNet)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run listens on the server address and calls Serve.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve runs the session owner and serves ln until ctx is done. In-flight
// requests are drained before the owner stops, so they still reach the
// session.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	ownerCtx, stopOwner := context.WithCancel(context.Background())
	defer stopOwner()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.owner.Run(ownerCtx)
	})
	g.Go(func() error {
		if err := s.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		defer stopOwner()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.Server.Shutdown(ctx)
}

// clientKey identifies a client by address. RealIP has already applied any
// forwarding headers.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
