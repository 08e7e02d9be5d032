package pitchtrack

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultShutdownTimeout = 10 * time.Second

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger. The default is slog.Default().
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.log = logger }
}

// WithMetricsHandler replaces the /metrics handler. The default serves the
// default Prometheus registry.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) { s.metricsHandler = h }
}

// WithShutdownTimeout bounds Stop.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.shutdownTimeout = d }
}

// Server streams results to websocket clients on /ws and serves metrics on
// /metrics.
type Server struct {
	srv             *http.Server
	log             *slog.Logger
	broadcaster     *Broadcaster
	metricsHandler  http.Handler
	shutdownTimeout time.Duration

	// quit tells open websocket connections to close.
	quit     chan struct{}
	quitOnce sync.Once
	conns    sync.WaitGroup
}

// NewServer returns a Server listening on addr.
func NewServer(addr string, broadcaster *Broadcaster, opts ...ServerOption) *Server {
	mux := http.NewServeMux()

	server := &Server{
		srv: &http.Server{
			Addr:        addr,
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 60 * time.Second,
			Handler:     mux,
		},
		broadcaster:     broadcaster,
		metricsHandler:  promhttp.Handler(),
		shutdownTimeout: defaultShutdownTimeout,
		quit:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.log == nil {
		server.log = slog.Default()
	}

	mux.HandleFunc("/ws", server.handleWebSocket)
	mux.Handle("/metrics", server.metricsHandler)

	return server
}

// Handler returns the HTTP handler, for embedding in tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes websocket connections and shuts the HTTP server down.
func (s *Server) Stop() error {
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.quitOnce.Do(func() { close(s.quit) })
	err := s.srv.Shutdown(ctx)

	// Hijacked connections are not tracked by Shutdown.
	closed := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(closed)
	}()
	select {
	case <-closed:
	case <-ctx.Done():
		s.log.Warn("websocket connections still open after shutdown timeout")
	}
	return err
}
