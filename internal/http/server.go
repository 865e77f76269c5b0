package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second

	defaultShutdownGrace = 10 * time.Second
)

// Server wraps http.Server for the kiosk surface.
type Server struct {
	server *http.Server
	grace  time.Duration
	logger *zap.Logger
}

// NewServer builds a server with the kiosk's timeouts and the default
// shutdown grace period.
func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		grace:  defaultShutdownGrace,
		logger: logger.Named("http"),
	}
}

// SetShutdownGrace overrides how long in-flight requests get to finish on
// shutdown. The websocket connections held by the snapshot hub are closed
// by Shutdown regardless.
func (s *Server) SetShutdownGrace(d time.Duration) {
	if d > 0 {
		s.grace = d
	}
}

// Run serves until the context is canceled, then drains within the grace
// period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("kiosk http server listening", zap.String("addr", s.server.Addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down http server", zap.Duration("grace", s.grace))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
