package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rook-computer/scoreboard/internal/logging"
)

type HTTPServer struct {
	Addr    string
	Handler http.Handler
	Logger  logging.Logger

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

func NewHTTPServer(addr string, handler http.Handler, logger logging.Logger) *HTTPServer {
	return &HTTPServer{Addr: addr, Handler: handler, Logger: logging.OrNoop(logger)}
}

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var errServerStopped = errors.New("web server already stopped")

// Start binds Addr and serves in the background until ctx ends or Stop is
// called. Calling Start on a running server is a no-op.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return errServerStopped
	case s.srv != nil:
		return nil
	}

	logger := logging.OrNoop(s.Logger)
	addr := s.Addr
	if addr == "" {
		addr = defaultListenAddr
	}
	handler := s.Handler
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	s.srv, s.ln = srv, ln
	logger.Infof("web", "listening on %s", ln.Addr())

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("web", "serve: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()
	return nil
}

// ListenAddr returns the bound address, or "" when not serving.
func (s *HTTPServer) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop shuts the server down gracefully. A stopped server cannot be
// started again.
func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	s.srv, s.ln = nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
