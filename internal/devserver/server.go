package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/f4ah6o/eightfold-go/internal/config"
	"github.com/f4ah6o/eightfold-go/internal/console"
)

const shutdownTimeout = 5 * time.Second

// Server ties a config, a handler and the console together.
type Server struct {
	cfg     *config.Config
	console *console.Logger
	handler http.Handler

	mu        sync.Mutex
	addr      net.Addr
	ready     chan struct{}
	readyOnce sync.Once
}

// New returns a Server for cfg that logs every request to out and sends
// the no-cache headers on every response.
func New(cfg *config.Config, out *console.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		console: out,
		ready:   make(chan struct{}),
	}
	s.handler = NewHandler(cfg.Root,
		WithHeaderFunc(NoCache),
		WithLogFunc(func(e LogEntry) {
			out.Request(strconv.Itoa(e.Status), e.Message)
		}),
	)
	return s
}

// Ready is closed the first time the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or nil before the server is listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run listens on the configured port and serves until ctx is done. A bind
// failure is returned before anything is served. After ctx is done Run
// stops accepting, drains in-flight requests, prints the shutdown message
// and returns nil. Run may be called again after it has returned.
func (s *Server) Run(ctx context.Context) error {
	ln, err := Listen(ctx, s.cfg.Port)
	if err != nil {
		return err
	}

	port := s.cfg.Port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.console.Banner(s.cfg.Name, port, s.cfg.Root)
	s.readyOnce.Do(func() { close(s.ready) })

	srv := &http.Server{Handler: s.handler}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown did not finish cleanly: %v", err)
		srv.Close()
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Server error: %v", err)
	}

	s.console.Stopped()
	return nil
}
