// Package server exposes the menulens HTTP surface: menu text
// extraction and safe-dish ranking. Request validation and upload
// handling live here; everything menu-shaped is delegated to the
// reader, pipeline and ranking packages.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/menulens/menulens/internal/allergen"
	"github.com/menulens/menulens/internal/menu"
	"github.com/menulens/menulens/internal/reader"
	"github.com/menulens/menulens/internal/safedish"
)

// TextReader is the file-to-text collaborator consumed by the extract
// endpoint.
type TextReader interface {
	Extract(ctx context.Context, data []byte, mimeType string) (*reader.Extraction, error)
}

// MenuProcessor is the structuring pipeline consumed by the extract
// endpoint.
type MenuProcessor interface {
	Process(ctx context.Context, blocks []menu.RawTextBlock) (menu.ProcessedData, error)
}

// DishRanker is the ranking collaborator consumed by the safe-dishes
// endpoint.
type DishRanker interface {
	Rank(ctx context.Context, image []byte, allergens []allergen.Allergen) ([]safedish.Recommendation, error)
}

// Server is the menulens HTTP server.
type Server struct {
	httpServer *http.Server
	reader     TextReader
	processor  MenuProcessor
	ranker     DishRanker
	logger     *slog.Logger

	maxUploadBytes int64

	mu      sync.Mutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the port to listen on (default: 8080).
	Port string
	// MaxUploadMB caps multipart uploads (default: 10).
	MaxUploadMB int64

	Reader    TextReader
	Processor MenuProcessor
	Ranker    DishRanker
	Logger    *slog.Logger
}

// New creates a Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Reader == nil || cfg.Processor == nil {
		return nil, errors.New("server requires a reader and a processor")
	}

	s := &Server{
		reader:         cfg.Reader,
		processor:      cfg.Processor,
		ranker:         cfg.Ranker,
		logger:         cfg.Logger,
		maxUploadBytes: cfg.MaxUploadMB << 20,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start runs the server until the context is cancelled or the listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown drains in-flight requests with a timeout.
func (s *Server) shutdown() error {
	defer s.setNotRunning()
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
