// Package webserver serves the embedded dashboard and the REST API behind the
// session gate, plus an optional operations listener for metrics.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/afmlabs/evaldash/internal/gate"
	"github.com/afmlabs/evaldash/internal/observability"
	"github.com/afmlabs/evaldash/internal/webapi"
)

const shutdownTimeout = 5 * time.Second

// Config holds the HTTP server configuration.
type Config struct {
	Port int
	// OpsAddr is the listen address of /metrics and /healthz. Empty disables it.
	OpsAddr        string
	NoBrowser      bool
	Logger         *slog.Logger
	API            webapi.Config
	Gate           *gate.Gate
	Metrics        *observability.Metrics
	AllowedOrigins []string
}

// Server wraps the dashboard and operations HTTP servers.
type Server struct {
	cfg    Config
	srv    *http.Server
	ops    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.New()
	}
	if cfg.Gate == nil {
		cfg.Gate = gate.New(nil, gate.WithMetrics(cfg.Metrics))
	}
	if cfg.API.Source == nil {
		cfg.API.Source = webapi.NewGeneratorSource(nil, nil, cfg.Metrics)
	}
	if cfg.API.Metrics == nil {
		cfg.API.Metrics = cfg.Metrics
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, cfg); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           buildHandler(mux, cfg),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if cfg.OpsAddr != "" {
		s.ops = &http.Server{
			Addr:              cfg.OpsAddr,
			Handler:           opsHandler(cfg.Metrics),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return s, nil
}

// ListenAndServe starts the servers and optionally opens a browser. It
// returns after ctx is cancelled and both servers have shut down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)
	s.logger.Info("HTTP server starting", "address", s.srv.Addr, "url", url)
	fmt.Printf("evaldash dashboard: %s\n", url)

	if !s.cfg.NoBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := openBrowser(url); err != nil {
				s.logger.Debug("failed to open browser", "error", err)
			}
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	servers := []*http.Server{s.srv}
	if s.ops != nil {
		servers = append(servers, s.ops)
		s.logger.Info("ops server starting", "address", s.ops.Addr)
	}

	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("HTTP server shutdown error", "address", srv.Addr, "error", err)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// Handler returns the dashboard http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// OpsHandler returns the operations handler, or nil when it is disabled.
func (s *Server) OpsHandler() http.Handler {
	if s.ops == nil {
		return nil
	}
	return s.ops.Handler
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
