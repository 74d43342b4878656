package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ServerConfig holds preview server configuration.
type ServerConfig struct {
	Port     int
	Dir      string // directory containing the built site
	AllowAll bool   // allow all CORS origins
	// Root is the directory watched for changes. Empty disables watching.
	Root  string
	Watch []string
	Open  bool
}

// Server serves the built site, rebuilds it when sources change and tells
// open pages to reload.
type Server struct {
	cfg    ServerConfig
	gen    *Generator
	logger *zap.Logger
	hub    *Hub
	router chi.Router

	mu      sync.Mutex
	buildID string
}

// NewServer creates a preview server. gen may be nil when the site is served
// without rebuilding.
func NewServer(cfg ServerConfig, gen *Generator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		gen:    gen,
		logger: logger,
		hub:    NewHub(logger),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "build": s.BuildID()})
	})

	r.Handle("/livereload", s.hub)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.Dir)))
	})

	return r
}

// requestLogger logs each request through zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// BuildID returns the identifier of the last successful build.
func (s *Server) BuildID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildID
}

// Rebuild regenerates the site and tells open pages to reload. A failed
// build keeps the previous output.
func (s *Server) Rebuild(ctx context.Context) error {
	if s.gen == nil {
		return nil
	}
	res, err := s.gen.Build(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.buildID = res.BuildID
	s.mu.Unlock()
	s.hub.Broadcast(ReloadMessage)
	return nil
}

// Run serves until ctx is done. The HTTP server and the watcher run in one
// errgroup; either failing stops both.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if s.cfg.Root != "" && s.gen != nil {
		w := &Watcher{
			Root:     s.cfg.Root,
			Patterns: s.cfg.Watch,
			Ignore:   []string{s.relOutputDir()},
			Logger:   s.logger,
		}
		g.Go(func() error {
			return w.Run(ctx, func(path string) {
				s.logger.Info("rebuilding", zap.String("changed", path))
				if err := s.Rebuild(ctx); err != nil {
					s.logger.Error("rebuild failed", zap.Error(err))
				}
			})
		})
	}

	url := fmt.Sprintf("http://localhost:%d", ln.Addr().(*net.TCPAddr).Port)
	s.logger.Info("serving site", zap.String("url", url), zap.String("dir", s.cfg.Dir))
	if s.cfg.Open {
		go openBrowser(url)
	}

	return g.Wait()
}

func (s *Server) relOutputDir() string {
	rel, err := filepath.Rel(s.cfg.Root, s.cfg.Dir)
	if err != nil {
		return s.cfg.Dir
	}
	return rel
}

// openBrowser opens url in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
