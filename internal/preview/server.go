package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// SiteFilesPrefix is the route segment, below the base path, that exposes
// the generated Hugo project.
const SiteFilesPrefix = "site/"

// Server serves the rendered homepage of the last good build.
type Server struct {
	Addr     string
	basePath string
	siteDir  string
	metrics  http.Handler
	reload   *LiveReloadHub
	router   *chi.Mux
	server   *http.Server
	logger   *slog.Logger

	mu        sync.RWMutex
	page      []byte
	lastError error
	builtAt   time.Time
}

// ServerOption customises NewServer.
type ServerOption func(*Server)

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) { s.metrics = h }
}

// WithLiveReload serves hub at LiveReloadPath and injects its client script
// into the page.
func WithLiveReload(hub *LiveReloadHub) ServerOption {
	return func(s *Server) { s.reload = hub }
}

// WithServerLogger sets the logger used for build status changes.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a preview server for a site rooted at basePath whose
// generated project lives in siteDir.
func NewServer(addr, basePath, siteDir string, opts ...ServerOption) *Server {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	s := &Server{
		Addr:     addr,
		basePath: basePath,
		siteDir:  siteDir,
		router:   chi.NewRouter(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if s.reload != nil {
		// The SSE stream holds its response open; other routes are bounded
		// by the Timeout middleware.
		s.server.WriteTimeout = 0
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	if s.reload != nil {
		s.router.Get(LiveReloadPath, s.reload.ServeHTTP)
		s.router.Get(LiveReloadScriptPath, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
			_, _ = w.Write([]byte(LiveReloadScript))
		})
	}

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/health", s.handleHealth)
		if s.metrics != nil {
			r.Method(http.MethodGet, "/metrics", s.metrics)
		}

		if s.basePath != "/" {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, s.basePath, http.StatusFound)
			})
			r.Get(strings.TrimSuffix(s.basePath, "/"), func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, s.basePath, http.StatusMovedPermanently)
			})
		}
		r.Get(s.basePath, s.handlePage)

		files := s.basePath + SiteFilesPrefix
		r.Handle(files+"*", http.StripPrefix(files, http.FileServer(http.Dir(s.siteDir))))
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// BasePath returns the path the homepage is served at.
func (s *Server) BasePath() string { return s.basePath }

// Start listens on Addr until Shutdown is called.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown disconnects live reload clients and gracefully shuts down the
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Shutdown()
	}
	return s.server.Shutdown(ctx)
}

// SetPage publishes a freshly rendered homepage and clears the last error.
func (s *Server) SetPage(html []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = append([]byte(nil), html...)
	s.lastError = nil
	s.builtAt = time.Now()
	if s.reload != nil {
		s.reload.Broadcast(pageHash(html))
	}
}

// SetError records a failed rebuild. The last good page stays published.
func (s *Server) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.logger.Warn("Preview rebuild failed; serving last good page", logfields.Error(err))
}

func (s *Server) status() (page []byte, lastError error, builtAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page, s.lastError, s.builtAt
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	page, lastError, _ := s.status()
	if page == nil {
		msg := "site has not been built yet"
		if lastError != nil {
			msg = "build failed: " + lastError.Error()
		}
		http.Error(w, msg, http.StatusServiceUnavailable)
		return
	}
	if lastError != nil {
		w.Header().Set("X-Build-Error", lastError.Error())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if s.reload != nil {
		page = injectLiveReload(page)
	}
	_, _ = w.Write(page)
}

type healthResponse struct {
	Status    string `json:"status"`
	LastError string `json:"last_error,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	page, lastError, builtAt := s.status()
	resp := healthResponse{Status: "healthy"}
	code := http.StatusOK
	switch {
	case page == nil:
		resp.Status = "starting"
		code = http.StatusServiceUnavailable
	case lastError != nil:
		resp.Status = "degraded"
	}
	if lastError != nil {
		resp.LastError = lastError.Error()
	}
	if !builtAt.IsZero() {
		resp.BuiltAt = builtAt.UTC().Format(time.RFC3339)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
