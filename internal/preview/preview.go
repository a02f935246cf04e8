package preview

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/homepage"
	"git.home.luguber.info/inful/docsite/internal/hugo"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/workspace"
)

// Options configures a preview session.
type Options struct {
	ConfigPath string
	// ContentDir is the Hugo content root. When set, links are verified and
	// changes below it trigger rebuilds.
	ContentDir string
	// OutputDir receives the generated project. An ephemeral workspace is
	// used, and removed on shutdown, when empty.
	OutputDir   string
	Addr        string
	EmbedLoader homepage.EmbedLoader
	Recorder    *metrics.PrometheusRecorder
	Logger      *slog.Logger
	Debounce    time.Duration
	// NoLiveReload disables the SSE endpoint and script injection.
	NoLiveReload bool
}

// Builder rebuilds the site and publishes the homepage to a Server.
type Builder struct {
	configPath string
	contentDir string
	outputDir  string
	loader     homepage.EmbedLoader
	recorder   metrics.Recorder
	logger     *slog.Logger
	server     *Server
}

// NewBuilder creates a builder publishing to server.
func NewBuilder(opts Options, outputDir string, server *Server) *Builder {
	b := &Builder{
		configPath: opts.ConfigPath,
		contentDir: opts.ContentDir,
		outputDir:  outputDir,
		loader:     opts.EmbedLoader,
		recorder:   metrics.NoopRecorder{},
		logger:     opts.Logger,
		server:     server,
	}
	if b.loader == nil {
		b.loader = homepage.StaticEmbedLoader{}
	}
	if opts.Recorder != nil {
		b.recorder = opts.Recorder
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Rebuild reloads the site file and rebuilds. Failures are published to the
// server and returned.
func (b *Builder) Rebuild(ctx context.Context) error {
	b.logger.Info("Change detected; rebuilding site", logfields.Path(b.configPath))
	cfg, err := config.Load(b.configPath, config.WithLogger(b.logger))
	if err != nil {
		b.server.SetError(err)
		return err
	}
	if cfg.BasePath != b.server.BasePath() {
		b.logger.Warn("basePath change requires a preview restart; homepage stays at the old path",
			logfields.Field("basePath"), slog.String("old", b.server.BasePath()), slog.String("new", cfg.BasePath))
	}
	return b.Build(ctx, cfg)
}

// Build generates the project for cfg and publishes its homepage.
func (b *Builder) Build(ctx context.Context, cfg *config.SiteConfig) error {
	genOpts := []hugo.Option{
		hugo.WithRecorder(b.recorder),
		hugo.WithLogger(b.logger),
		hugo.WithEmbedLoader(b.loader),
	}
	if b.contentDir != "" {
		genOpts = append(genOpts, hugo.WithContentDir(os.DirFS(b.contentDir)))
	}
	gen := hugo.NewGenerator(cfg, b.outputDir, genOpts...)
	report, err := gen.Generate(ctx)
	if err != nil {
		b.server.SetError(err)
		return err
	}

	// The page shows the same composition the build wrote, so the embed is
	// loaded once per rebuild.
	model, comp, ok := gen.Homepage()
	if !ok {
		err := fmt.Errorf("generator returned no homepage composition")
		b.server.SetError(err)
		return err
	}
	html, err := renderPage(cfg, model, comp)
	if err != nil {
		b.server.SetError(err)
		return err
	}
	b.server.SetPage(html)
	b.logger.Info("Preview updated", logfields.BuildID(report.BuildID), slog.String("summary", report.Summary()))
	return nil
}

// RenderHomepage composes the homepage of cfg and renders it in the page
// shell.
func RenderHomepage(ctx context.Context, cfg *config.SiteConfig, loader homepage.EmbedLoader, logger *slog.Logger) ([]byte, error) {
	comp, err := homepage.Compose(ctx, cfg, loader,
		homepage.WithResolver(homepage.BasePathResolver{BasePath: cfg.BasePath}),
		homepage.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	model := nav.AssembleNav(cfg.ThemeConfig.Navbar.Items,
		nav.WithBrokenLinkPolicy(cfg.OnBrokenLinks),
		nav.WithLogger(logger))
	return renderPage(cfg, model, comp)
}

func renderPage(cfg *config.SiteConfig, model nav.Model, comp homepage.Composition) ([]byte, error) {
	page, err := homepage.NewPage(cfg, model, comp, homepage.BasePathResolver{BasePath: cfg.BasePath})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := homepage.RenderPage(&buf, page); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Run builds the site, serves it on opts.Addr and rebuilds on change until
// ctx is canceled. The initial configuration must load: it fixes the base
// path the homepage is served at.
func Run(ctx context.Context, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logger := opts.Logger
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	cfg, err := config.Load(opts.ConfigPath, config.WithLogger(logger))
	if err != nil {
		return err
	}

	outputDir, cleanup, err := prepareWorkspace(opts.OutputDir, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	serverOpts := []ServerOption{WithServerLogger(logger)}
	if !opts.NoLiveReload {
		serverOpts = append(serverOpts, WithLiveReload(NewLiveReloadHub(logger)))
	}
	if opts.Recorder != nil {
		serverOpts = append(serverOpts, WithMetricsHandler(opts.Recorder.HTTPHandler()))
	}
	server := NewServer(opts.Addr, cfg.BasePath, outputDir, serverOpts...)
	builder := NewBuilder(opts, outputDir, server)

	if err := builder.Build(ctx, cfg); err != nil {
		logger.Error("Initial build failed", logfields.Error(err))
	}

	watcherOpts := []WatcherOption{WithWatcherLogger(logger)}
	if opts.Debounce > 0 {
		watcherOpts = append(watcherOpts, WithDebounce(opts.Debounce))
	}
	if opts.ContentDir != "" {
		watcherOpts = append(watcherOpts, WithContentDir(opts.ContentDir))
	}
	watcher, err := NewWatcher(opts.ConfigPath, func(ctx context.Context) { _ = builder.Rebuild(ctx) }, watcherOpts...)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	watcherDone := make(chan struct{})
	go func() {
		if err := server.Start(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("preview server: %w", err)
		}
	}()
	go func() {
		defer close(watcherDone)
		if err := watcher.Run(ctx); err != nil {
			errCh <- err
		}
	}()
	logger.Info("Preview server listening",
		slog.String("addr", opts.Addr), slog.String("url", "http://localhost"+opts.Addr+server.BasePath()))

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	logger.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Preview server shutdown error", logfields.Error(err))
	}
	// A rebuild in flight still writes into the workspace; it must finish
	// before the deferred cleanup removes it.
	stop()
	<-watcherDone
	return runErr
}

// prepareWorkspace returns the generator output directory: dir itself when
// set, otherwise a fresh ephemeral workspace that cleanup removes.
func prepareWorkspace(dir string, logger *slog.Logger) (outputDir string, cleanup func(), err error) {
	var ws *workspace.Manager
	if dir != "" {
		ws = workspace.NewPersistentManager(dir)
	} else {
		ws = workspace.NewManager("")
	}
	if err := ws.Create(); err != nil {
		return "", nil, err
	}
	cleanup = func() {
		if cerr := ws.Cleanup(); cerr != nil {
			logger.Warn("Failed to remove preview workspace", logfields.Error(cerr))
		}
	}
	if ws.Persistent() {
		return ws.Path(), cleanup, nil
	}
	if outputDir, err = ws.CreateSubdir("site"); err != nil {
		cleanup()
		return "", nil, err
	}
	return outputDir, cleanup, nil
}
