package hugo

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/homepage"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// Generator writes a Hugo site skeleton for one SiteConfig.
type Generator struct {
	config    *config.SiteConfig
	outputDir string // final output dir
	stageDir  string // ephemeral staging dir for the current build

	recorder    metrics.Recorder
	logger      *slog.Logger
	embedLoader homepage.EmbedLoader
	contentDir  fs.FS // optional docs tree for link verification
	repoDir     string
	now         func() time.Time

	// Set by the last successful Generate.
	navModel    nav.Model
	composition *homepage.Composition
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger used by the generator and the composers it calls.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithEmbedLoader sets the loader used for the hero embed.
func WithEmbedLoader(l homepage.EmbedLoader) Option {
	return func(g *Generator) { g.embedLoader = l }
}

// WithContentDir enables the verify_links stage. Internal links in the
// generated navigation and homepage regions are checked against the routes
// published for fsys.
func WithContentDir(fsys fs.FS) Option {
	return func(g *Generator) { g.contentDir = fsys }
}

// WithRepoDir sets where git metadata is looked up. Defaults to the output
// directory's parent.
func WithRepoDir(dir string) Option {
	return func(g *Generator) { g.repoDir = dir }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a generator for cfg, which must come from
// config.BuildConfig.
func NewGenerator(cfg *config.SiteConfig, outputDir string, opts ...Option) *Generator {
	g := &Generator{
		config:    cfg,
		outputDir: filepath.Clean(outputDir),
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.repoDir == "" {
		g.repoDir = filepath.Dir(g.outputDir)
	}
	return g
}

// Config exposes the site configuration (read-only).
func (g *Generator) Config() *config.SiteConfig { return g.config }

// OutputDir returns the final output directory.
func (g *Generator) OutputDir() string { return g.outputDir }

// Homepage returns the navbar and the homepage composition written by the
// last successful Generate. ok is false until one succeeded.
func (g *Generator) Homepage() (model nav.Model, comp homepage.Composition, ok bool) {
	if g.composition == nil {
		return nav.Model{}, homepage.Composition{}, false
	}
	return g.navModel, *g.composition, true
}

func (g *Generator) homepageOptions() []homepage.Option {
	return []homepage.Option{
		homepage.WithResolver(homepage.BasePathResolver{BasePath: g.config.BasePath}),
		homepage.WithLogger(g.logger),
		homepage.WithRecorder(g.recorder),
	}
}

// Generate runs the pipeline. The returned report is non-nil even when the
// build fails; on failure the previous output stays in place and the report
// is persisted next to it.
func (g *Generator) Generate(ctx context.Context) (*BuildReport, error) {
	start := g.now()
	report := newBuildReport(g.config.Title, start)
	g.logger.Info("Starting site generation", logfields.BuildID(report.BuildID), logfields.Path(g.outputDir))

	bs := newBuildState(g, report)
	stages := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageGenerateConfig, stageGenerateConfig).
		Add(StageLayouts, stageLayouts).
		Add(StageContent, stageContent).
		AddIf(g.contentDir != nil, StageVerifyLinks, stageVerifyLinks).
		Add(StageReport, stageReport).
		Build()

	err := runStages(ctx, bs, stages)
	if err != nil {
		g.abortStaging()
		report.finish(g.now())
		if perr := report.Persist(g.outputDir); perr != nil {
			g.logger.Warn("Failed to persist build report", logfields.Error(perr))
		}
	} else if ferr := g.finalizeStaging(); ferr != nil {
		se := newFatalStageError(StagePrepareOutput, ferr)
		report.recordStage(StagePrepareOutput, se)
		report.finish(g.now())
		err = se
	} else {
		g.navModel = bs.Nav
		g.composition = &homepage.Composition{Hero: bs.Hero, Grid: bs.Grid}
	}

	g.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	g.recorder.IncBuildOutcome(report.OutcomeLabel())
	g.logger.Info("Site generation finished",
		logfields.BuildID(report.BuildID),
		slog.String("outcome", string(report.Outcome)),
		slog.String("summary", report.Summary()))
	return report, err
}
