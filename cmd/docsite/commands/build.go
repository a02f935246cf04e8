package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/hugo"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output       string        `short:"o" help:"Output directory for the generated Hugo project" default:"./site" type:"path"`
	ContentDir   string        `name:"content-dir" help:"Hugo content root; enables internal link verification" type:"path"`
	MetricsFile  string        `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path"`
	ProbeEmbed   bool          `name:"probe-embed" help:"Check that the hero embed host answers before rendering it"`
	ProbeTimeout time.Duration `name:"probe-timeout" help:"Timeout of the embed probe" default:"5s"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return b.run(ctx, g, root)
}

func (b *BuildCmd) run(ctx context.Context, g *Global, root *CLI) error {
	out, logger := g.out(), g.logger()
	_, _ = fmt.Fprintln(out, "Starting docsite build")

	cfg, err := config.Load(root.Config, config.WithLogger(logger))
	if err != nil {
		return err
	}

	recorder := metrics.NewPrometheusRecorder(nil)
	opts := []hugo.Option{
		hugo.WithLogger(logger),
		hugo.WithRecorder(recorder),
		hugo.WithEmbedLoader(embedLoader(b.ProbeEmbed, b.ProbeTimeout)),
	}
	if b.ContentDir != "" {
		if st, statErr := os.Stat(b.ContentDir); statErr != nil || !st.IsDir() {
			return errors.ValidationError(fmt.Sprintf("content dir not found or not a directory: %s", b.ContentDir)).
				WithContext("path", b.ContentDir).Build()
		}
		opts = append(opts, hugo.WithContentDir(os.DirFS(b.ContentDir)))
	}

	report, genErr := hugo.NewGenerator(cfg, b.Output, opts...).Generate(ctx)

	if b.MetricsFile != "" {
		if err := recorder.WriteTextfile(b.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(err))
		}
	}
	if report != nil {
		printReport(out, report)
	}
	if genErr != nil {
		if _, ok := errors.AsClassified(genErr); ok {
			return genErr
		}
		return errors.WrapError(genErr, errors.CategoryBuild, "site generation failed").Build()
	}
	_, _ = fmt.Fprintf(out, "Site generated in %s\n", b.Output)
	return nil
}

func printReport(out io.Writer, report *hugo.BuildReport) {
	_, _ = fmt.Fprintf(out, "Build %s: %s\n", report.Outcome, report.Summary())
	for _, issue := range report.Issues {
		_, _ = fmt.Fprintf(out, "  [%s] %s %s: %s\n", issue.Severity, issue.Stage, issue.Code, issue.Message)
	}
}
