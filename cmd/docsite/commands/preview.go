package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/preview"
)

// PreviewCmd serves the homepage locally and rebuilds on change.
type PreviewCmd struct {
	Port         int           `name:"port" default:"1316" help:"Preview server port."`
	OutputDir    string        `short:"o" name:"output" default:"" help:"Output directory for the generated project (defaults to temp)." type:"path"`
	ContentDir   string        `name:"content-dir" help:"Hugo content root to verify links against and watch." type:"path"`
	Debounce     time.Duration `name:"debounce" default:"300ms" help:"Quiet period before a change triggers a rebuild."`
	ProbeEmbed   bool          `name:"probe-embed" help:"Check that the hero embed host answers before rendering it."`
	ProbeTimeout time.Duration `name:"probe-timeout" default:"5s" help:"Timeout of the embed probe."`
	NoLiveReload bool          `name:"no-live-reload" help:"Disable LiveReload SSE and script injection."`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, _ = fmt.Fprintf(g.out(), "Preview at http://localhost:%d/\n", p.Port)
	return preview.Run(sigctx, preview.Options{
		ConfigPath:  root.Config,
		ContentDir:  p.ContentDir,
		OutputDir:   p.OutputDir,
		Addr:        fmt.Sprintf(":%d", p.Port),
		EmbedLoader: embedLoader(p.ProbeEmbed, p.ProbeTimeout),
		Recorder:    metrics.NewPrometheusRecorder(nil),
		Logger:      g.logger(),
		Debounce:    p.Debounce,

		NoLiveReload: p.NoLiveReload,
	})
}
