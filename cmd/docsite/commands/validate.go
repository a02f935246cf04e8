package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Quiet bool `short:"q" help:"Print nothing on success"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config, config.WithLogger(g.logger()))
	if err != nil {
		return err
	}
	if v.Quiet {
		return nil
	}
	return printSummary(g.out(), root.Config, cfg)
}

func printSummary(out io.Writer, path string, cfg *config.SiteConfig) error {
	model := nav.AssembleNav(cfg.ThemeConfig.Navbar.Items, nav.WithBrokenLinkPolicy(cfg.OnBrokenLinks))
	caps := make([]string, 0)
	for _, group := range [][]config.Descriptor{cfg.Presets, cfg.Themes, cfg.Plugins} {
		for _, d := range group {
			caps = append(caps, d.Name)
		}
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Configuration OK:\t%s\n", path)
	_, _ = fmt.Fprintf(tw, "title:\t%s\n", cfg.Title)
	_, _ = fmt.Fprintf(tw, "url:\t%s\n", cfg.BaseURL())
	_, _ = fmt.Fprintf(tw, "locales:\t%s (default %s)\n", strings.Join(cfg.I18n.Locales, ", "), cfg.I18n.DefaultLocale)
	_, _ = fmt.Fprintf(tw, "broken links:\t%s (markdown: %s)\n", cfg.OnBrokenLinks, cfg.OnBrokenMarkdownLinks)
	_, _ = fmt.Fprintf(tw, "descriptors:\t%s\n", strings.Join(caps, ", "))
	_, _ = fmt.Fprintf(tw, "navbar:\t%d left, %d right\n", len(model.Left()), len(model.Right()))
	_, _ = fmt.Fprintf(tw, "features:\t%d\n", len(cfg.Homepage.Features))
	_, _ = fmt.Fprintf(tw, "snapshot:\t%s\n", cfg.Snapshot()[:12])
	return tw.Flush()
}
