package hugo

import (
	"bytes"
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/homepage"
	"git.home.luguber.info/inful/docsite/internal/linkverify"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// linkSource is one group of links checked under a single policy.
type linkSource struct {
	name   string
	links  []*linkverify.Link
	policy config.BrokenLinkPolicy
}

// stageVerifyLinks checks internal links of the navbar and the rendered
// regions under onBrokenLinks, and links written inside markdown fragments
// under onBrokenMarkdownLinks, against the routes of the content directory.
func stageVerifyLinks(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	cfg := g.config

	routes, err := linkverify.RoutesFromDir(g.contentDir, cfg.BasePath)
	if err != nil {
		return newFatalStageError(StageVerifyLinks, fmt.Errorf("scan content directory: %w", err))
	}
	routes.Add("/")

	sources := []linkSource{{name: "navbar", links: navLinks(bs.Nav), policy: cfg.OnBrokenLinks}}
	for _, region := range []string{homepage.RegionHero, homepage.RegionFeatures} {
		links, err := regionAnchors(bs.Regions[region], cfg.BaseURL())
		if err != nil {
			return newFatalStageError(StageVerifyLinks, err)
		}
		sources = append(sources, linkSource{name: region, links: links, policy: cfg.OnBrokenLinks})
	}
	sources = append(sources, linkSource{
		name:   "homepage.markdown",
		links:  fragmentLinks(cfg.Homepage),
		policy: cfg.OnBrokenMarkdownLinks,
	})

	for _, src := range sources {
		rep, err := linkverify.Check(src.name, src.links, routes, src.policy, g.logger)
		bs.Report.LinksChecked += rep.Checked
		bs.Report.BrokenLinks += len(rep.Broken)
		g.recorder.IncBrokenLinks(string(src.policy), len(rep.Broken))
		if err != nil {
			return newFatalStageError(StageVerifyLinks, err)
		}
		for _, b := range rep.Broken {
			msg := fmt.Sprintf("%s links to unknown route %s", src.name, b.Link.URL)
			if src.policy == config.BrokenLinksWarn {
				bs.Report.AddIssue(IssueBrokenLink, StageVerifyLinks, SeverityWarning, msg,
					linkverify.BrokenLinkError(src.name, b.Link.URL, src.policy))
				continue
			}
			bs.Report.AddIssue(IssueBrokenLink, StageVerifyLinks, SeverityInfo, msg, nil)
		}
	}
	return nil
}

func navLinks(model nav.Model) []*linkverify.Link {
	links := make([]*linkverify.Link, 0, len(model.Items))
	for _, it := range model.Items {
		dest := it.Target.Raw
		if it.Doc {
			dest = nav.DocPageRef(dest)
		}
		links = append(links, &linkverify.Link{
			URL:        dest,
			Text:       it.Label,
			Tag:        "a",
			Attribute:  "href",
			IsInternal: it.Target.IsInternal(),
		})
	}
	return links
}

// regionAnchors lists the anchors of a rendered region. Images and embeds
// point at static assets or third parties and are not page routes.
func regionAnchors(markup []byte, baseURL string) ([]*linkverify.Link, error) {
	if len(markup) == 0 {
		return nil, nil
	}
	all, err := linkverify.ExtractLinksFromReader(bytes.NewReader(markup), baseURL)
	if err != nil {
		return nil, err
	}
	anchors := all[:0]
	for _, l := range all {
		if l.Tag == "a" {
			anchors = append(anchors, l)
		}
	}
	return anchors, nil
}

// fragmentLinks lists the link destinations written in the markdown
// fragments of the homepage.
func fragmentLinks(hp config.Homepage) []*linkverify.Link {
	fragments := []string{hp.Hero.Description}
	for _, f := range hp.Features {
		fragments = append(fragments, f.Description)
	}
	var links []*linkverify.Link
	for _, frag := range fragments {
		for _, l := range markdown.ExtractLinks([]byte(frag)) {
			if l.Kind == markdown.LinkKindImage {
				continue
			}
			links = append(links, &linkverify.Link{
				URL:        l.Destination,
				Tag:        "markdown",
				Attribute:  string(l.Kind),
				IsInternal: linkverify.Classify(l.Destination).IsInternal(),
			})
		}
	}
	return links
}
