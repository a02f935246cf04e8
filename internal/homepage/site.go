package homepage

import (
	"context"
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// Region names of the composed homepage.
const (
	RegionHero     = "hero"
	RegionFeatures = "features"
)

// Composition holds the composed homepage components of one site.
type Composition struct {
	Hero Hero
	Grid FeatureGrid
}

// Compose builds the hero and the feature grid of cfg. A failed embed is
// contained in Hero.EmbedErr and never fails the composition.
func Compose(ctx context.Context, cfg *config.SiteConfig, loader EmbedLoader, opts ...Option) (Composition, error) {
	hero, err := ComposeHero(ctx, cfg.Homepage.Hero, loader, opts...)
	if err != nil {
		return Composition{}, err
	}
	grid, err := ComposeFeatureGrid(cfg.Homepage.Features, opts...)
	if err != nil {
		return Composition{}, err
	}
	return Composition{Hero: hero, Grid: grid}, nil
}

// Regions renders the hero and the feature grid in page order.
func (c Composition) Regions() ([]Region, error) {
	hero, err := RenderRegion(RegionHero, c.Hero)
	if err != nil {
		return nil, fmt.Errorf("render hero: %w", err)
	}
	features, err := RenderRegion(RegionFeatures, c.Grid)
	if err != nil {
		return nil, fmt.Errorf("render features: %w", err)
	}
	return []Region{hero, features}, nil
}

// NewPage lays a composition out in the page shell: navbar from model,
// announcement bar, the rendered regions and the footer copyright.
func NewPage(cfg *config.SiteConfig, model nav.Model, c Composition, resolver AssetResolver) (Page, error) {
	if resolver == nil {
		resolver = BasePathResolver{BasePath: cfg.BasePath}
	}
	regions, err := c.Regions()
	if err != nil {
		return Page{}, err
	}
	page := Page{
		Lang:        cfg.I18n.DefaultLocale,
		Title:       cfg.Homepage.Title,
		Description: cfg.Homepage.Description,
		OGImage:     c.Hero.OGImage,
		NavLeft:     navLinks(model.Left(), resolver),
		NavRight:    navLinks(model.Right(), resolver),
		Regions:     regions,
		// #nosec G203 -- copyright markup comes from the site author's own configuration
		Footer: template.HTML(cfg.Derived.Copyright),
	}
	if ab := cfg.ThemeConfig.AnnouncementBar; ab != nil {
		// #nosec G203 -- announcement markup comes from the site author's own configuration
		page.Announcement = template.HTML(ab.Content)
	}
	return page, nil
}

func navLinks(items []nav.Item, resolver AssetResolver) []NavLink {
	out := make([]NavLink, 0, len(items))
	for _, it := range items {
		link := NavLink{Label: it.Label}
		switch {
		case it.Doc:
			link.Href = resolver.Resolve(nav.DocPageRef(it.Target.Raw))
		case it.Target.IsInternal():
			link.Href = resolver.Resolve(it.Target.Raw)
		default:
			link.Href = it.Target.Raw
			link.External = true
		}
		out = append(out, link)
	}
	return out
}
